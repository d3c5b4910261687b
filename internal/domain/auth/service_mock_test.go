package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"snapapp/internal/domain"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/password"
	"snapapp/internal/pkg/sessionkey"
	"snapapp/internal/pkg/token"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) CreateWithLogin(ctx context.Context, u *domain.User, l *domain.Login) error {
	args := m.Called(ctx, u, l)
	return args.Error(0)
}

type mockLoginRepo struct {
	mock.Mock
}

func (m *mockLoginRepo) GetLoginInfoByUserID(ctx context.Context, userID uuid.UUID) (*domain.LoginInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginInfo), args.Error(1)
}

func (m *mockLoginRepo) GetLoginInfoByEmail(ctx context.Context, email string) (*domain.LoginInfo, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginInfo), args.Error(1)
}

func (m *mockLoginRepo) UpsertLogin(ctx context.Context, l *domain.Login) (int64, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLoginRepo) DeleteLoginByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockLoginRepo) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func newMockService(users *mockUserRepo, logins *mockLoginRepo) *Service {
	return NewService(users, logins, password.NewHasher(1000), testSettings, logging.Discard())
}

func TestService_Login_StorageFailure(t *testing.T) {
	logins := new(mockLoginRepo)
	dbErr := errors.New("connection refused")
	logins.On("GetLoginInfoByEmail", mock.Anything, "a@x.com").Return(nil, dbErr)

	_, err := newMockService(new(mockUserRepo), logins).Login(context.Background(), "a@x.com", "p")

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	logins.AssertExpectations(t)
}

func TestService_SignUp_UniqueViolationIsDuplicate(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
	users.On("CreateWithLogin", mock.Anything, mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := newMockService(users, new(mockLoginRepo)).SignUp(context.Background(), SignUpRequest{
		Email: "a@x.com", Password: "p", Role: domain.RoleClient,
	})

	assert.ErrorIs(t, err, ErrDuplicateUser)
	users.AssertExpectations(t)
}

func TestService_RenewToken_TeardownFailureStillExpires(t *testing.T) {
	kp, err := sessionkey.Generate(sessionkey.MinBits)
	require.NoError(t, err)

	userID := uuid.New()
	refreshID := uuid.New()
	issued := token.Timestamp(time.Now().Add(-48 * time.Hour))
	rt, err := token.Encode(token.Refresh{ID: refreshID, UserID: userID, ExpiresOn: issued.Add(time.Hour)}, kp)
	require.NoError(t, err)

	loginID := int64(7)
	logins := new(mockLoginRepo)
	logins.On("GetLoginInfoByUserID", mock.Anything, userID).Return(&domain.LoginInfo{
		User: domain.User{ID: userID, Role: domain.RoleClient},
		Login: &domain.Login{
			ID:             &loginID,
			UserID:         userID,
			CryptoKeys:     kp.Bytes(),
			RefreshTokenID: refreshID,
			ExpiresOn:      issued.Add(time.Minute),
			CreatedOn:      issued,
		},
	}, nil)
	logins.On("DeleteLoginByUserID", mock.Anything, userID).Return(errors.New("disk full"))

	_, err = newMockService(new(mockUserRepo), logins).RenewToken(context.Background(), rt, userID)

	assert.ErrorIs(t, err, ErrSessionExpired)
	logins.AssertExpectations(t)
	logins.AssertNotCalled(t, "UpsertLogin", mock.Anything, mock.Anything)
}

func TestService_RenewToken_MissingKeypair(t *testing.T) {
	userID := uuid.New()
	logins := new(mockLoginRepo)
	logins.On("GetLoginInfoByUserID", mock.Anything, userID).Return(&domain.LoginInfo{
		User:  domain.User{ID: userID},
		Login: &domain.Login{UserID: userID},
	}, nil)

	_, err := newMockService(new(mockUserRepo), logins).RenewToken(context.Background(), "x", userID)

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_PurgeStaleLogins_Cutoff(t *testing.T) {
	logins := new(mockLoginRepo)
	svc := newMockService(new(mockUserRepo), logins)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	logins.On("DeleteCreatedBefore", mock.Anything, now.Add(-testSettings.RefreshTokenTTL)).Return(int64(3), nil)

	n, err := svc.PurgeStaleLogins(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	logins.AssertExpectations(t)
}
