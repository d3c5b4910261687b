package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"snapapp/internal/database"
	"snapapp/internal/domain"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/password"
	"snapapp/internal/pkg/sessionkey"
	"snapapp/internal/pkg/token"
	"snapapp/internal/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settings are the token lifetimes and key size the service issues with.
type Settings struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	SessionKeyBits  int
}

// Service contains all business logic for authentication
type Service struct {
	users    UserRepository
	logins   LoginRepository
	hasher   *password.Hasher
	settings Settings
	log      logging.Logger
	now      func() time.Time
}

func NewService(users UserRepository, logins LoginRepository, hasher *password.Hasher, settings Settings, log logging.Logger) *Service {
	if settings.SessionKeyBits < sessionkey.MinBits {
		settings.SessionKeyBits = sessionkey.MinBits
	}
	return &Service{
		users:    users,
		logins:   logins,
		hasher:   hasher,
		settings: settings,
		log:      log.With("component", "auth"),
		now:      time.Now,
	}
}

func (s *Service) Login(ctx context.Context, username, pass string) (*LoginResult, error) {
	info, err := s.logins.GetLoginInfoByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !s.hasher.Verify(pass, info.User.Salt, info.User.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	var (
		kp      *sessionkey.Keypair
		loginID *int64
	)
	if info.Login != nil {
		loginID = info.Login.ID
		if len(info.Login.CryptoKeys) > 0 {
			kp, err = sessionkey.Parse(info.Login.CryptoKeys)
			if err != nil {
				s.log.Warn(ctx, "stored session key unreadable, issuing a new one", "user_id", info.User.ID)
				kp = nil
			}
		}
	}
	if kp == nil {
		if kp, err = sessionkey.Generate(s.settings.SessionKeyBits); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
	}

	pair, record, err := s.issue(&info.User, kp, loginID, s.timestamp())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if _, err := s.logins.UpsertLogin(ctx, record); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info(ctx, "login issued", "user_id", info.User.ID)
	return &LoginResult{UserInfo: info.User.Info(), TokenPair: pair}, nil
}

func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResult, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	if errs := validator.Validate(req); errs != nil {
		if errs.Missing() {
			return nil, ErrMissingContent
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, errs)
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	salt, err := password.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	kp, err := sessionkey.Generate(s.settings.SessionKeyBits)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	now := s.timestamp()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: s.hasher.Hash(req.Password, salt),
		Salt:         salt,
		Company:      strings.TrimSpace(req.Company),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         req.Role,
		Picture:      strings.TrimSpace(req.Picture),
		CreatedOn:    now,
	}

	pair, record, err := s.issue(user, kp, nil, now)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if err := s.users.CreateWithLogin(ctx, user, record); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.log.Info(ctx, "user signed up", "user_id", user.ID, "role", user.Role)
	return &SignUpResult{UserID: user.ID, UserCreatedOn: user.CreatedOn, TokenPair: pair}, nil
}

// RenewToken exchanges the current refresh token for a new pair. Each refresh
// token is single-use: the record only remembers the latest id.
func (s *Service) RenewToken(ctx context.Context, refreshToken string, userID uuid.UUID) (*TokenPair, error) {
	info, err := s.logins.GetLoginInfoByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("renew: %w", err)
	}
	login := info.Login
	if login == nil || len(login.CryptoKeys) == 0 {
		return nil, ErrSessionNotFound
	}
	kp, err := sessionkey.Parse(login.CryptoKeys)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	rt, err := token.DecodeRefresh(refreshToken, kp)
	if err != nil {
		return nil, ErrMalformedToken
	}
	if rt.UserID != login.UserID || rt.ID != login.RefreshTokenID {
		return nil, ErrTokenEpochMismatch
	}

	now := s.timestamp()
	if rt.ExpiresOn.Before(now) {
		if err := s.logins.DeleteLoginByUserID(ctx, userID); err != nil {
			s.log.Error(ctx, "session teardown failed", "user_id", userID, "error", err)
		}
		return nil, ErrSessionExpired
	}

	pair, record, err := s.issue(&info.User, kp, login.ID, now)
	if err != nil {
		return nil, fmt.Errorf("renew: %w", err)
	}
	if _, err := s.logins.UpsertLogin(ctx, record); err != nil {
		return nil, fmt.Errorf("renew: %w", err)
	}
	return &pair, nil
}

// Logout drops the session record and with it the keypair, which voids every
// token issued to the user. Calling it without a session is fine.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.logins.DeleteLoginByUserID(ctx, userID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info(ctx, "logged out", "user_id", userID)
	return nil
}

// PurgeStaleLogins deletes sessions whose last refresh token has expired.
// Such records can never be renewed again.
func (s *Service) PurgeStaleLogins(ctx context.Context) (int64, error) {
	cutoff := s.timestamp().Add(-s.settings.RefreshTokenTTL)
	n, err := s.logins.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge logins: %w", err)
	}
	s.log.Info(ctx, "stale logins purged", "deleted", n, "cutoff", cutoff)
	return n, nil
}

func (s *Service) timestamp() time.Time {
	return token.Timestamp(s.now())
}

// issue mints a token pair for a new epoch starting at now, along with the
// login record that makes it current.
func (s *Service) issue(u *domain.User, kp *sessionkey.Keypair, loginID *int64, now time.Time) (TokenPair, *domain.Login, error) {
	refreshID := uuid.New()

	access, err := token.Encode(token.Access{UserID: u.ID, Role: u.Role, IssuedOn: now}, kp)
	if err != nil {
		return TokenPair{}, nil, err
	}
	refresh, err := token.Encode(token.Refresh{ID: refreshID, UserID: u.ID, ExpiresOn: now.Add(s.settings.RefreshTokenTTL)}, kp)
	if err != nil {
		return TokenPair{}, nil, err
	}

	record := &domain.Login{
		ID:             loginID,
		UserID:         u.ID,
		CryptoKeys:     kp.Bytes(),
		RefreshTokenID: refreshID,
		ExpiresOn:      now.Add(s.settings.AccessTokenTTL),
		CreatedOn:      now,
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, record, nil
}
