package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"snapapp/internal/database/dbtest"
	"snapapp/internal/domain"
	"snapapp/internal/domain/auth"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/password"
	"snapapp/internal/pkg/sessionkey"
	"snapapp/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateFixture struct {
	svc    *auth.Service
	gate   *Gate
	router *gin.Engine
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	logins := repository.NewLoginRepository(db)
	svc := auth.NewService(repository.NewUserRepository(db), logins, password.NewHasher(1000), auth.Settings{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		SessionKeyBits:  sessionkey.MinBits,
	}, logging.Discard())

	gate := NewGate(logins, DefaultPolicy(), logging.Discard())
	r := gin.New()
	echo := func(c *gin.Context, id domain.Identity) { c.JSON(http.StatusOK, id) }
	r.GET("/me", gate.Protect(domain.OpWhoAmI, echo))
	r.POST("/clients", gate.Protect(domain.OpAddClient, echo))

	return &gateFixture{svc: svc, gate: gate, router: r}
}

func (f *gateFixture) signUp(t *testing.T, email string, role domain.Role) *auth.SignUpResult {
	t.Helper()
	res, err := f.svc.SignUp(context.Background(), auth.SignUpRequest{Email: email, Password: "p", FirstName: "Ann", Role: role})
	require.NoError(t, err)
	return res
}

func (f *gateFixture) call(method, path, access string, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if access != "" {
		req.Header.Set(auth.HeaderAuthorization, "Bearer "+access)
	}
	if userID != "" {
		req.Header.Set(auth.HeaderUserID, userID)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestGate_Admits(t *testing.T) {
	f := newGateFixture(t)
	realtor := f.signUp(t, "r@x.com", domain.RoleRealtor)

	w := f.call(http.MethodGet, "/me", realtor.AccessToken, realtor.UserID.String())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var id domain.Identity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &id))
	assert.Equal(t, realtor.UserID, id.UserID)
	assert.Equal(t, "r@x.com", id.Email)
	assert.Equal(t, "Ann", id.FirstName)
	assert.Equal(t, domain.RoleRealtor, id.Role)
	assert.NotZero(t, id.LoginID)

	w = f.call(http.MethodPost, "/clients", realtor.AccessToken, realtor.UserID.String())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGate_Rejections(t *testing.T) {
	f := newGateFixture(t)
	client := f.signUp(t, "c@x.com", domain.RoleClient)
	other := f.signUp(t, "o@x.com", domain.RoleClient)
	uid := client.UserID.String()

	tests := []struct {
		name   string
		method string
		path   string
		access string
		userID string
		status int
		msg    string
	}{
		{"no authorization", http.MethodGet, "/me", "", uid, http.StatusUnauthorized, "Authorization header is required."},
		{"no user id", http.MethodGet, "/me", client.AccessToken, "", http.StatusNotFound, "Missing user id."},
		{"bad user id", http.MethodGet, "/me", client.AccessToken, "42", http.StatusNotFound, "Missing user id."},
		{"unknown user", http.MethodGet, "/me", client.AccessToken, uuid.NewString(), http.StatusUnauthorized, "Authentication failed."},
		{"garbage token", http.MethodGet, "/me", "garbage", uid, http.StatusBadRequest, "Invalid token."},
		{"refresh as access", http.MethodGet, "/me", client.RefreshToken, uid, http.StatusBadRequest, "Invalid token."},
		{"someone else's token", http.MethodGet, "/me", other.AccessToken, uid, http.StatusBadRequest, "Invalid token."},
		{"wrong role", http.MethodPost, "/clients", client.AccessToken, uid, http.StatusUnauthorized, "Access Unauthorized."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.call(tt.method, tt.path, tt.access, tt.userID)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, w.Body.String())
		})
	}
}

func TestGate_StaleEpochRejected(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()
	signed := f.signUp(t, "a@x.com", domain.RoleClient)
	uid := signed.UserID.String()

	time.Sleep(2 * time.Millisecond)
	renewed, err := f.svc.RenewToken(ctx, signed.RefreshToken, signed.UserID)
	require.NoError(t, err)

	w := f.call(http.MethodGet, "/me", signed.AccessToken, uid)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid token.", w.Body.String())

	w = f.call(http.MethodGet, "/me", renewed.AccessToken, uid)
	assert.Equal(t, http.StatusOK, w.Code)

	time.Sleep(2 * time.Millisecond)
	relogged, err := f.svc.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)

	w = f.call(http.MethodGet, "/me", renewed.AccessToken, uid)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.call(http.MethodGet, "/me", relogged.AccessToken, uid)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGate_Expired(t *testing.T) {
	f := newGateFixture(t)
	signed := f.signUp(t, "a@x.com", domain.RoleRealtor)
	f.gate.now = func() time.Time { return time.Now().Add(time.Hour) }

	w := f.call(http.MethodGet, "/me", signed.AccessToken, signed.UserID.String())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication expired.", w.Body.String())
}

func TestGate_ExpiryCheckedBeforeRole(t *testing.T) {
	f := newGateFixture(t)
	client := f.signUp(t, "c@x.com", domain.RoleClient)
	f.gate.now = func() time.Time { return time.Now().Add(time.Hour) }

	_, err := f.gate.Authorize(context.Background(), domain.OpAddClient, "Bearer "+client.AccessToken, client.UserID.String())
	assert.ErrorIs(t, err, auth.ErrSessionExpired)
}

func TestGate_LogoutRevokesEverything(t *testing.T) {
	f := newGateFixture(t)
	signed := f.signUp(t, "a@x.com", domain.RoleClient)

	require.NoError(t, f.svc.Logout(context.Background(), signed.UserID))

	w := f.call(http.MethodGet, "/me", signed.AccessToken, signed.UserID.String())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication failed.", w.Body.String())
}

func TestGate_UnknownOperation(t *testing.T) {
	f := newGateFixture(t)

	assert.Panics(t, func() {
		f.gate.Protect("Nope", func(*gin.Context, domain.Identity) {})
	})

	_, err := f.gate.Authorize(context.Background(), "Nope", "Bearer x", uuid.NewString())
	assert.Error(t, err)
}

func TestPolicy_Allows(t *testing.T) {
	p := DefaultPolicy()

	assert.True(t, allows(p[domain.OpWhoAmI], domain.RoleClient))
	assert.True(t, allows(p[domain.OpAddProperty], domain.RoleRealtor))
	assert.False(t, allows(p[domain.OpAddProperty], domain.RoleClient))
	assert.False(t, allows(p[domain.OpAddTransaction], domain.RoleClient))
}
