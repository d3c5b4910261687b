package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"snapapp/internal/domain"
	"snapapp/internal/domain/auth"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/response"
	"snapapp/internal/pkg/sessionkey"
	"snapapp/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoginReader interface {
	GetLoginInfoByUserID(ctx context.Context, userID uuid.UUID) (*domain.LoginInfo, error)
}

// Gate authorizes requests to protected operations. It re-reads the caller's
// login record on every request; nothing is cached.
type Gate struct {
	logins LoginReader
	policy Policy
	log    logging.Logger
	now    func() time.Time
}

func NewGate(logins LoginReader, policy Policy, log logging.Logger) *Gate {
	return &Gate{
		logins: logins,
		policy: policy,
		log:    log.With("component", "gate"),
		now:    time.Now,
	}
}

// Authorize checks, in order: both headers present, a session record with a
// keypair, an access token that decodes under it and belongs to the current
// epoch, an unexpired session, and finally the role.
func (g *Gate) Authorize(ctx context.Context, op domain.Operation, authorization, userIDHeader string) (domain.Identity, error) {
	roles, ok := g.policy[op]
	if !ok {
		return domain.Identity{}, fmt.Errorf("gate: unknown operation %q", op)
	}

	raw, err := auth.BearerToken(authorization)
	if err != nil {
		return domain.Identity{}, err
	}
	userID, err := auth.ParseUserID(userIDHeader)
	if err != nil {
		return domain.Identity{}, err
	}

	info, err := g.logins.GetLoginInfoByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Identity{}, auth.ErrSessionNotFound
		}
		return domain.Identity{}, fmt.Errorf("gate: %w", err)
	}
	login := info.Login
	if login == nil || len(login.CryptoKeys) == 0 {
		return domain.Identity{}, auth.ErrSessionNotFound
	}
	kp, err := sessionkey.Parse(login.CryptoKeys)
	if err != nil {
		return domain.Identity{}, auth.ErrSessionNotFound
	}

	at, err := token.DecodeAccess(raw, kp)
	if err != nil {
		return domain.Identity{}, auth.ErrMalformedToken
	}
	if at.UserID != login.UserID || at.Role != info.User.Role || !at.IssuedOn.Equal(login.CreatedOn) {
		return domain.Identity{}, auth.ErrTokenEpochMismatch
	}

	if login.IsExpired(g.now()) {
		return domain.Identity{}, auth.ErrSessionExpired
	}
	if !allows(roles, at.Role) {
		return domain.Identity{}, auth.ErrRoleDenied
	}

	return domain.NewIdentity(info), nil
}

// Protect wraps h so it only runs for callers authorized for op. It panics
// when op has no policy entry, which surfaces at route registration.
func (g *Gate) Protect(op domain.Operation, h func(*gin.Context, domain.Identity)) gin.HandlerFunc {
	if _, ok := g.policy[op]; !ok {
		panic(fmt.Sprintf("gate: no policy for operation %q", op))
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, err := g.Authorize(ctx, op, c.GetHeader(auth.HeaderAuthorization), c.GetHeader(auth.HeaderUserID))
		if err != nil {
			status, msg := gateStatus(err)
			if status == http.StatusInternalServerError {
				g.log.Error(ctx, "authorization failed", "operation", op, "error", err)
			} else {
				g.log.Warn(ctx, "request rejected", "operation", op, "status", status, "reason", err.Error())
			}
			response.Abort(c, status, msg)
			return
		}

		c.Set(ctxUserIDKey, id.UserID.String())
		c.Set(ctxRoleKey, string(id.Role))
		h(c, id)
	}
}

func gateStatus(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrMissingAuthHeader):
		return http.StatusUnauthorized, "Authorization header is required."
	case errors.Is(err, auth.ErrMissingUserID):
		return http.StatusNotFound, "Missing user id."
	case errors.Is(err, auth.ErrSessionNotFound):
		return http.StatusUnauthorized, "Authentication failed."
	case errors.Is(err, auth.ErrMalformedToken), errors.Is(err, auth.ErrTokenEpochMismatch):
		return http.StatusBadRequest, "Invalid token."
	case errors.Is(err, auth.ErrSessionExpired):
		return http.StatusUnauthorized, "Authentication expired."
	case errors.Is(err, auth.ErrRoleDenied):
		return http.StatusUnauthorized, "Access Unauthorized."
	default:
		return http.StatusInternalServerError, response.InternalErrorMessage
	}
}
