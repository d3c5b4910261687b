package middleware

import (
	"net/http"

	"snapapp/internal/domain/auth"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/jwt"
	"snapapp/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	OpsSubject       = "ops"
	ScopePurgeLogins = "logins:purge"
)

// InternalTokenAuth protects internal endpoints with an HS256 ops token that
// must carry the given scope.
func InternalTokenAuth(tokens *jwt.Service, scope string, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.BearerToken(c.GetHeader(auth.HeaderAuthorization))
		if err != nil {
			logAuthFailure(c, log, http.StatusUnauthorized, "missing_auth")
			response.Abort(c, http.StatusUnauthorized, "Authorization header is required.")
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			logAuthFailure(c, log, http.StatusUnauthorized, "invalid_token")
			response.Abort(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		if claims.Subject != OpsSubject || claims.Scope != scope {
			logAuthFailure(c, log, http.StatusForbidden, "wrong_scope")
			response.Abort(c, http.StatusForbidden, "Access Unauthorized.")
			return
		}

		c.Next()
	}
}

func logAuthFailure(c *gin.Context, log logging.Logger, status int, reason string) {
	log.Warn(c.Request.Context(), "internal auth rejected",
		"status", status, "request_id", requestID(c), "reason", reason, "path", c.Request.URL.Path)
}
