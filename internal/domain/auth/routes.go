package auth

import (
	"snapapp/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup, gate Protector) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/renew", h.RenewToken)
		authGroup.POST("/logout", gate.Protect(domain.OpLogout, h.Logout))
	}
}

// RegisterInternalRoutes expects a group already guarded by InternalTokenAuth.
func (h *Handler) RegisterInternalRoutes(internal *gin.RouterGroup) {
	internal.POST("/logins/purge", h.PurgeStaleLogins)
}
