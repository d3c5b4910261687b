package realty

import (
	"snapapp/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup, gate Protector) {
	v1.GET("/me", gate.Protect(domain.OpWhoAmI, h.WhoAmI))
	v1.POST("/clients", gate.Protect(domain.OpAddClient, h.AddClient))

	properties := v1.Group("/properties")
	{
		properties.GET("", gate.Protect(domain.OpListProperties, h.ListProperties))
		properties.POST("", gate.Protect(domain.OpAddProperty, h.AddProperty))
	}

	v1.POST("/transactions", gate.Protect(domain.OpAddTransaction, h.AddTransaction))
}
