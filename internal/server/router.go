// Package server wires the HTTP surface: middleware, public and gated API
// routes, and the ops-only internal group.
package server

import (
	"net/http"

	"snapapp/internal/domain/auth"
	"snapapp/internal/domain/realty"
	"snapapp/internal/logging"
	"snapapp/internal/middleware"
	"snapapp/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Auth        *auth.Handler
	Realty      *realty.Handler
	Gate        *middleware.Gate
	OpsTokens   *jwt.Service
	Log         logging.Logger
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORS(d.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		d.Auth.RegisterRoutes(v1, d.Gate)
		d.Realty.RegisterRoutes(v1, d.Gate)
	}

	internal := r.Group("/internal")
	internal.Use(middleware.InternalTokenAuth(d.OpsTokens, middleware.ScopePurgeLogins, d.Log))
	d.Auth.RegisterInternalRoutes(internal)

	return r
}
