package api

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/Domenick1991/flightshop/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	Logger         *slog.Logger
	Sessions       session.Store
	Session        SessionOptions
	SwaggerDir     string
	TrustedProxies []string
}

// Registrar is implemented by every handler.
type Registrar interface {
	Register(router *gin.RouterGroup)
}

// NewRouter wires the public storefront handlers at the root and admin under
// /admin behind RequireAdmin.
func NewRouter(cfg RouterConfig, adminHandler Registrar, handlers ...Registrar) *gin.Engine {
	r := gin.New()
	// ClientIP keys the login throttle, so forwarded headers count only from
	// configured proxies.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		cfg.Logger.Warn("invalid trusted proxies, using socket addresses", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger), Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerDir != "" {
		r.StaticFile("/docs/swagger.json", filepath.Join(cfg.SwaggerDir, "swagger.json"))
		r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/swagger.json"))))
	}

	site := r.Group("/", Sessions(cfg.Sessions, cfg.Session))
	for _, h := range handlers {
		h.Register(site)
	}
	if adminHandler != nil {
		adminHandler.Register(site.Group("/admin", RequireAdmin()))
	}
	return r
}
