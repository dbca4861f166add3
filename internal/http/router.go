package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/readee/gateway/internal/config"
	"github.com/readee/gateway/internal/http/handlers"
	"github.com/readee/gateway/internal/http/middleware"
	"github.com/readee/gateway/internal/mock"

	_ "github.com/readee/gateway/docs"
)

// Router builds the gateway. Every /api call goes out through client, whose
// transport is the mock layer's registry.
func Router(cfg config.Config, layer *mock.Layer, client *http.Client, gatherer prometheus.Gatherer, logger zerolog.Logger) (*gin.Engine, error) {
	base, err := url.Parse(cfg.BackendBase)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "X-Mock"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.CORSAllowed, ",")
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Client:      client,
		BackendBase: base,
		Mock:        layer,
		Logger:      logger,
		MaxBodySize: cfg.MaxUploadMB << 20,
	}

	r.GET("/healthz", h.Healthz)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	admin := r.Group("/_mock")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/reset", h.ResetMock)
	}

	r.NoRoute(h.Proxy)

	return r, nil
}
