// Package router wires middleware and handlers into the gin engine and owns
// the HTTP server lifecycle.
package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/finsmart/finsmart/internal/application/dto"
	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/internal/infrastructure/audit"
	"github.com/finsmart/finsmart/internal/infrastructure/monitoring"
	"github.com/finsmart/finsmart/internal/infrastructure/ratelimit"
	"github.com/finsmart/finsmart/internal/interfaces/http/handlers"
	"github.com/finsmart/finsmart/internal/interfaces/http/middleware"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

// Dependencies bundles everything the router needs.
type Dependencies struct {
	Config   *config.Config
	Log      logger.Logger
	Metrics  *monitoring.Metrics
	Registry *ratelimit.Registry
	Sink     *audit.Sink
	DB       *gorm.DB

	Auth     *handlers.AuthHandler
	Feedback *handlers.FeedbackHandler
	AI       *handlers.AIHandler
}

// Router owns the configured gin engine and its http.Server.
type Router struct {
	engine *gin.Engine
	server *http.Server
	log    logger.Logger
}

// New builds the engine. Middleware order matters: the audit layer is
// outermost so it also records requests the rate limiter rejects.
func New(deps Dependencies) *Router {
	cfg := deps.Config
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Observability(deps.Metrics),
		middleware.Audit(deps.Sink),
		middleware.RateLimit(deps.Registry, cfg.RateLimit.Enabled, deps.Log, deps.Metrics),
		gin.Recovery(),
		middleware.Principal(cfg.Auth.JWTSecret, deps.Log),
	)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	healthHandler := handlers.NewHealthHandler(deps.DB)
	engine.GET("/health/live", healthHandler.Live)
	engine.GET("/health/ready", healthHandler.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Metrics.PprofEnabled {
		pprof.Register(engine)
	}

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/auth/login", deps.Auth.Login)

		ai := v1.Group("/ai")
		{
			ai.GET("/health", deps.AI.Health)

			authed := ai.Group("", middleware.RequireUser())
			{
				authed.POST("/predict-categories", deps.AI.PredictCategories)
				authed.POST("/normalise-merchants", deps.AI.NormalizeMerchants)
				authed.POST("/score-anomalies", deps.AI.ScoreAnomalies)
			}
		}

		feedback := v1.Group("/feedback", middleware.RequireUser())
		{
			feedback.POST("/category", deps.Feedback.SubmitCategory)
			feedback.POST("/merchant", deps.Feedback.SubmitMerchant)
			feedback.POST("/anomaly", deps.Feedback.SubmitAnomaly)
			feedback.GET("", deps.Feedback.List)
			feedback.GET("/stats", deps.Feedback.Stats)
			feedback.GET("/transaction/:id", deps.Feedback.ListByTransaction)
			feedback.DELETE("", deps.Feedback.DeleteAll)
		}
	}

	engine.NoRoute(func(c *gin.Context) {
		dto.SendError(c, errors.ErrNotFound("route"))
	})

	return &Router{
		engine: engine,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      engine,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		},
		log: deps.Log.WithComponent("http"),
	}
}

// Engine exposes the underlying engine, mainly for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Start blocks serving HTTP until the listener closes.
func (r *Router) Start(ctx context.Context) error {
	r.log.Info(ctx, "http server listening", logger.String("addr", r.server.Addr))
	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}
