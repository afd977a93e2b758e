// finsmart core service: adaptive rate limiting, async audit trail, AI
// feedback capture and the prediction gateway.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/finsmart/finsmart/internal/application/service"
	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/infrastructure/ai"
	"github.com/finsmart/finsmart/internal/infrastructure/audit"
	"github.com/finsmart/finsmart/internal/infrastructure/directory"
	"github.com/finsmart/finsmart/internal/infrastructure/export"
	"github.com/finsmart/finsmart/internal/infrastructure/monitoring"
	"github.com/finsmart/finsmart/internal/infrastructure/persistence"
	"github.com/finsmart/finsmart/internal/infrastructure/ratelimit"
	"github.com/finsmart/finsmart/internal/interfaces/http/handlers"
	"github.com/finsmart/finsmart/internal/interfaces/http/router"
	"github.com/finsmart/finsmart/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "finsmart: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := ratelimit.NewRegistry(
		ratelimit.RulesFromConfig(&cfg.RateLimit),
		cfg.RateLimit.IdleDuration(),
	)
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer, func() float64 {
		return float64(registry.Size())
	})

	db, err := persistence.Open(ctx, &cfg.Database, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	feedbackRepo := persistence.NewFeedbackRepository(db)
	auditRepo := persistence.NewAuditRepository(db)
	sink := audit.NewSink(auditRepo, &cfg.Audit, log, metrics)

	gateway := ai.NewHTTPGateway(&cfg.AI, log, metrics)
	resolver := persistence.NewGormTransactionResolver(db)
	thresholds := models.AnomalyThresholds{
		NormalMax:     cfg.AI.NormalMax,
		SuspiciousMax: cfg.AI.SuspiciousMax,
	}

	feedbackService := service.NewFeedbackAppService(feedbackRepo, log, metrics)
	aiService := service.NewAIAppService(gateway, resolver, thresholds, log)
	users := directory.NewStaticDirectory(&cfg.Auth)

	r := router.New(router.Dependencies{
		Config:   cfg,
		Log:      log,
		Metrics:  metrics,
		Registry: registry,
		Sink:     sink,
		DB:       db,
		Auth:     handlers.NewAuthHandler(users, &cfg.Auth, log),
		Feedback: handlers.NewFeedbackHandler(feedbackService, log),
		AI:       handlers.NewAIHandler(aiService, log),
	})

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return r.Start(groupCtx)
	})

	if cfg.Export.Enabled {
		exporter := export.NewKafkaExporter(&cfg.Export, log)
		defer exporter.Close()

		exportJob := service.NewExportService(
			feedbackRepo,
			exporter,
			cfg.Export.RunInterval(),
			log,
			metrics,
		)
		group.Go(func() error {
			if err := exportJob.Run(groupCtx); err != context.Canceled {
				return err
			}
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := r.Shutdown(shutdownCtx); err != nil {
			log.Error(shutdownCtx, "http shutdown failed", err)
		}
		if err := sink.Close(shutdownCtx); err != nil {
			log.Error(shutdownCtx, "audit sink close failed", err)
		}
		return nil
	})

	log.Info(ctx, "finsmart core started",
		logger.Int("port", cfg.Server.Port),
		logger.String("db_driver", cfg.Database.Driver),
		logger.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		logger.Int("login_limit", int(cfg.RateLimit.Login.Capacity)),
		logger.Int("default_limit", int(cfg.RateLimit.Default.Capacity)),
	)

	if err := group.Wait(); err != nil && err != context.Canceled {
		return err
	}
	log.Info(context.Background(), "finsmart core stopped")
	return nil
}
