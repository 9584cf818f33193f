package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"newshub/docs"
	"newshub/internal/auth"
	"newshub/internal/config"
	"newshub/internal/database"
	"newshub/internal/database/migration"
	handlers "newshub/internal/http/handler"
	"newshub/internal/http/middleware"
	"newshub/internal/logging"
	"newshub/internal/otel"
	"newshub/internal/payment"
	"newshub/internal/repository/postgres"
	"newshub/internal/service"
	"newshub/internal/storage"
)

const (
	bodyLimit       = 8 << 20
	shutdownTimeout = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.Location())
	slog.SetDefault(logger)

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if _, err := migration.EnsureMigrated(db, logger, cfg.Database.Host); err != nil {
		return err
	}

	var store storage.Storage
	if cfg.MinIO.Endpoint != "" {
		store, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}
	} else {
		logger.Warn("object_storage_disabled", "component", "storage", "detail", "MINIO_ENDPOINT not set; logo uploads are unavailable")
	}
	if cfg.Payment.StripeSecretKey == "" {
		logger.Warn("payment_gateway_unconfigured", "component", "payment")
	}

	articleRepo := postgres.NewArticlePostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	paymentRepo := postgres.NewPaymentPostgres(db)

	userSvc := service.NewUserService(userRepo, paymentRepo)
	deps := handlers.Deps{
		DB:         db,
		Articles:   service.NewArticleService(articleRepo, userRepo),
		Users:      userSvc,
		Publishers: service.NewPublisherService(postgres.NewPublisherPostgres(db), store, cfg.MinIO.PresignExpiry),
		Payments: service.NewPaymentService(
			payment.NewStripe(cfg.Payment.StripeSecretKey, ""),
			paymentRepo,
			cfg.Payment.Currency,
		),
		Verifier: auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	deps.Gatherer = reg

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(logger),
		BodyLimit:             bodyLimit,
		UnescapePath:          true,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, cfg.Location()))
	app.Use(metrics.Handler())

	handlers.RegisterRoutes(app, deps)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started", "component", "http", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server_stopping", "component", "http")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
