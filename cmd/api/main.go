package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/lumenarts/gallery-api/api/routes"
	"github.com/lumenarts/gallery-api/internal/admins"
	"github.com/lumenarts/gallery-api/internal/auth"
	"github.com/lumenarts/gallery-api/internal/blogs"
	"github.com/lumenarts/gallery-api/internal/categories"
	"github.com/lumenarts/gallery-api/internal/products"
	"github.com/lumenarts/gallery-api/internal/sequence"
	"github.com/lumenarts/gallery-api/internal/settings"
	"github.com/lumenarts/gallery-api/internal/styles"
	"github.com/lumenarts/gallery-api/internal/variants"
	"github.com/lumenarts/gallery-api/pkg/auth/session"
	"github.com/lumenarts/gallery-api/pkg/config"
	"github.com/lumenarts/gallery-api/pkg/db"
	"github.com/lumenarts/gallery-api/pkg/logger"
	"github.com/lumenarts/gallery-api/pkg/migrate"
	"github.com/lumenarts/gallery-api/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var (
		redisClient *redis.Client
		revocations *session.Revocations
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		if revocations, err = session.NewRevocations(redisClient); err != nil {
			return err
		}
	} else {
		logg.Warn(ctx, "redis not configured: login rate limiting and logout revocation disabled")
	}

	gormDB := dbClient.DB()
	productRepo := products.NewRepository(gormDB)
	categoryRepo := categories.NewRepository(gormDB)
	variantRepo := variants.NewRepository(gormDB)
	adminRepo := admins.NewRepository(gormDB)

	result, err := admins.EnsureAdmin(ctx, adminRepo, cfg.Admin, cfg.Password, logg)
	if err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "result", string(result)), "admin bootstrap complete")

	sequences, err := sequence.NewGenerator(sequence.NewRepository(gormDB), cfg.Catalog.BarcodePrefix)
	if err != nil {
		return err
	}

	params := routes.Params{
		Config:   cfg,
		Logger:   logg,
		DB:       dbClient,
		Redis:    redisClient,
		Registry: newRegistry(),
	}
	if revocations != nil {
		params.Revocations = revocations
	}

	authParams := auth.ServiceParams{
		AdminRepo:      adminRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	}
	if revocations != nil {
		authParams.Revoker = revocations
	}
	if params.Auth, err = auth.NewService(authParams); err != nil {
		return err
	}
	if params.Products, err = products.NewService(productRepo, variantRepo, categoryRepo, sequences); err != nil {
		return err
	}
	if params.Categories, err = categories.NewService(categoryRepo, productRepo); err != nil {
		return err
	}
	if params.Styles, err = styles.NewService(styles.NewRepository(gormDB), productRepo); err != nil {
		return err
	}
	if params.Variants, err = variants.NewService(variantRepo, productRepo); err != nil {
		return err
	}
	if params.Blogs, err = blogs.NewService(blogs.NewRepository(gormDB)); err != nil {
		return err
	}
	if params.Settings, err = settings.NewService(settings.NewRepository(gormDB)); err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(params),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
