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
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/migrate"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logg := logger.New(logger.Bootstrap("api"))

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
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api stopped", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	pool, err := repository.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.App.IsDev() && cfg.DB.AutoMigrate {
		if err := migrate.UpFromPool(ctx, pool, migrate.DefaultDir, logg); err != nil {
			return err
		}
	}

	storeCurrency, err := cfg.Store.Unit()
	if err != nil {
		return err
	}

	catalog, err := repository.NewCatalog(pool)
	if err != nil {
		return err
	}
	carts, err := repository.NewCart(pool)
	if err != nil {
		return err
	}
	orders, err := repository.NewOrder(pool)
	if err != nil {
		return err
	}
	uow, err := repository.NewUnitOfWork(pool, cfg.Checkout.LockTimeout)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine, err := checkout.New(uow, checkout.Config{
		MaxAttempts: cfg.Checkout.MaxAttempts,
		Timeout:     cfg.Checkout.Timeout,
		BaseBackoff: cfg.Checkout.BaseBackoff,
		Currency:    storeCurrency,
	}, checkout.WithLogger(logg), checkout.WithMetrics(metrics.NewCheckoutMetrics(registry)))
	if err != nil {
		return err
	}

	cartService, err := cart.NewService(carts, catalog, storeCurrency, logg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr: ":" + cfg.App.Port,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Logger:   logg,
			DB:       pool,
			Catalog:  catalog,
			Carts:    cartService,
			Checkout: engine,
			Orders:   orders,
			Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithFields(ctx, map[string]any{"addr": server.Addr, "env": cfg.App.Env}), "api listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logg.Info(shutdownCtx, "api shutting down")
	return server.Shutdown(shutdownCtx)
}
