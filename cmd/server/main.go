package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/spin-wheel/internal/config"
	"github.com/DoyleJ11/spin-wheel/internal/config/env"
	"github.com/DoyleJ11/spin-wheel/internal/httpapi"
	"github.com/DoyleJ11/spin-wheel/internal/logging"
	"github.com/DoyleJ11/spin-wheel/internal/options"
	"github.com/DoyleJ11/spin-wheel/internal/session"
	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

func main() {
	if err := config.Load(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	logCfg, err := env.NewLogConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(logCfg.Level())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	httpCfg, err := env.NewHTTPConfig()
	if err != nil {
		return err
	}
	wheelCfg, err := env.NewWheelConfig()
	if err != nil {
		return err
	}
	providerCfg, err := env.NewProviderConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	s, err := session.New(ctx, session.Config{
		Layout:        wheelCfg.Layout(),
		Duration:      wheelCfg.Duration(),
		FrameInterval: wheelCfg.FrameInterval(),
		Logger:        logger,
	}, wheel.DefaultOptions())
	if err != nil {
		return err
	}

	gen := options.NewService(options.DefaultCatalog(), newProvider(providerCfg), logger)
	srv := &http.Server{
		Addr:              httpCfg.Address(),
		Handler:           httpapi.SetupRoutes(s, gen, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("layout", string(wheelCfg.Layout().Kind())),
			zap.String("provider", string(providerCfg.Kind())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		<-s.Done()
		logger.Info("shut down")
		return err
	})
	return g.Wait()
}

func newProvider(cfg config.ProviderConfig) options.Provider {
	switch cfg.Kind() {
	case config.ProviderAnthropic:
		return options.NewAnthropic(cfg.APIKey(), cfg.Model())
	case config.ProviderOpenAI:
		return options.NewOpenAI(cfg.APIKey(), cfg.Model(), cfg.BaseURL())
	default:
		return nil
	}
}
