package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/DoyleJ11/casual-games-backend/internal/bingo"
	"github.com/DoyleJ11/casual-games-backend/internal/config"
	"github.com/DoyleJ11/casual-games-backend/internal/engine"
	"github.com/DoyleJ11/casual-games-backend/internal/httpapi"
	"github.com/DoyleJ11/casual-games-backend/internal/hub"
	"github.com/DoyleJ11/casual-games-backend/internal/logger"
	"github.com/DoyleJ11/casual-games-backend/internal/metrics"
	"github.com/DoyleJ11/casual-games-backend/internal/preference"
	"github.com/DoyleJ11/casual-games-backend/internal/random"
	"github.com/DoyleJ11/casual-games-backend/internal/rps"
	"github.com/DoyleJ11/casual-games-backend/internal/table"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New()
	if err := m.Register(reg); err != nil {
		return err
	}

	source, err := random.NewSource(cfg.Seed)
	if err != nil {
		return err
	}
	matches := rps.NewRegistry(source.Rand(), m)
	machine := bingo.NewMachine(source.Rand(), m)

	store, err := preference.Open(cfg.PreferenceDriver, cfg.PreferenceDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	rules := engine.Rules{
		CountdownSec:   cfg.CountdownSec,
		StartBalance:   cfg.StartBalance,
		PayoutMultiple: engine.DefaultPayoutMultiple,
	}
	box := engine.Box{Width: float64(cfg.BoxWidth), Height: float64(cfg.BoxHeight)}

	// Only the hub goroutine calls this, so source needs no lock from here on.
	h := hub.NewHub(ctx, func(code string) table.Options {
		return table.Options{
			Rules:   rules,
			Box:     box,
			Rand:    source.Rand(),
			Logger:  lg.With(zap.String("table", code)),
			Metrics: m,
		}
	}, lg)

	handler := httpapi.SetupRoutes(httpapi.Deps{
		Hub:             h,
		Matches:         matches,
		Machine:         machine,
		Preferences:     store,
		Logger:          lg,
		Metrics:         m,
		Gatherer:        reg,
		DefaultLanguage: cfg.DefaultLanguage,
		OriginPatterns:  cfg.OriginPatterns,
	})

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	errc := make(chan error, 1)
	go func() {
		lg.Info("listening",
			zap.String("addr", cfg.Addr),
			zap.String("preferences", cfg.PreferenceDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	lg.Info("server exited")
	return nil
}
