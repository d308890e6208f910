package main

import (
	"context"
	"errors"
	"fmt"
	"hotspot-finder-service/internal/api"
	"hotspot-finder-service/internal/api/handlers"
	"hotspot-finder-service/internal/config"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (eBird, catalog) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zap.L().Sync() }()

	if envErr != nil {
		zap.L().Info("no .env file found, using environment variables")
	}

	if err := run(cfg); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
		_ = zap.L().Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := buildProviders(ctx, cfg)
	if err != nil {
		return err
	}
	defer p.close()

	router := api.NewRouter(&handlers.HotspotHandler{
		Hotspots:     p.hotspots,
		Observations: p.observations,
		Defaults: handlers.SearchDefaults{
			DistKm:                cfg.Search.DistKm,
			MaxResults:            cfg.Search.MaxResults,
			ObservationMaxResults: cfg.Search.ObservationMaxResults,
			SpeciesLookups:        cfg.Search.SpeciesLookups,
		},
		Params: matchingParams(cfg.Matching),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       seconds(cfg.Server.ReadTimeoutSecs),
		WriteTimeout:      seconds(cfg.Server.WriteTimeoutSecs),
		IdleTimeout:       seconds(cfg.Server.IdleTimeoutSecs),
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("source", cfg.Source),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return eris.Wrap(err, "listen and serve")
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), seconds(cfg.Server.ShutdownTimeoutSecs))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "graceful shutdown")
	}
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
