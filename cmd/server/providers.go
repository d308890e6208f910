package main

import (
	"context"
	"hotspot-finder-service/internal/adapters/ebird"
	"hotspot-finder-service/internal/adapters/repositories"
	"hotspot-finder-service/internal/config"
	"hotspot-finder-service/internal/ports"
	"hotspot-finder-service/internal/services"

	"go.uber.org/zap"
)

type providers struct {
	hotspots     ports.HotspotProvider
	observations ports.ObservationProvider
	close        func()
}

// buildProviders selects the hotspot source. The eBird client also serves
// observations whenever an API key is configured, including in catalog mode.
func buildProviders(ctx context.Context, cfg *config.Config) (*providers, error) {
	p := &providers{close: func() {}}

	var client *ebird.Client
	if cfg.EBird.APIKey != "" {
		c, err := newEBirdClient(cfg.EBird)
		if err != nil {
			return nil, err
		}
		client = c
		p.observations = client
	}

	switch cfg.Source {
	case config.SourceCatalog:
		catalog, closeFn, err := repositories.OpenCatalog(ctx, repositories.CatalogOptions{
			Driver:      cfg.Catalog.Driver,
			Path:        cfg.Catalog.Path,
			DatabaseURL: cfg.Catalog.DatabaseURL,
		})
		if err != nil {
			return nil, err
		}
		p.close = closeFn
		p.hotspots = catalog

		if cfg.Catalog.SeedPath != "" {
			n, err := repositories.SeedFromFile(ctx, catalog, cfg.Catalog.SeedPath)
			if err != nil {
				closeFn()
				return nil, err
			}
			zap.L().Info("catalog seeded",
				zap.String("path", cfg.Catalog.SeedPath),
				zap.Int("hotspots", n),
			)
		}

		if client == nil {
			zap.L().Warn("no eBird API key; nearby results will carry no species")
		}

	default:
		p.hotspots = client
	}

	return p, nil
}

func newEBirdClient(cfg config.EBirdConfig) (*ebird.Client, error) {
	opts := []ebird.Option{ebird.WithRateLimit(cfg.RequestsPerSecond)}
	if cfg.BaseURL != "" {
		opts = append(opts, ebird.WithBaseURL(cfg.BaseURL))
	}
	if cfg.TimeoutSecs > 0 {
		opts = append(opts, ebird.WithTimeout(seconds(cfg.TimeoutSecs)))
	}
	return ebird.NewClient(cfg.APIKey, opts...)
}

func matchingParams(m config.MatchingConfig) services.Params {
	return services.Params{
		EarthRadiusKm: m.EarthRadiusKm,
		MatchRadiusKm: m.MatchRadiusKm,
		MaxDisplayKm:  m.MaxDisplayKm,
	}
}
