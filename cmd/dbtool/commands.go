package main

import (
	"context"
	"fmt"
	"hotspot-finder-service/internal/adapters/repositories"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/ports"
	"hotspot-finder-service/internal/services"
	"math"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the catalog schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, closeFn, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		zap.L().Info("schema ready", zap.String("driver", cfg.Catalog.Driver))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load hotspots from a JSON file into the catalog",
	Long:  "Reads an array of eBird hotspot records (locId, locName, lat, lng, ...) and upserts them. Defaults to catalog.seed_path.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Catalog.SeedPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("seed: no file given and catalog.seed_path is empty")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		catalog, closeFn, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		n, err := repositories.SeedFromFile(ctx, catalog, path)
		if err != nil {
			return err
		}

		zap.L().Info("seeding complete", zap.String("path", path), zap.Int("hotspots", n))
		return nil
	},
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Rank catalog hotspots around a point",
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		lat, _ := flags.GetFloat64("lat")
		lng, _ := flags.GetFloat64("lng")
		dist, _ := flags.GetFloat64("dist")
		maxResults, _ := flags.GetInt("max-results")

		ref := domain.PointAt(lat, lng)
		if !ref.Known {
			return fmt.Errorf("nearby: invalid coordinates (%v, %v)", lat, lng)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		catalog, closeFn, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		params := services.Params{
			EarthRadiusKm: cfg.Matching.EarthRadiusKm,
			MatchRadiusKm: cfg.Matching.MatchRadiusKm,
			MaxDisplayKm:  cfg.Matching.MaxDisplayKm,
		}
		if flags.Changed("max-display-km") {
			params.MaxDisplayKm, _ = flags.GetFloat64("max-display-km")
		}

		res, err := services.FindNearbyHotspots(ctx, services.FindHotspotsRequest{
			Ref:        ref,
			DistKm:     dist,
			MaxResults: maxResults,
			Params:     params,
		}, catalog, nil)
		if err != nil {
			return err
		}

		printRanked(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	nearbyCmd.Flags().Float64("lat", math.NaN(), "reference latitude")
	nearbyCmd.Flags().Float64("lng", math.NaN(), "reference longitude")
	nearbyCmd.Flags().Float64("dist", 25, "search radius in km")
	nearbyCmd.Flags().Int("max-results", 0, "maximum hotspots to fetch (0 = all)")
	nearbyCmd.Flags().Float64("max-display-km", services.DefaultMaxDisplayKm, "display radius in km (0 disables)")
	_ = nearbyCmd.MarkFlagRequired("lat")
	_ = nearbyCmd.MarkFlagRequired("lng")
}

func openCatalog(ctx context.Context) (ports.HotspotCatalog, func(), error) {
	return repositories.OpenCatalog(ctx, repositories.CatalogOptions{
		Driver:      cfg.Catalog.Driver,
		Path:        cfg.Catalog.Path,
		DatabaseURL: cfg.Catalog.DatabaseURL,
	})
}
