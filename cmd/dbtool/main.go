package main

import (
	"fmt"
	"hotspot-finder-service/internal/config"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dbtool",
	Short: "Manage the offline hotspot catalog",
	Long:  "Creates the catalog schema, seeds hotspots from eBird-shaped JSON and runs nearby searches against the catalog.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		applyCatalogFlags(cmd, &cfg.Catalog)

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return cfg.Catalog.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("driver", "", "catalog driver (sqlite or postgres); overrides config")
	rootCmd.PersistentFlags().String("path", "", "SQLite database path; overrides config")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres connection URL; overrides config")

	rootCmd.AddCommand(initCmd, seedCmd, nearbyCmd)
}

func applyCatalogFlags(cmd *cobra.Command, c *config.CatalogConfig) {
	flags := cmd.Flags()
	if v, _ := flags.GetString("driver"); v != "" {
		c.Driver = v
	}
	if v, _ := flags.GetString("path"); v != "" {
		c.Path = v
	}
	if v, _ := flags.GetString("database-url"); v != "" {
		c.DatabaseURL = v
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
