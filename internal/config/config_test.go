package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"EBIRD_API_KEY", "PORT", "DATABASE_URL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceEBird, cfg.Source)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "https://api.ebird.org", cfg.EBird.BaseURL)
	assert.Equal(t, 10, cfg.EBird.TimeoutSecs)
	assert.InDelta(t, 5.0, cfg.EBird.RequestsPerSecond, 0.001)
	assert.InDelta(t, 25.0, cfg.Search.DistKm, 0.001)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, 200, cfg.Search.ObservationMaxResults)
	assert.Equal(t, 0, cfg.Search.SpeciesLookups)
	assert.InDelta(t, 6371.0, cfg.Matching.EarthRadiusKm, 0.001)
	assert.InDelta(t, 0.5, cfg.Matching.MatchRadiusKm, 0.001)
	assert.InDelta(t, 8.0, cfg.Matching.MaxDisplayKm, 0.001)
	assert.Equal(t, DriverSQLite, cfg.Catalog.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)

	yaml := `
source: catalog
server:
  port: 9090
catalog:
  driver: postgres
  database_url: postgres://localhost/hotspots
matching:
  max_display_km: 0
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceCatalog, cfg.Source)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Catalog.Driver)
	assert.Equal(t, "postgres://localhost/hotspots", cfg.Catalog.DatabaseURL)
	assert.Equal(t, 0.0, cfg.Matching.MaxDisplayKm)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.InDelta(t, 0.5, cfg.Matching.MatchRadiusKm, 0.001)
	require.NoError(t, cfg.Validate())
}

func TestLoadPrefixedEnv(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	t.Setenv("HOTSPOTS_SEARCH_SPECIES_LOOKUPS", "3")
	t.Setenv("HOTSPOTS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Search.SpeciesLookups)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadBareEnvNames(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	t.Setenv("EBIRD_API_KEY", " secret-key ")
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://db/hotspots")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.EBird.APIKey)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "postgres://db/hotspots", cfg.Catalog.DatabaseURL)
	require.NoError(t, cfg.Validate())
}

func TestLoadPrefixedEnvWinsOverBare(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	t.Setenv("PORT", "8081")
	t.Setenv("HOTSPOTS_SERVER_PORT", "8082")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8082, cfg.Server.Port)
}

func validConfig() Config {
	return Config{
		Source:   SourceEBird,
		Server:   ServerConfig{Port: 3000},
		EBird:    EBirdConfig{APIKey: "k", RequestsPerSecond: 5},
		Search:   SearchConfig{DistKm: 25, MaxResults: 10, ObservationMaxResults: 200},
		Matching: MatchingConfig{EarthRadiusKm: 6371, MatchRadiusKm: 0.5, MaxDisplayKm: 8},
		Catalog:  CatalogConfig{Driver: DriverSQLite, Path: "hotspots.db"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "display radius disabled", mutate: func(c *Config) { c.Matching.MaxDisplayKm = 0 }},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "missing api key", mutate: func(c *Config) { c.EBird.APIKey = "" }, wantErr: "api_key"},
		{name: "unknown source", mutate: func(c *Config) { c.Source = "gbif" }, wantErr: "unknown source"},
		{name: "zero match radius", mutate: func(c *Config) { c.Matching.MatchRadiusKm = 0 }, wantErr: "match_radius_km"},
		{name: "negative display radius", mutate: func(c *Config) { c.Matching.MaxDisplayKm = -1 }, wantErr: "max_display_km"},
		{name: "zero search distance", mutate: func(c *Config) { c.Search.DistKm = 0 }, wantErr: "dist_km"},
		{
			name: "catalog without api key",
			mutate: func(c *Config) {
				c.Source = SourceCatalog
				c.EBird.APIKey = ""
			},
		},
		{
			name: "unknown catalog driver",
			mutate: func(c *Config) {
				c.Source = SourceCatalog
				c.Catalog.Driver = "mysql"
			},
			wantErr: "unknown catalog driver",
		},
		{
			name: "postgres without url",
			mutate: func(c *Config) {
				c.Source = SourceCatalog
				c.Catalog.Driver = DriverPostgres
			},
			wantErr: "database_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLogger(t *testing.T) {
	restore := zap.ReplaceGlobals(zap.NewNop())
	defer restore()

	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	err := InitLogger(LogConfig{Level: "loud", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}
