package config

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	SourceEBird   = "ebird"
	SourceCatalog = "catalog"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the top-level service configuration.
type Config struct {
	Source   string         `yaml:"source" mapstructure:"source"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	EBird    EBirdConfig    `yaml:"ebird" mapstructure:"ebird"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Matching MatchingConfig `yaml:"matching" mapstructure:"matching"`
	Catalog  CatalogConfig  `yaml:"catalog" mapstructure:"catalog"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

type ServerConfig struct {
	Port                int `yaml:"port" mapstructure:"port"`
	ReadTimeoutSecs     int `yaml:"read_timeout_secs" mapstructure:"read_timeout_secs"`
	WriteTimeoutSecs    int `yaml:"write_timeout_secs" mapstructure:"write_timeout_secs"`
	IdleTimeoutSecs     int `yaml:"idle_timeout_secs" mapstructure:"idle_timeout_secs"`
	ShutdownTimeoutSecs int `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
}

// EBirdConfig configures the upstream eBird API client.
type EBirdConfig struct {
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// SearchConfig bounds the upstream searches made per request.
type SearchConfig struct {
	DistKm                float64 `yaml:"dist_km" mapstructure:"dist_km"`
	MaxResults            int     `yaml:"max_results" mapstructure:"max_results"`
	ObservationMaxResults int     `yaml:"observation_max_results" mapstructure:"observation_max_results"`
	SpeciesLookups        int     `yaml:"species_lookups" mapstructure:"species_lookups"`
}

// MatchingConfig holds the engine constants.
// A MaxDisplayKm of 0 disables the display radius filter.
type MatchingConfig struct {
	EarthRadiusKm float64 `yaml:"earth_radius_km" mapstructure:"earth_radius_km"`
	MatchRadiusKm float64 `yaml:"match_radius_km" mapstructure:"match_radius_km"`
	MaxDisplayKm  float64 `yaml:"max_display_km" mapstructure:"max_display_km"`
}

// CatalogConfig configures the offline hotspot catalog.
type CatalogConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SeedPath    string `yaml:"seed_path" mapstructure:"seed_path"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HOTSPOTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for existing deployments.
	bindings := map[string][]string{
		"ebird.api_key":        {"HOTSPOTS_EBIRD_API_KEY", "EBIRD_API_KEY"},
		"server.port":          {"HOTSPOTS_SERVER_PORT", "PORT"},
		"catalog.database_url": {"HOTSPOTS_CATALOG_DATABASE_URL", "DATABASE_URL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, eris.Wrapf(err, "config: bind env for %s", key)
		}
	}

	v.SetDefault("source", SourceEBird)
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout_secs", 10)
	v.SetDefault("server.write_timeout_secs", 30)
	v.SetDefault("server.idle_timeout_secs", 60)
	v.SetDefault("server.shutdown_timeout_secs", 10)
	v.SetDefault("ebird.api_key", "")
	v.SetDefault("ebird.base_url", "https://api.ebird.org")
	v.SetDefault("ebird.timeout_secs", 10)
	v.SetDefault("ebird.requests_per_second", 5.0)
	v.SetDefault("search.dist_km", 25.0)
	v.SetDefault("search.max_results", 10)
	v.SetDefault("search.observation_max_results", 200)
	v.SetDefault("search.species_lookups", 0)
	v.SetDefault("matching.earth_radius_km", 6371.0)
	v.SetDefault("matching.match_radius_km", 0.5)
	v.SetDefault("matching.max_display_km", 8.0)
	v.SetDefault("catalog.driver", DriverSQLite)
	v.SetDefault("catalog.path", "hotspots.db")
	v.SetDefault("catalog.database_url", "")
	v.SetDefault("catalog.seed_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	cfg.Catalog.Driver = strings.ToLower(strings.TrimSpace(cfg.Catalog.Driver))
	cfg.EBird.APIKey = strings.TrimSpace(cfg.EBird.APIKey)

	return &cfg, nil
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return eris.Errorf("config: server.port %d out of range", c.Server.Port)
	}

	switch c.Source {
	case SourceEBird:
		if c.EBird.APIKey == "" {
			return eris.New("config: ebird.api_key (EBIRD_API_KEY) is required when source=ebird")
		}
		if c.EBird.RequestsPerSecond < 0 {
			return eris.New("config: ebird.requests_per_second must not be negative")
		}
	case SourceCatalog:
		if err := c.Catalog.Validate(); err != nil {
			return err
		}
	default:
		return eris.Errorf("config: unknown source %q", c.Source)
	}

	if !positive(c.Search.DistKm) {
		return eris.New("config: search.dist_km must be positive")
	}
	if c.Search.MaxResults < 0 || c.Search.ObservationMaxResults < 0 || c.Search.SpeciesLookups < 0 {
		return eris.New("config: search limits must not be negative")
	}

	if !positive(c.Matching.EarthRadiusKm) {
		return eris.New("config: matching.earth_radius_km must be positive")
	}
	if !positive(c.Matching.MatchRadiusKm) {
		return eris.New("config: matching.match_radius_km must be positive")
	}
	if c.Matching.MaxDisplayKm < 0 || math.IsNaN(c.Matching.MaxDisplayKm) || math.IsInf(c.Matching.MaxDisplayKm, 0) {
		return eris.New("config: matching.max_display_km must be zero or positive")
	}

	return nil
}

// Validate checks that the selected driver has a location to connect to.
func (c CatalogConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return eris.New("config: catalog.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return eris.New("config: catalog.database_url (DATABASE_URL) is required for the postgres driver")
		}
	default:
		return eris.Errorf("config: unknown catalog driver %q", c.Driver)
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
