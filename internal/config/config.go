package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Join    JoinConfig    `yaml:"join" mapstructure:"join"`
	Enrich  EnrichConfig  `yaml:"enrich" mapstructure:"enrich"`
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Counts  CountsConfig  `yaml:"counts" mapstructure:"counts"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// JoinConfig configures the tabular join.
type JoinConfig struct {
	KeyColumn string `yaml:"key_column" mapstructure:"key_column"`
}

// EnrichConfig configures the enrichment pipeline.
type EnrichConfig struct {
	PopulationColumn string   `yaml:"population_column" mapstructure:"population_column"`
	IncomeColumn     string   `yaml:"income_column" mapstructure:"income_column"`
	ExtraColumns     []string `yaml:"extra_columns" mapstructure:"extra_columns"`
}

// GeocodeConfig holds geocoding provider settings.
type GeocodeConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	FocusLat      float64 `yaml:"focus_lat" mapstructure:"focus_lat"`
	FocusLon      float64 `yaml:"focus_lon" mapstructure:"focus_lon"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	AddressColumn string  `yaml:"address_column" mapstructure:"address_column"`
	Concurrency   int     `yaml:"concurrency" mapstructure:"concurrency"`
}

// CountsConfig configures the dashboard counts logger.
type CountsConfig struct {
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
	URLFile      string `yaml:"url_file" mapstructure:"url_file"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ServerConfig configures the artifact server.
type ServerConfig struct {
	Port         int    `yaml:"port" mapstructure:"port"`
	EnrichedPath string `yaml:"enriched_path" mapstructure:"enriched_path"`
	ReportPath   string `yaml:"report_path" mapstructure:"report_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OVERLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("join.key_column", "GEO_ID")
	v.SetDefault("enrich.population_column", "Total Population")
	v.SetDefault("enrich.income_column", "Median Household Income")
	v.SetDefault("geocode.base_url", "https://api.geocode.earth/v1/autocomplete")
	v.SetDefault("geocode.rate_per_second", 1.0)
	v.SetDefault("geocode.address_column", "Address")
	v.SetDefault("geocode.concurrency", 4)
	v.SetDefault("counts.database_path", "counts.db")
	v.SetDefault("counts.timeout_secs", 30)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.enriched_path", "enriched.geojson")
	v.SetDefault("server.report_path", "report.json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
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
