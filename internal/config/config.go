package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service configuration, loaded from .env and the
// environment.
type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Data source selection: "stub" (offline demo data) or "sportsdataio"
	DataSource         string `mapstructure:"DATA_SOURCE"`
	SportsDataIOAPIKey string `mapstructure:"SPORTSDATAIO_API_KEY"`

	// Engine behavior
	StarterPolicy       string  `mapstructure:"STARTER_POLICY"`
	RenormalizeRZShares bool    `mapstructure:"RENORMALIZE_RZ_SHARES"`
	TeamPassAttempts    float64 `mapstructure:"TEAM_PASS_ATTEMPTS"`
	LeagueCatchRate     float64 `mapstructure:"LEAGUE_CATCH_RATE"`

	// Upstream resilience
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Background cache warming
	EnableCacheRefresher bool   `mapstructure:"ENABLE_CACHE_REFRESHER"`
	RefreshSchedule      string `mapstructure:"REFRESH_SCHEDULE"`
	RefreshTeams         string `mapstructure:"REFRESH_TEAMS"`
	RefreshWeek          int    `mapstructure:"REFRESH_WEEK"`
}

// LoadConfig reads configuration from .env and the environment with
// sensible defaults.
func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("DATA_SOURCE", "stub")
	viper.SetDefault("SPORTSDATAIO_API_KEY", "")
	viper.SetDefault("STARTER_POLICY", "lenient")
	viper.SetDefault("RENORMALIZE_RZ_SHARES", false)
	viper.SetDefault("TEAM_PASS_ATTEMPTS", 40.0)
	viper.SetDefault("LEAGUE_CATCH_RATE", 0.65)
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "10s")
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("ENABLE_CACHE_REFRESHER", false)
	viper.SetDefault("REFRESH_SCHEDULE", "*/30 * * * *")
	viper.SetDefault("REFRESH_TEAMS", "")
	viper.SetDefault("REFRESH_WEEK", 0)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.StarterPolicy != "strict" && config.StarterPolicy != "lenient" {
		return nil, fmt.Errorf("invalid STARTER_POLICY %q: must be strict or lenient", config.StarterPolicy)
	}
	if config.DataSource != "stub" && config.DataSource != "sportsdataio" {
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: must be stub or sportsdataio", config.DataSource)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
