package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Database Database `mapstructure:"database"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Market   Market   `mapstructure:"market"`
	AI       AI       `mapstructure:"ai"`
}

// Database holds the configuration for the SQLite store.
type Database struct {
	Path string `mapstructure:"path"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Market holds the configuration for the quote provider and the gateway memo.
type Market struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// AI holds the optional credential for the assistant feature. An empty key is valid.
type AI struct {
	APIKey string `mapstructure:"api_key"`
}

// Enabled reports whether an AI credential was supplied.
func (a AI) Enabled() bool {
	return strings.TrimSpace(a.APIKey) != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "data/investment.db")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("market.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("market.timeout", 10*time.Second)
	v.SetDefault("market.cache_ttl", 5*time.Minute)
	v.SetDefault("market.rate_limit", 5)       // requests per second
	v.SetDefault("market.rate_limit_burst", 5) // burst size
	v.SetDefault("market.user_agent", "Mozilla/5.0 (investment-assistant)")

	v.SetDefault("ai.api_key", "")
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error: defaults and environment still apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}
