package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Pipeline PipelineConfig
	Export   ExportConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// AllowedOrigins lists browser origins permitted by CORS, comma separated.
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// PipelineConfig holds tuning for the simulated extraction pipeline
type PipelineConfig struct {
	// StageInterval is the base spacing between scheduled stages.
	// The default schedule fires stage N at N*StageInterval after run start.
	StageInterval time.Duration `mapstructure:"stage_interval"`
}

// Validate checks that the pipeline configuration is usable
func (c *PipelineConfig) Validate() error {
	if c.StageInterval <= 0 {
		return errors.New("LOGIFLOW_PIPELINE_STAGE_INTERVAL must be positive")
	}
	return nil
}

// ExportConfig holds tuning for the simulated export lifecycle
type ExportConfig struct {
	// SettleDelay is how long an export request stays pending before it settles.
	SettleDelay time.Duration `mapstructure:"settle_delay"`
	// NotificationDuration is how long the acknowledgment toast stays visible.
	NotificationDuration time.Duration `mapstructure:"notification_duration"`
}

// Validate checks that the export configuration is usable
func (c *ExportConfig) Validate() error {
	if c.SettleDelay <= 0 {
		return errors.New("LOGIFLOW_EXPORT_SETTLE_DELAY must be positive")
	}
	if c.NotificationDuration <= 0 {
		return errors.New("LOGIFLOW_EXPORT_NOTIFICATION_DURATION must be positive")
	}
	return nil
}

// Load loads configuration from environment and config files.
// This function applies development defaults and is suitable for local development.
// For production use, prefer LoadWithValidation which enforces required configuration.
func Load(serviceName string) (*Config, error) {
	return loadConfig(serviceName, true)
}

// LoadWithValidation loads configuration and validates it for the current environment.
// Use this function in service main() for fail-fast behavior.
func LoadWithValidation(serviceName string) (*Config, error) {
	cfg, err := loadConfig(serviceName, true)
	if err != nil {
		return nil, err
	}

	if err := cfg.Pipeline.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline configuration error: %w", err)
	}
	if err := cfg.Export.Validate(); err != nil {
		return nil, fmt.Errorf("export configuration error: %w", err)
	}

	// A wide-open CORS list is a development convenience only
	if cfg.Server.Environment == EnvProduction || cfg.Server.Environment == EnvStaging {
		if cfg.Server.AllowedOrigins == "" || cfg.Server.AllowedOrigins == "*" {
			return nil, errors.New("LOGIFLOW_SERVER_ALLOWED_ORIGINS must be set to explicit origins in " + cfg.Server.Environment)
		}
	}

	return cfg, nil
}

// loadConfig is the internal configuration loader
func loadConfig(serviceName string, applyDefaults bool) (*Config, error) {
	v := viper.New()

	// Set defaults if requested
	if applyDefaults {
		setDefaults(v)
	}

	// Read from environment variables
	v.SetEnvPrefix("LOGIFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from config file if exists
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/logiflow")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", "http://localhost:3000,http://localhost:5173")

	// Pipeline default cadence: seven stages, one every 500ms,
	// terminal at 3.5s.
	v.SetDefault("pipeline.stage_interval", 500*time.Millisecond)

	// Export defaults: 1.5s pending window, 4s toast
	v.SetDefault("export.settle_delay", 1500*time.Millisecond)
	v.SetDefault("export.notification_duration", 4*time.Second)
}
