package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func LoadConfig(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Validate
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadMonitors re-reads only the monitors section of the config file.
// It backs the registry reload endpoint, so the rest of the running
// configuration is never touched.
func LoadMonitors(path string) ([]MonitorConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	var monitors []MonitorConfig
	if err := v.UnmarshalKey("monitors", &monitors); err != nil {
		return nil, fmt.Errorf("unmarshal monitors: %w", err)
	}

	validate := validator.New()
	for i := range monitors {
		if err := validate.Struct(&monitors[i]); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				return nil, formatValidationErrors(ve)
			}
			return nil, err
		}
	}
	if len(monitors) == 0 {
		return nil, errors.New("config validation failed: no monitors configured")
	}

	return monitors, nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()

	// default first
	setDefaults(v)

	// File Config
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Env Config
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read File
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("service_name", "statusboard")
	v.SetDefault("port", 8080)
	v.SetDefault("timezone", "UTC")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("cors_origins", []string{"*"})

	v.SetDefault("auth.expiry_min", 30)

	v.SetDefault("webhook.rate_per_sec", 5)
	v.SetDefault("webhook.burst", 20)

	v.SetDefault("github.timeout", "15s")

	v.SetDefault("store.driver", "file")

	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.min_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", "1h")
	v.SetDefault("db.conn_max_idle_time", "30m")
	v.SetDefault("db.health_timeout", "5s")

	v.SetDefault("rabbitmq.exchange_name", "statusboard.events")
	v.SetDefault("rabbitmq.exchange_type", "topic")
	v.SetDefault("rabbitmq.routing_key", "incident.created")
}

func validateConfig(cfg *Config) error {

	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return formatValidationErrors(ve)
		}
		return err
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("config validation failed: timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.Store.Driver == "redis" && (cfg.Redis == nil || cfg.Redis.URL == "") {
		return errors.New("config validation failed: redis.url is required when store.driver is redis")
	}
	return nil
}

func formatValidationErrors(ve validator.ValidationErrors) error {
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")

	for _, fe := range ve {
		fmt.Fprintf(&sb, "- field '%s' failed on '%s'\n", fe.Namespace(), fe.Tag())
	}
	return errors.New(sb.String())
}
