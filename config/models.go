package config

import "time"

type AuthConfig struct {
	Secret    string `mapstructure:"secret" validate:"required,min=16"`
	ExpiryMin int    `mapstructure:"expiry_min"`
}

type WebhookConfig struct {
	// argon2id hashes of the accepted API keys
	APIKeyHashes []string `mapstructure:"api_key_hashes" validate:"required,min=1,dive,required"`
	RatePerSec   float64  `mapstructure:"rate_per_sec" validate:"gt=0"`
	Burst        int      `mapstructure:"burst" validate:"gt=0"`
}

type GitHubConfig struct {
	Owner   string        `mapstructure:"owner" validate:"required"`
	Repo    string        `mapstructure:"repo" validate:"required"`
	Token   string        `mapstructure:"token"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=file redis"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type DBConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
}

type RabbitMQConfig struct {
	BrokerLink   string `mapstructure:"broker_link"`
	ExchangeName string `mapstructure:"exchange_name"`
	ExchangeType string `mapstructure:"exchange_type"`
	RoutingKey   string `mapstructure:"routing_key"`
}

type MonitorConfig struct {
	Tag      string `mapstructure:"tag" validate:"required"`
	Name     string `mapstructure:"name" validate:"required"`
	Path0Day string `mapstructure:"path0Day" validate:"required"`
}

type Config struct {
	Port           int             `mapstructure:"port" validate:"gt=0"`
	Env            string          `mapstructure:"env"`
	ServiceName    string          `mapstructure:"service_name"`
	LogLevel       string          `mapstructure:"log_level"`
	Timezone       string          `mapstructure:"timezone" validate:"required"`
	RequestTimeout time.Duration   `mapstructure:"request_timeout" validate:"gt=0"`
	CORSOrigins    []string        `mapstructure:"cors_origins"`
	Store          *StoreConfig    `mapstructure:"store" validate:"required"`
	Redis          *RedisConfig    `mapstructure:"redis"`
	DB             *DBConfig       `mapstructure:"db"`
	RabbitMQ       *RabbitMQConfig `mapstructure:"rabbitmq"`
	Auth           *AuthConfig     `mapstructure:"auth" validate:"required"`
	Webhook        *WebhookConfig  `mapstructure:"webhook" validate:"required"`
	GitHub         *GitHubConfig   `mapstructure:"github" validate:"required"`
	Monitors       []MonitorConfig `mapstructure:"monitors" validate:"required,min=1,unique=Tag,unique=Path0Day,dive"`
}
