package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Behavior      BehaviorConfig      `mapstructure:"behavior"`
	Geo           GeoConfig           `mapstructure:"geo"`
	Verification  VerificationConfig  `mapstructure:"verification"`
	Alerts        AlertsConfig        `mapstructure:"alerts"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	WebSocket     WebSocketConfig     `mapstructure:"websocket"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Host        string `mapstructure:"host"`
	SwaggerURL  string `mapstructure:"swagger_url"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type AuthConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	BcryptCost     int           `mapstructure:"bcrypt_cost"`
	AllowSignUps   bool          `mapstructure:"allow_signups"`
	AdminEmails    []string      `mapstructure:"admin_emails"`
	MinPasswordLen int           `mapstructure:"min_password_length"`
}

// BehaviorConfig selects where per-fingerprint request windows live.
// "memory" keeps them in process, "redis" shares them across instances.
type BehaviorConfig struct {
	Store           string        `mapstructure:"store"`
	Window          time.Duration `mapstructure:"window"`
	JanitorInterval time.Duration `mapstructure:"janitor_interval"`
}

type GeoConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type VerificationConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type AlertsConfig struct {
	Workers   int           `mapstructure:"workers"`
	QueueSize int           `mapstructure:"queue_size"`
	Window    time.Duration `mapstructure:"window"`
	// MinConfidence is the confidence a bot hit must exceed to trigger an alert check.
	MinConfidence float64 `mapstructure:"min_confidence"`
}

type NotificationsConfig struct {
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	Webhook WebhookConfig `mapstructure:"webhook"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type WebhookConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxFailures uint32        `mapstructure:"max_failures"`
}

type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Topic   string `mapstructure:"topic"`
}

type WebSocketConfig struct {
	MaxConnections int `mapstructure:"max_connections"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("⚠️ Warning: Could not load main config file: %v", err)
	}
	setDefaultValues(&globalConfig)
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8001
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 12
	}
	if cfg.Auth.MinPasswordLen == 0 {
		cfg.Auth.MinPasswordLen = 8
	}
	if cfg.Behavior.Store == "" {
		cfg.Behavior.Store = "memory"
	}
	if cfg.Behavior.Window == 0 {
		cfg.Behavior.Window = 60 * time.Second
	}
	if cfg.Behavior.JanitorInterval == 0 {
		cfg.Behavior.JanitorInterval = 30 * time.Second
	}
	if cfg.Geo.BaseURL == "" {
		cfg.Geo.BaseURL = "http://ip-api.com/json/"
	}
	if cfg.Geo.Timeout == 0 {
		cfg.Geo.Timeout = 2 * time.Second
	}
	if cfg.Geo.CacheTTL == 0 {
		cfg.Geo.CacheTTL = time.Hour
	}
	if cfg.Verification.Timeout == 0 {
		cfg.Verification.Timeout = 5 * time.Second
	}
	if cfg.Alerts.Workers == 0 {
		cfg.Alerts.Workers = 4
	}
	if cfg.Alerts.QueueSize == 0 {
		cfg.Alerts.QueueSize = 1000
	}
	if cfg.Alerts.Window == 0 {
		cfg.Alerts.Window = time.Hour
	}
	if cfg.Alerts.MinConfidence == 0 {
		cfg.Alerts.MinConfidence = 0.5
	}
	if cfg.Notifications.Webhook.Timeout == 0 {
		cfg.Notifications.Webhook.Timeout = 5 * time.Second
	}
	if cfg.Notifications.Webhook.MaxFailures == 0 {
		cfg.Notifications.Webhook.MaxFailures = 5
	}
	if cfg.WebSocket.MaxConnections == 0 {
		cfg.WebSocket.MaxConnections = 500
	}
}

func GetConfig() *Config {
	return &globalConfig
}
