package config

import (
	"fmt"
	"time"

	"github.com/finsmart/finsmart/pkg/constants"
)

// Config holds the application's configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Audit     AuditConfig     `mapstructure:"audit"`
	AI        AIConfig        `mapstructure:"ai"`
	Export    ExportConfig    `mapstructure:"export"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // seconds
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // "sqlite" or "postgres"
	DSN      string `mapstructure:"dsn"`    // sqlite path / :memory:
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int    `mapstructure:"max_conns"`
}

func (c *DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// BucketConfig configures one endpoint class's token bucket.
type BucketConfig struct {
	Capacity       int64 `mapstructure:"capacity"`
	RefillAmount   int64 `mapstructure:"refill_amount"`
	RefillInterval int   `mapstructure:"refill_interval"` // seconds
}

func (c BucketConfig) Interval() time.Duration {
	return time.Duration(c.RefillInterval) * time.Second
}

type RateLimitConfig struct {
	Enabled bool         `mapstructure:"enabled"`
	Login   BucketConfig `mapstructure:"login"`
	Default BucketConfig `mapstructure:"default"`
	IdleTTL int          `mapstructure:"idle_ttl"` // seconds, bucket eviction
}

func (c *RateLimitConfig) IdleDuration() time.Duration {
	if c.IdleTTL <= 0 {
		return constants.DefaultBucketIdleTTL
	}
	return time.Duration(c.IdleTTL) * time.Second
}

type AuditConfig struct {
	QueueSize    int `mapstructure:"queue_size"`
	Workers      int `mapstructure:"workers"`
	WriteTimeout int `mapstructure:"write_timeout"` // seconds
}

type AIConfig struct {
	BaseURL       string  `mapstructure:"base_url"`
	Timeout       int     `mapstructure:"timeout"` // seconds
	NormalMax     float64 `mapstructure:"normal_max"`
	SuspiciousMax float64 `mapstructure:"suspicious_max"`
}

func (c *AIConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return constants.DefaultAITimeout
	}
	return time.Duration(c.Timeout) * time.Second
}

type ExportConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
	Interval int      `mapstructure:"interval"` // seconds between export runs
}

func (c *ExportConfig) RunInterval() time.Duration {
	if c.Interval <= 0 {
		return time.Hour
	}
	return time.Duration(c.Interval) * time.Second
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	TokenTTL  int    `mapstructure:"token_ttl"` // seconds
	DemoEmail string `mapstructure:"demo_email"`
	DemoPass  string `mapstructure:"demo_pass"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	PprofEnabled bool `mapstructure:"pprof_enabled"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.RateLimit.Login.Capacity <= 0 || c.RateLimit.Default.Capacity <= 0 {
		return fmt.Errorf("rate limit capacities must be positive")
	}
	if c.AI.NormalMax > c.AI.SuspiciousMax {
		return fmt.Errorf("anomaly thresholds out of order: normal_max %.2f > suspicious_max %.2f",
			c.AI.NormalMax, c.AI.SuspiciousMax)
	}
	if c.Export.Enabled && len(c.Export.Brokers) == 0 {
		return fmt.Errorf("export enabled but no kafka brokers configured")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must be set")
	}
	return nil
}
