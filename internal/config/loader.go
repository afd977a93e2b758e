package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/finsmart/finsmart/pkg/constants"
)

// LoadConfig loads the configuration from file and environment variables.
// Precedence: environment > config file > defaults.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"/etc/finsmart/", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("FINSMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "finsmart.db")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.login.capacity", constants.LoginRateLimitPerMinute)
	v.SetDefault("rate_limit.login.refill_amount", constants.LoginRateLimitPerMinute)
	v.SetDefault("rate_limit.login.refill_interval", 60)
	v.SetDefault("rate_limit.default.capacity", constants.DefaultRateLimitPerMinute)
	v.SetDefault("rate_limit.default.refill_amount", constants.DefaultRateLimitPerMinute)
	v.SetDefault("rate_limit.default.refill_interval", 60)
	v.SetDefault("rate_limit.idle_ttl", 1800)

	v.SetDefault("audit.queue_size", constants.DefaultAuditQueueSize)
	v.SetDefault("audit.workers", constants.DefaultAuditWorkers)
	v.SetDefault("audit.write_timeout", 5)

	v.SetDefault("ai.base_url", "http://localhost:8000")
	v.SetDefault("ai.timeout", 10)
	v.SetDefault("ai.normal_max", 0.5)
	v.SetDefault("ai.suspicious_max", 0.8)

	v.SetDefault("export.enabled", false)
	v.SetDefault("export.topic", "finsmart.feedback")
	v.SetDefault("export.interval", 3600)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 3600)

	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.pprof_enabled", false)
}
