package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("AURA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without the AURA_ prefix for container deploys
	viper.BindEnv("http.port", "HTTP_PORT", "AURA_HTTP_PORT")
	viper.BindEnv("database.url", "DATABASE_URL", "AURA_DATABASE_URL")
	viper.BindEnv("nats.url", "NATS_URL", "AURA_NATS_URL")
	viper.BindEnv("storage.driver", "STORAGE_DRIVER")
	viper.BindEnv("app.environment", "AURA_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file: defaults plus env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "auragameclub")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("http.allowed_origins", []string{"*"})
	viper.SetDefault("club.rooms", 5)
	viper.SetDefault("club.room_name_prefix", "Xona")
	viper.SetDefault("club.hourly_rate", 10000)
	viper.SetDefault("club.currency", "UZS")
	viper.SetDefault("club.display_tick", "1s")
	viper.SetDefault("storage.driver", "jsonfile")
	viper.SetDefault("storage.file_path", "data/state.json")
	viper.SetDefault("database.auto_migrate", true)
	viper.SetDefault("nats.enabled", false)
	viper.SetDefault("nats.url", "nats://localhost:4222")
	viper.SetDefault("prometheus.enabled", true)
	viper.SetDefault("prometheus.path", "/metrics")
	viper.SetDefault("logging.level", "info")
}
