package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ReadConfig. reads ./data/config.yaml when present, environment variables always override it.
func ReadConfig() error {
	SetConfigDefaults()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetConfigDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6061)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", 10*time.Second)
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", 10*time.Second)
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", 60*time.Second)
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", 5*time.Second)
	viper.SetDefault("HTTP_SERVER_SHUTDOWN_TIMEOUT", 15*time.Second)

	viper.SetDefault("SNAPSHOT_PATH", "./data/network.yaml")
	viper.SetDefault("RESULT_CACHE_SIZE", 4096)
	viper.SetDefault("NEAREST_STOP_RADIUS_KM", 0.5)
	viper.SetDefault("BATCH_WORKERS", 4)

	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("LOG_LEVEL", "info")
}
