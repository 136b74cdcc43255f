package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// SetConfigDefaults registers the default value of every configuration key. binaries call it before ReadConfig so
// a missing config file still yields a usable configuration.
func SetConfigDefaults() {
	viper.SetDefault("dataset.path", "./data/gopherway_routes.geojson")

	viper.SetDefault("navigator.walking_speed_mph", 3.0)
	viper.SetDefault("navigator.route_color", "green")
	viper.SetDefault("navigator.dim_opacity", 0.1)

	viper.SetDefault("map.center_lat", 44.973305)
	viper.SetDefault("map.center_lon", -93.238386)
	viper.SetDefault("map.zoom", 16)

	viper.SetDefault("spatial.search_radius_km", 0.05)
	viper.SetDefault("spatial.max_search_radius_km", 0.5)

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("LOG_LEVEL", "info")
}

// ReadConfig reads ./data/config.yaml. a missing file is not an error, the defaults apply.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./data/")
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
