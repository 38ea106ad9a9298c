package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	Env        string `mapstructure:"ENV"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	// Local storage.
	StoragePath string `mapstructure:"STORAGE_PATH"`

	// Asset resolution for venue images.
	AssetHost     string `mapstructure:"ASSET_HOST"`
	FallbackImage string `mapstructure:"FALLBACK_IMAGE"`

	// Coordinates substituted when the backend sends unparsable
	// latitude/longitude (city center).
	DefaultLatitude  float64 `mapstructure:"DEFAULT_LATITUDE"`
	DefaultLongitude float64 `mapstructure:"DEFAULT_LONGITUDE"`

	// Payment callback listener.
	CallbackAddr string `mapstructure:"CALLBACK_ADDR"`

	// Client-side politeness limit for outbound API calls.
	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	DeviceName string `mapstructure:"DEVICE_NAME"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("API_BASE_URL", "https://api.courtside.app")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_PATH", "courtside.db")
	viper.SetDefault("ASSET_HOST", "https://api.courtside.app")
	viper.SetDefault("FALLBACK_IMAGE", "https://api.courtside.app/assets/venue-placeholder.jpg")
	viper.SetDefault("DEFAULT_LATITUDE", -6.2088)
	viper.SetDefault("DEFAULT_LONGITUDE", 106.8456)
	viper.SetDefault("CALLBACK_ADDR", ":8971")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DEVICE_NAME", "courtside-cli")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
