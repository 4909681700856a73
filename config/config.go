package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisItineraryDB     int    `mapstructure:"REDIS_ITINERARY_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Google Maps Platform key (geocoding, directions, places).
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`

	// Gemini key for itinerary generation.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Voice assistant credentials.
	VapiPublicKey   string `mapstructure:"VAPI_PUBLIC_KEY"`
	VapiAssistantID string `mapstructure:"VAPI_ASSISTANT_ID"`
	VapiBaseURL     string `mapstructure:"VAPI_BASE_URL"`

	// External reservation agent endpoint.
	ReservationAgentURL string `mapstructure:"RESERVATION_AGENT_URL"`

	// Firebase service account for ID token verification and FCM.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
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
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_ITINERARY_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("VAPI_PUBLIC_KEY", "")
	viper.SetDefault("VAPI_ASSISTANT_ID", "")
	viper.SetDefault("VAPI_BASE_URL", "https://api.vapi.ai")
	viper.SetDefault("RESERVATION_AGENT_URL", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

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
