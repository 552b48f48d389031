// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	NATS        NATSConfig
	Collector   CollectorConfig
	Gemini      GeminiConfig
	Sheets      SheetsConfig
	Events      EventsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// CollectorConfig holds simulated collector configuration
type CollectorConfig struct {
	Days       int
	Platforms  []string
	Sentiments []string
	DataDir    string
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// SheetsConfig holds Google Sheets service-account configuration
type SheetsConfig struct {
	ProjectID         string
	PrivateKeyID      string
	PrivateKey        string
	ClientEmail       string
	ClientID          string
	ClientX509CertURL string
}

// EventsConfig holds event bus topic configuration
type EventsConfig struct {
	SearchTopic   string
	MirrorTimeout time.Duration
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Collector: CollectorConfig{
			Days:       getEnvAsInt("COLLECTOR_DAYS", 30),
			Platforms:  getEnvAsSlice("COLLECTOR_PLATFORMS", []string{"Instagram", "Facebook", "X"}),
			Sentiments: getEnvAsSlice("COLLECTOR_SENTIMENTS", []string{"positive", "negative", "neutral"}),
			DataDir:    getEnv("COLLECTOR_DATA_DIR", "data"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 30*time.Second),
			MaxAttempts: getEnvAsInt("GEMINI_MAX_ATTEMPTS", 3),
			BaseDelay:   getEnvAsDuration("GEMINI_RETRY_BASE_DELAY", 4*time.Second),
			MaxDelay:    getEnvAsDuration("GEMINI_RETRY_MAX_DELAY", 10*time.Second),
		},
		Sheets: SheetsConfig{
			ProjectID:         getEnv("GOOGLE_PROJECT_ID", ""),
			PrivateKeyID:      getEnv("GOOGLE_PRIVATE_KEY_ID", ""),
			PrivateKey:        getEnv("GOOGLE_PRIVATE_KEY", ""),
			ClientEmail:       getEnv("GOOGLE_CLIENT_EMAIL", ""),
			ClientID:          getEnv("GOOGLE_CLIENT_ID", ""),
			ClientX509CertURL: getEnv("GOOGLE_CLIENT_X509_CERT_URL", ""),
		},
		Events: EventsConfig{
			SearchTopic:   getEnv("SEARCH_EVENTS_TOPIC", "social.search.completed"),
			MirrorTimeout: getEnvAsDuration("MIRROR_TIMEOUT", 60*time.Second),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Gemini.APIKey == "" && config.Environment != "development" {
		return fmt.Errorf("GEMINI_API_KEY must be set in non-development environments")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
