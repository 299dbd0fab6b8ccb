// Package config provides configuration for the chat gateway.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the gateway configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Agent backend
	BackendURL      string
	ChatbotName     string
	EnvironmentName string

	// Database
	DatabaseURL string

	// Timeouts
	StreamTimeout time.Duration

	// Static frontend
	WebRoot string

	// Logging
	LogLevel string
}

// environment presets selected at startup via APP_ENV. Values mirror the
// per-environment constants baked into the frontend build.
type preset struct {
	backendURL  string
	chatbotName string
}

var presets = map[string]preset{
	"dev": {
		backendURL:  "http://localhost:8000/",
		chatbotName: "Concierge (dev)",
	},
	"staging": {
		backendURL:  "https://agent-staging.example.run.app/",
		chatbotName: "Concierge (staging)",
	},
	"prod": {
		backendURL:  "https://agent.example.run.app/",
		chatbotName: "Concierge",
	},
}

// Load loads configuration from the environment. A .env file, if present,
// is read first. APP_ENV picks a preset; individual variables override it.
func Load() *Config {
	godotenv.Load()

	envName := getEnv("APP_ENV", "dev")
	p, ok := presets[envName]
	if !ok {
		p = presets["dev"]
	}

	return &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		BackendURL:      getEnv("BACKEND_URL", p.backendURL),
		ChatbotName:     getEnv("CHATBOT_NAME", p.chatbotName),
		EnvironmentName: envName,
		DatabaseURL:     getEnv("DATABASE_URL", "file:chatgate.db?cache=shared&mode=rwc"),
		StreamTimeout:   time.Duration(getEnvInt("STREAM_TIMEOUT_MS", 300000)) * time.Millisecond,
		WebRoot:         getEnv("WEB_ROOT", "web"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
