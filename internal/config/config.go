package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Ai        AIConfig
	Workspace WorkspaceConfig
	Security  SecurityConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	NotificationTopic  string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
	JwtTTL    time.Duration
}

type AIConfig struct {
	Provider            string // "gemini" or "ollama"
	GeminiBaseURL       string
	OllamaBaseURL       string
	DefaultModel        string
	RequestTimeout      time.Duration
	MaxConcurrency      int
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
}

type WorkspaceConfig struct {
	Root       string
	AllowWrite bool
	IdleTTL    time.Duration
	RenameMode string
}

type SecurityConfig struct {
	ApiKeyEncryptionSecret string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			NotificationTopic:  getEnv("NOTIFICATION_TOPIC", "WORKSPACE_NOTIFICATION"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
			JwtTTL:    getEnvAsDuration("JWT_TTL", 72*time.Hour),
		},
		Ai: AIConfig{
			Provider:            getEnv("AI_PROVIDER", "gemini"),
			GeminiBaseURL:       getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			DefaultModel:        getEnv("AI_DEFAULT_MODEL", "gemini-2.0-flash-exp"),
			RequestTimeout:      getEnvAsDuration("AI_REQUEST_TIMEOUT", 120*time.Second),
			MaxConcurrency:      getEnvAsInt("AI_MAX_CONCURRENCY", 0),
			RetryMaxAttempts:    getEnvAsInt("AI_RETRY_MAX_ATTEMPTS", 1),
			RetryInitialBackoff: getEnvAsDuration("AI_RETRY_INITIAL_BACKOFF", 500*time.Millisecond),
		},
		Workspace: WorkspaceConfig{
			Root:       getEnv("WORKSPACE_ROOT", "./data"),
			AllowWrite: getEnvAsBool("WORKSPACE_ALLOW_WRITE", true),
			IdleTTL:    getEnvAsDuration("WORKSPACE_IDLE_TTL", 30*time.Minute),
			RenameMode: getEnv("RENAME_MODE", "auto-increment"),
		},
		Security: SecurityConfig{
			ApiKeyEncryptionSecret: getEnv("API_KEY_ENCRYPTION_SECRET", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
