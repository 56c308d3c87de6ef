package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Telegram    TelegramConfig
	HuggingFace HuggingFaceConfig
	Expense     ExpenseConfig
	Logger      LoggerConfig
}

type ServerConfig struct {
	Port         string
	APIToken     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type TelegramConfig struct {
	BotToken string
}

type HuggingFaceConfig struct {
	Token    string
	STTModel string
	NLPModel string
	// Timeout bounds every inference call so a stalled upstream cannot hold
	// a worker indefinitely.
	Timeout time.Duration
}

type ExpenseConfig struct {
	// HomeCurrency is the fallback currency code when the utterance does not
	// state one.
	HomeCurrency string
}

type LoggerConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Try to load .env from the current directory or the project root.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env is fine, plain environment variables work too (Docker/K8s).

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	hfTimeout, _ := strconv.Atoi(getEnv("HF_TIMEOUT", "60"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			APIToken:     getEnv("API_TOKEN", ""),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "spendlog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		HuggingFace: HuggingFaceConfig{
			Token:    getEnv("HF_TOKEN", ""),
			STTModel: getEnv("HF_STT_MODEL", "openai/whisper-large-v3"),
			NLPModel: getEnv("HF_NLP_MODEL", "meta-llama/Llama-3.1-8B-Instruct"),
			Timeout:  time.Duration(hfTimeout) * time.Second,
		},
		Expense: ExpenseConfig{
			HomeCurrency: getEnv("HOME_CURRENCY", "RUB"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
