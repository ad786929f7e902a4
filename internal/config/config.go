package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backend modes.
const (
	StorageLocal    = "local"
	StorageS3       = "s3"
	StorageTelegram = "telegram"
)

// Store modes.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config is read once at startup and injected into every component; nothing
// reads environment variables at call time.
type Config struct {
	// Server
	Port        string
	Environment string
	BaseURL     string
	CORSOrigins []string

	// Persistence
	StoreMode string
	MongoURL  string
	DBName    string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Storage
	StorageMode       string
	UploadDir         string
	MaxUploadMB       int
	AllowedExtensions []string

	// Image optimization
	ImageOptimization bool
	ImageMaxWidth     int
	ImageMaxHeight    int
	ImageQuality      int

	// Telegram relay backend
	TelegramBotToken string
	TelegramChatID   string

	// S3 backend
	S3Bucket  string
	AWSRegion string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		StoreMode: getEnv("STORE_MODE", StoreMongo),
		MongoURL:  getEnv("MONGO_URL", ""),
		DBName:    getEnv("DB_NAME", "atelier_db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24*7)) * time.Hour,

		StorageMode:       getEnv("STORAGE_MODE", StorageLocal),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:       getEnvInt("MAX_UPLOAD_MB", 10),
		AllowedExtensions: splitList(getEnv("ALLOWED_EXTENSIONS", "jpg,jpeg,png,gif,webp")),

		ImageOptimization: getEnvBool("IMAGE_OPTIMIZATION", true),
		ImageMaxWidth:     getEnvInt("IMAGE_MAX_WIDTH", 1920),
		ImageMaxHeight:    getEnvInt("IMAGE_MAX_HEIGHT", 1080),
		ImageQuality:      getEnvInt("IMAGE_QUALITY", 85),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),

		S3Bucket:  getEnv("S3_BUCKET", ""),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.StoreMode == StoreMongo && c.MongoURL == "" {
		return fmt.Errorf("MONGO_URL is required when STORE_MODE=mongo")
	}
	switch c.StorageMode {
	case StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_MODE=s3")
		}
	case StorageTelegram:
		if c.TelegramBotToken == "" || c.TelegramChatID == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required when STORAGE_MODE=telegram")
		}
	default:
		return fmt.Errorf("unknown STORAGE_MODE: %s", c.StorageMode)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
