package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration

	StorageDriver string
	StorageDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogMode string
	LogFile string

	SandboxPort string
	SandboxDSN  string
	JWTSecret   string
}

// Load reads .env files (when present) and then the process environment.
func Load(files ...string) *Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// a missing .env is the normal case outside development
		_ = godotenv.Load(f)
	}

	return &Config{
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080/api"),
		HTTPTimeout:   getDuration("HTTP_TIMEOUT", 15*time.Second),
		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		StorageDSN:    getEnv("STORAGE_DSN", "barber_client.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		LogMode:       getEnv("LOG_MODE", "development"),
		LogFile:       getEnv("LOG_FILE", ""),
		SandboxPort:   getEnv("SANDBOX_PORT", "8080"),
		SandboxDSN:    getEnv("SANDBOX_DSN", ":memory:"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func (c *Config) SandboxAddr() string {
	return fmt.Sprintf(":%s", c.SandboxPort)
}
