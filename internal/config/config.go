package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error DEBUG INFO WARN ERROR"`
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string `validate:"required"`
	Environment string `validate:"required"`
	ServiceName string
	Version     string

	DBUser     string `validate:"required"`
	DBPassword string
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBName     string `validate:"required"`
	DBMaxConns int    `validate:"min=1"`

	RedisHost     string `validate:"required"`
	RedisPort     string `validate:"required,numeric"`
	RedisPassword string
	RedisDB       int `validate:"min=0"`
	RedisPoolSize int `validate:"min=1"`

	// Guild invites
	InviteTimeout time.Duration `validate:"gt=0"`
	InviteRate    int           `validate:"min=1"`
	InviteBurst   int           `validate:"min=1"`

	// Write-behind persistence
	WriteWorkers   int `validate:"min=1"`
	WriteQueueSize int `validate:"min=1"`

	// World rates sent in the welcome payload
	DoubleExp     bool
	ExpMultiplier float64 `validate:"gt=0"`

	AchievementsPath string `validate:"required"`
	ItemsPath        string `validate:"required"`

	ShutdownTimeout time.Duration `validate:"gt=0"`

	// APIKey guards the /api/v1 routes
	APIKey string `validate:"required"`
	// AdminNames are granted admin and level bypass capabilities at login
	AdminNames     []string
	AllowedOrigins []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvAsInt("PORT", DefaultPort),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "realmkeeper"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize: getEnvAsInt("REDIS_POOL_SIZE", DefaultRedisPoolSize),

		InviteTimeout: getEnvAsDuration("INVITE_TIMEOUT", DefaultInviteTimeout),
		InviteRate:    getEnvAsInt("INVITE_RATE", DefaultInviteRate),
		InviteBurst:   getEnvAsInt("INVITE_BURST", DefaultInviteBurst),

		WriteWorkers:   getEnvAsInt("WRITE_WORKERS", DefaultWriteWorkers),
		WriteQueueSize: getEnvAsInt("WRITE_QUEUE_SIZE", DefaultWriteQueueSize),

		DoubleExp:     getEnvAsBool("DOUBLE_EXP", false),
		ExpMultiplier: getEnvAsFloat("EXP_MULTIPLIER", DefaultExpMultiplier),

		AchievementsPath: getEnv("ACHIEVEMENTS_PATH", ConfigPathAchievements),
		ItemsPath:        getEnv("ITEMS_PATH", ConfigPathItems),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		APIKey:         getEnv("API_KEY", ""),
		AdminNames:     getEnvAsList("ADMIN_NAMES"),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// GetRedisAddr returns host:port for the redis client
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// IsDevelopment reports whether source locations should be logged.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blank entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
