package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Routing  RoutingConfig
	Renewal  RenewalConfig
	Feedback FeedbackConfig
	LLM      LLMConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// RoutingConfig selects and parameterizes the active decision strategy.
type RoutingConfig struct {
	// Strategy is one of LEAST_COST, LLM, PLANNER, FIXED.
	Strategy string
	// Objective is passed through to LLM/planner prompts:
	// least_cost, highest_auth or balanced.
	Objective string
	// FixedProvider backs the FIXED strategy and the ultimate default.
	FixedProvider string
	// DefaultProvider is the ultimate fallback when every strategy fails.
	DefaultProvider string
	HealthTimeout   time.Duration
}

// RenewalConfig drives the renewal pre-calculation job.
type RenewalConfig struct {
	CheckInterval time.Duration
	LookaheadDays int
}

// FeedbackConfig drives the feedback drain job.
type FeedbackConfig struct {
	DrainInterval time.Duration
}

// LLMConfig holds the OpenAI-compatible chat endpoint settings.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "payrouter"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Routing: RoutingConfig{
			Strategy:        getEnv("ROUTING_STRATEGY", "LEAST_COST"),
			Objective:       getEnv("ROUTING_OBJECTIVE", "balanced"),
			FixedProvider:   getEnv("ROUTING_FIXED_PROVIDER", "stripe"),
			DefaultProvider: getEnv("ROUTING_DEFAULT_PROVIDER", "stripe"),
			HealthTimeout:   getEnvAsDuration("HEALTH_READ_TIMEOUT", 500*time.Millisecond),
		},
		Renewal: RenewalConfig{
			CheckInterval: getEnvAsDuration("RENEWAL_CHECK_INTERVAL", 60*time.Second),
			LookaheadDays: getEnvAsInt("RENEWAL_LOOKAHEAD_DAYS", 7),
		},
		Feedback: FeedbackConfig{
			DrainInterval: getEnvAsDuration("FEEDBACK_DRAIN_INTERVAL", 30*time.Second),
		},
		LLM: LLMConfig{
			BaseURL: getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:  getEnv("LLM_API_KEY", ""),
			Model:   getEnv("ROUTING_MODEL", "gpt-4o"),
			Timeout: getEnvAsDuration("LLM_TIMEOUT", 2*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
