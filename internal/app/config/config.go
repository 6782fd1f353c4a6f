// Package config loads the server configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full server configuration.
type Config struct {
	HTTPAddr           string
	LogLevel           string
	CORSAllowedOrigins []string

	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Session  SessionConfig
	GitLab   GitLabConfig
	CaseTTL  time.Duration
	Language string
}

// DBConfig selects and configures the relational store.
type DBConfig struct {
	Driver        string // "postgres" or "sqlite"
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	InstanceName  string // Cloud SQL instance connection name
	SQLitePath    string
	RunMigrations bool
	ConnTimeout   time.Duration
}

// RedisConfig configures the optional Redis connection.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// JWTConfig configures access token signing.
type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

// SessionConfig configures refresh-token sessions.
type SessionConfig struct {
	RefreshTTL     time.Duration
	MaxPerUser     int
	RedisKeyPrefix string
}

// GitLabConfig configures the remote identity provider.
type GitLabConfig struct {
	BaseURL             string
	AdminToken          string
	Timeout             time.Duration
	RateLimitPerMinute  int
	CompensateOnFailure bool
}

// Load reads the configuration from the process environment.
func Load() Config {
	return Config{
		HTTPAddr:           getenv("HTTP_ADDR", ":8080"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getenvList("CORS_ALLOWED_ORIGINS"),
		DB: DBConfig{
			Driver:        getenv("DB_DRIVER", "postgres"),
			Host:          getenv("DB_HOST", "127.0.0.1"),
			Port:          getenv("DB_PORT", "5432"),
			User:          os.Getenv("DB_USER"),
			Password:      os.Getenv("DB_PASSWORD"),
			Name:          getenv("DB_NAME", "lucius"),
			SSLMode:       getenv("DB_SSLMODE", "disable"),
			InstanceName:  os.Getenv("INSTANCE_CONNECTION_NAME"),
			SQLitePath:    getenv("DB_SQLITE_PATH", "./lucius.db"),
			RunMigrations: getenvBool("RUN_MIGRATIONS", false),
			ConnTimeout:   getenvDuration("DB_CONNECT_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:    os.Getenv("JWT_SECRET"),
			AccessTTL: getenvDuration("JWT_ACCESS_TTL", 15*time.Minute),
		},
		Session: SessionConfig{
			RefreshTTL:     getenvDuration("SESSION_REFRESH_TTL", 7*24*time.Hour),
			MaxPerUser:     getenvInt("SESSION_MAX_PER_USER", 5),
			RedisKeyPrefix: getenv("SESSION_REDIS_PREFIX", "session"),
		},
		GitLab: GitLabConfig{
			BaseURL:             strings.TrimRight(getenv("GITLAB_BASE_URL", "http://127.0.0.1:8929/api/v4"), "/"),
			AdminToken:          os.Getenv("GITLAB_ADMIN_TOKEN"),
			Timeout:             getenvDuration("GITLAB_TIMEOUT", 10*time.Second),
			RateLimitPerMinute:  getenvInt("GITLAB_RATE_LIMIT_PER_MINUTE", 600),
			CompensateOnFailure: getenvBool("GITLAB_COMPENSATE_ON_FAILURE", true),
		},
		CaseTTL:  getenvDuration("CASE_CACHE_TTL", 5*time.Minute),
		Language: getenv("DEFAULT_LANGUAGE", "en"),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
