package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nijaru/yt-summary/errors"
	"github.com/sirupsen/logrus"
)

const (
	EnvAPIKey       = "GEMINI_API_KEY"
	DefaultPort     = "5000"
	DefaultModel    = "gemini-1.5-flash"
	DefaultBaseURL  = "https://www.youtube.com"
	DefaultMaxText  = 0
	defaultLanguage = "en,th"
)

// ErrMissingAPIKey is returned by Load when the provider credential is unset.
var ErrMissingAPIKey = stderrors.New(EnvAPIKey + " environment variable not set")

type Config struct {
	// Server settings
	ServerPort      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Debug           bool
	Version         string

	// Logging
	LogLevel  string
	LogFormat string
	LogDir    string

	Gemini     GeminiConfig
	Transcript TranscriptConfig

	// MaxTextLength bounds the raw-text flow input, in runes; zero means no
	// bound.
	MaxTextLength int

	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
	// Timeout applies per generate call; zero means none.
	Timeout time.Duration
}

type TranscriptConfig struct {
	Languages []string
	BaseURL   string
	UserAgent string
	// Timeout applies per transcript fetch; zero means none.
	Timeout time.Duration
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstSize         int
}

// Load reads .env (if present) and the process environment. A missing
// provider credential is a configuration error.
func Load() (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("Failed to load .env file")
	}

	cfg := FromEnv()
	if cfg.Gemini.APIKey == "" {
		return nil, errors.Configuration(op, ErrMissingAPIKey, "missing provider credential")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Configuration(op, err, "invalid configuration")
	}

	return cfg, nil
}

// FromEnv builds a Config from environment variables without validating it.
func FromEnv() *Config {
	return &Config{
		ServerPort:      getEnv("PORT", DefaultPort),
		ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 5*time.Minute),
		IdleTimeout:     getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		Debug:           getEnvAsBool("DEBUG", false),
		Version:         getEnv("VERSION", "1.0.0"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogDir:    getEnv("LOG_DIR", ""),

		Gemini: GeminiConfig{
			APIKey:  strings.TrimSpace(os.Getenv(EnvAPIKey)),
			Model:   getEnv("GEMINI_MODEL", DefaultModel),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 0),
		},

		Transcript: TranscriptConfig{
			Languages: getEnvAsStringSlice("TRANSCRIPT_LANGUAGES", strings.Split(defaultLanguage, ",")),
			BaseURL:   getEnv("YOUTUBE_BASE_URL", DefaultBaseURL),
			UserAgent: getEnv("YOUTUBE_USER_AGENT", ""),
			Timeout:   getEnvAsDuration("TRANSCRIPT_TIMEOUT", 0),
		},

		MaxTextLength: getEnvAsInt("MAX_TEXT_LENGTH", DefaultMaxText),

		CORS: CORSConfig{
			Enabled:          getEnvAsBool("CORS_ENABLED", true),
			AllowedOrigins:   getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvAsStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders:   getEnvAsStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},

		// Off unless asked for: the service does not throttle by itself.
		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", false),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
	}
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("server port must be numeric: %q", c.ServerPort)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be greater than 0")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be greater than 0")
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be greater than 0")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("model name is required")
	}
	if c.Gemini.Timeout < 0 || c.Transcript.Timeout < 0 {
		return fmt.Errorf("provider timeouts cannot be negative")
	}
	if len(c.Transcript.Languages) == 0 {
		return fmt.Errorf("at least one transcript language is required")
	}
	if c.MaxTextLength < 0 {
		return fmt.Errorf("max text length cannot be negative")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit must be greater than 0 when enabled")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid boolean, using default")
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
