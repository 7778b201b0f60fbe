package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	StoreFile  = "file"
	StoreMongo = "mongo"
	StoreRedis = "redis"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// Generation endpoint
	GenerationProvider string
	GenerationModel    string
	OpenRouterAPIKey   string
	OpenRouterBaseURL  string
	GeminiAPIKey       string

	// SMTP Configuration
	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	// Persistence
	StoreBackend  string
	DataDir       string
	MongoURI      string
	DBName        string
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Schedule
	ScheduleAt       string
	ScheduleTimezone string

	RenderEscapeHTML bool
	RunRatePerMinute int

	OTLPEndpoint string
}

// LoadConfig resolves every key through the secrets file, then the process
// environment (after .env is loaded), then the default.
func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	secrets, err := loadSecrets(getEnv("SECRETS_FILE", ".secrets.env"))
	if err != nil {
		return nil, err
	}
	l := lookup{secrets: secrets}

	cfg := &Config{
		Port:        l.str("PORT", "8080"),
		GinMode:     l.str("GIN_MODE", "release"),
		CORSOrigins: strings.Split(l.str("CORS_ORIGINS", "http://localhost:8080"), ","),

		GenerationProvider: strings.ToLower(l.str("GENERATION_PROVIDER", ProviderOpenRouter)),
		GenerationModel:    l.str("GENERATION_MODEL", ""),
		OpenRouterAPIKey:   l.str("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL:  l.str("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		GeminiAPIKey:       l.str("GEMINI_API_KEY", ""),

		SMTPServer:   l.str("SMTP_SERVER", ""),
		SMTPPort:     l.int("SMTP_PORT", 587),
		SMTPUsername: l.str("SMTP_USERNAME", ""),
		SMTPPassword: l.str("SMTP_PASSWORD", ""),
		SenderEmail:  l.str("SENDER_EMAIL", ""),

		StoreBackend:  strings.ToLower(l.str("STORE_BACKEND", StoreFile)),
		DataDir:       l.str("DATA_DIR", "."),
		MongoURI:      l.str("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        l.str("DB_NAME", "social_media_agent"),
		RedisURL:      l.str("REDIS_URL", "localhost:6379"),
		RedisPassword: l.str("REDIS_PASSWORD", ""),
		RedisDB:       l.int("REDIS_DB", 0),

		ScheduleAt:       l.str("SCHEDULE_AT", "07:00"),
		ScheduleTimezone: l.str("SCHEDULE_TIMEZONE", "Asia/Kolkata"),

		RenderEscapeHTML: l.bool("RENDER_ESCAPE_HTML", false),
		RunRatePerMinute: l.int("RUN_RATE_PER_MINUTE", 2),

		OTLPEndpoint: l.str("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	switch c.GenerationProvider {
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required - add it to the secrets file or environment")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required - add it to the secrets file or environment")
		}
	default:
		return fmt.Errorf("unknown GENERATION_PROVIDER %q", c.GenerationProvider)
	}

	switch c.StoreBackend {
	case StoreFile, StoreMongo, StoreRedis:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.SMTPPort <= 0 {
		return fmt.Errorf("SMTP_PORT must be positive")
	}
	return nil
}
