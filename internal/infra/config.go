package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	JWTSecret        string
	SessionTTL       time.Duration
	DefaultLocale    string
	GeoIPDBPath      string
	CORSOrigins      []string
	LoginEmail       string
	LoginPassword    string
	HFAPIKey         string
	HFBaseURL        string
	GuidanceTimeout  time.Duration
	GuidanceRetries  int
	ChatProvider     string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	GoogleAPIKey     string
	GeminiModel      string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg, err := LoadToolConfig()
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// LoadToolConfig reads the same environment as LoadConfig but skips the
// settings only the HTTP server needs. The command-line tools use it.
func LoadToolConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SessionTTL:       time.Hour * time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)),
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "pt"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		CORSOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LoginEmail:       getEnv("ACADEMY_LOGIN_EMAIL", "teamveo3aluno@acesso.com"),
		LoginPassword:    getEnv("ACADEMY_LOGIN_PASSWORD", "acessteam123@"),
		HFAPIKey:         getEnv("HF_API_KEY", os.Getenv("HUGGING_FACE_API_KEY")),
		HFBaseURL:        getEnv("HF_BASE_URL", "https://api-inference.huggingface.co/models"),
		GuidanceTimeout:  time.Second * time.Duration(getEnvInt("GUIDANCE_TIMEOUT_SECONDS", 60)),
		GuidanceRetries:  getEnvInt("GUIDANCE_MAX_RETRIES", 0),
		ChatProvider:     strings.ToLower(getEnv("CHAT_PROVIDER", "local")),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GoogleAPIKey:     os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 90)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	switch cfg.ChatProvider {
	case "local", "openai", "gemini":
	default:
		return nil, fmt.Errorf("CHAT_PROVIDER must be one of local, openai, gemini (got %q)", cfg.ChatProvider)
	}

	return cfg, nil
}

// GuidanceEnabled reports whether the hosted text-generation adapter has a credential.
func (c *Config) GuidanceEnabled() bool {
	return c != nil && strings.TrimSpace(c.HFAPIKey) != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
