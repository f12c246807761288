package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	NatsURL           string
	NatsToken         string
	DatabaseURL       string
	LogLevel          string
	LogFormat         string
	LLMProvider       string
	AnthropicAPIKey   string
	Model             string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	SlackBotToken     string
	SlackChannel      string
	APIToken          string
	CORSOrigins       []string
	TemplatesPath     string
	GenerationTimeout time.Duration
	MaxTokens         int
}

// Load reads the configuration from the environment. A .env file in the
// working directory is read first; variables already set win over it.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:              envInt("ONESHEET_PORT", 8760),
		NatsURL:           envStr("NATS_URL", "nats://hermes:4222"),
		NatsToken:         envStr("NATS_TOKEN", ""),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		LogFormat:         envStr("LOG_FORMAT", "json"),
		LLMProvider:       envStr("LLM_PROVIDER", "anthropic"),
		AnthropicAPIKey:   envStr("ANTHROPIC_API_KEY", ""),
		Model:             envStr("ONESHEET_MODEL", ""),
		OpenAIAPIKey:      envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     envStr("OPENAI_BASE_URL", ""),
		SlackBotToken:     envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel:      envStr("SLACK_ONESHEET_CHANNEL", ""),
		APIToken:          envStr("ONESHEET_API_TOKEN", ""),
		CORSOrigins:       envList("CORS_ALLOWED_ORIGINS"),
		TemplatesPath:     envStr("ONESHEET_TEMPLATES", ""),
		GenerationTimeout: envDuration("GENERATION_TIMEOUT", 120*time.Second),
		MaxTokens:         envInt("MAX_TOKENS", 4096),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envDuration accepts Go durations ("90s") or a bare number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

// envList splits a comma-separated variable, dropping empty entries.
func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
