package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           int
	NatsURL        string
	NatsToken      string
	DatabaseURL    string
	LogLevel       string
	APIToken       string
	RulesPath      string
	StatePath      string
	MaxUploadBytes int64
	Source         string
	SlackBotToken  string
	SlackChannel   string
}

func Load() Config {
	return Config{
		Port:           envInt("LINEKB_PORT", 8760),
		NatsURL:        envStr("NATS_URL", "nats://hermes:4222"),
		NatsToken:      envStr("NATS_TOKEN", ""),
		DatabaseURL:    envStr("DATABASE_URL", ""),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		APIToken:       envStr("LINEKB_API_TOKEN", ""),
		RulesPath:      envStr("LINEKB_RULES_PATH", ""),
		StatePath:      envStr("LINEKB_STATE_PATH", "~/.linekb/import-state.json"),
		MaxUploadBytes: int64(envInt("LINEKB_MAX_UPLOAD_BYTES", 10<<20)),
		Source:         envStr("LINEKB_SOURCE", "LINE"),
		SlackBotToken:  envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel:   envStr("SLACK_CHANNEL", ""),
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
