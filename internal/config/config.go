package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // CHATLENS_TIMEZONE must resolve in images without a zone database

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port           int           `validate:"min=1,max=65535"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	DatabaseURL    string        `validate:"omitempty,url"`
	NatsURL        string        `validate:"omitempty,url"`
	NatsToken      string
	APIToken       string
	LexiconPath    string        `validate:"omitempty,file"`
	DayFirst       bool
	Timezone       string        `validate:"timezone"`
	SessionTTL     time.Duration `validate:"min=1m"`
	SweepInterval  time.Duration `validate:"min=1s"`
	MaxSessions    int           `validate:"min=1"`
	MaxUploadBytes int64         `validate:"min=1024"`
	TopUsers       int           `validate:"min=1,max=100"`
	TopWords       int           `validate:"min=1,max=500"`
	CloudWords     int           `validate:"min=1,max=1000"`
}

func Load() Config {
	return Config{
		Port:           envInt("CHATLENS_PORT", 8760),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		DatabaseURL:    envStr("DATABASE_URL", ""),
		NatsURL:        envStr("NATS_URL", ""),
		NatsToken:      envStr("NATS_TOKEN", ""),
		APIToken:       envStr("CHATLENS_API_TOKEN", ""),
		LexiconPath:    envStr("CHATLENS_LEXICON_PATH", ""),
		DayFirst:       envBool("CHATLENS_DAY_FIRST", false),
		Timezone:       envStr("CHATLENS_TIMEZONE", "UTC"),
		SessionTTL:     envDuration("CHATLENS_SESSION_TTL", 2*time.Hour),
		SweepInterval:  envDuration("CHATLENS_SWEEP_INTERVAL", time.Minute),
		MaxSessions:    envInt("CHATLENS_MAX_SESSIONS", 256),
		MaxUploadBytes: int64(envInt("CHATLENS_MAX_UPLOAD_BYTES", 32<<20)),
		TopUsers:       envInt("CHATLENS_TOP_USERS", 5),
		TopWords:       envInt("CHATLENS_TOP_WORDS", 20),
		CloudWords:     envInt("CHATLENS_CLOUD_WORDS", 100),
	}
}

// Validate checks the loaded values against their struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
