package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BotToken             string
	OwnerTGID            int64
	LogLevel             string
	LogFormat            string
	PollTimeoutSeconds   int
	StateFile            string
	MuteDuration         time.Duration
	SweepInterval        time.Duration
	AdminCheckFailPolicy string
	MetricsAddr          string
}

func Load() (Config, error) {
	ownerTGID, err := getInt64("OWNER_TG_ID", 0)
	if err != nil {
		return Config{}, err
	}

	pollTimeout, err := getInt("POLL_TIMEOUT_SECONDS", 30)
	if err != nil {
		return Config{}, err
	}

	muteDuration, err := getDuration("MUTE_DURATION", 12*time.Hour)
	if err != nil {
		return Config{}, err
	}

	sweepInterval, err := getDuration("SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BotToken:             strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		OwnerTGID:            ownerTGID,
		LogLevel:             getString("LOG_LEVEL", "info"),
		LogFormat:            getString("LOG_FORMAT", "text"),
		PollTimeoutSeconds:   pollTimeout,
		StateFile:            getString("STATE_FILE", "bot_state.json"),
		MuteDuration:         muteDuration,
		SweepInterval:        sweepInterval,
		AdminCheckFailPolicy: getString("ADMIN_CHECK_FAIL_POLICY", "enforce"),
		MetricsAddr:          getString("METRICS_ADDR", ""),
	}

	if cfg.PollTimeoutSeconds <= 0 {
		cfg.PollTimeoutSeconds = 30
	}
	if cfg.MuteDuration <= 0 {
		return Config{}, fmt.Errorf("MUTE_DURATION must be positive, got %s", cfg.MuteDuration)
	}
	if cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}

	return cfg, nil
}

func (c Config) IsMetricsEnabled() bool {
	return strings.TrimSpace(c.MetricsAddr) != ""
}

func getString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getInt64(key string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
