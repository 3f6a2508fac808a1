package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("OWNER_TG_ID", "")
	t.Setenv("POLL_TIMEOUT_SECONDS", "")
	t.Setenv("STATE_FILE", "")
	t.Setenv("MUTE_DURATION", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("ADMIN_CHECK_FAIL_POLICY", "")
	t.Setenv("METRICS_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.StateFile != "bot_state.json" {
		t.Fatalf("expected default state file, got %q", cfg.StateFile)
	}
	if cfg.MuteDuration != 12*time.Hour {
		t.Fatalf("expected default mute duration 12h, got %s", cfg.MuteDuration)
	}
	if cfg.SweepInterval != time.Minute {
		t.Fatalf("expected default sweep interval 1m, got %s", cfg.SweepInterval)
	}
	if cfg.PollTimeoutSeconds != 30 {
		t.Fatalf("expected default poll timeout 30, got %d", cfg.PollTimeoutSeconds)
	}
	if cfg.AdminCheckFailPolicy != "enforce" {
		t.Fatalf("expected default fail policy enforce, got %q", cfg.AdminCheckFailPolicy)
	}
	if cfg.IsMetricsEnabled() {
		t.Fatal("expected metrics disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", " token ")
	t.Setenv("OWNER_TG_ID", "42")
	t.Setenv("POLL_TIMEOUT_SECONDS", "10")
	t.Setenv("STATE_FILE", "/tmp/state.json")
	t.Setenv("MUTE_DURATION", "30m")
	t.Setenv("SWEEP_INTERVAL", "5s")
	t.Setenv("ADMIN_CHECK_FAIL_POLICY", "exempt")
	t.Setenv("METRICS_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.BotToken != "token" {
		t.Fatalf("expected trimmed token, got %q", cfg.BotToken)
	}
	if cfg.OwnerTGID != 42 {
		t.Fatalf("expected owner 42, got %d", cfg.OwnerTGID)
	}
	if cfg.MuteDuration != 30*time.Minute {
		t.Fatalf("expected mute duration 30m, got %s", cfg.MuteDuration)
	}
	if cfg.SweepInterval != 5*time.Second {
		t.Fatalf("expected sweep interval 5s, got %s", cfg.SweepInterval)
	}
	if !cfg.IsMetricsEnabled() {
		t.Fatal("expected metrics enabled")
	}
}

func TestLoadRejectsBadOwnerID(t *testing.T) {
	t.Setenv("OWNER_TG_ID", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid OWNER_TG_ID")
	}
}

func TestLoadRejectsNonPositiveMuteDuration(t *testing.T) {
	t.Setenv("OWNER_TG_ID", "")
	t.Setenv("MUTE_DURATION", "-1h")
	t.Setenv("SWEEP_INTERVAL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative MUTE_DURATION")
	}
}

func TestLoadRejectsBadSweepInterval(t *testing.T) {
	t.Setenv("OWNER_TG_ID", "")
	t.Setenv("MUTE_DURATION", "")
	t.Setenv("SWEEP_INTERVAL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable SWEEP_INTERVAL")
	}
}
