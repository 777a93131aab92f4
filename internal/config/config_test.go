package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
env: prod
log:
  level: info
submissions:
  min_words: 10
  max_words: 200
defaults:
  channel_chat_id: -100200300
  cooldown_seconds: 120
  admins: [100, 200]
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Env != "prod" {
		t.Fatalf("unexpected env: %s", cfg.Env)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
	if cfg.Submissions.MinWords != 10 || cfg.Submissions.MaxWords != 200 {
		t.Fatalf("unexpected word bounds: %d-%d", cfg.Submissions.MinWords, cfg.Submissions.MaxWords)
	}
	if cfg.Defaults.ChannelChatID != -100200300 {
		t.Fatalf("unexpected channel chat id: %d", cfg.Defaults.ChannelChatID)
	}
	if cfg.Defaults.CooldownSeconds != 120 {
		t.Fatalf("unexpected cooldown seconds: %d", cfg.Defaults.CooldownSeconds)
	}
	if len(cfg.Defaults.Admins) != 2 || cfg.Defaults.Admins[0] != 100 {
		t.Fatalf("unexpected admin seed: %v", cfg.Defaults.Admins)
	}

	if cfg.HTTP.Addr != ":8081" {
		t.Fatalf("http addr default should stay :8081, got %s", cfg.HTTP.Addr)
	}
	if cfg.Submissions.StatusLimit != 10 {
		t.Fatalf("status limit default should stay 10, got %d", cfg.Submissions.StatusLimit)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.Submissions.MinWords != 20 || cfg.Submissions.MaxWords != 400 {
		t.Fatalf("unexpected default word bounds: %d-%d", cfg.Submissions.MinWords, cfg.Submissions.MaxWords)
	}
	if cfg.Defaults.CooldownSeconds != 60 {
		t.Fatalf("unexpected default cooldown: %d", cfg.Defaults.CooldownSeconds)
	}
	if cfg.Bot.PollTimeout != 30 {
		t.Fatalf("unexpected default poll timeout: %d", cfg.Bot.PollTimeout)
	}
}

func TestEnvOverridesApply(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SUBMISSION_MIN_WORDS", "5")
	t.Setenv("DEFAULT_COOLDOWN_SECONDS", "300")
	t.Setenv("BOT_TOKEN", "token-from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Submissions.MinWords != 5 {
		t.Fatalf("unexpected min words: %d", cfg.Submissions.MinWords)
	}
	if cfg.Defaults.CooldownSeconds != 300 {
		t.Fatalf("unexpected cooldown: %d", cfg.Defaults.CooldownSeconds)
	}
	if cfg.Bot.Token != "token-from-env" {
		t.Fatalf("unexpected bot token: %s", cfg.Bot.Token)
	}
}

func TestLoadRejectsInvertedWordBounds(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SUBMISSION_MIN_WORDS", "100")
	t.Setenv("SUBMISSION_MAX_WORDS", "50")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for max < min word bounds")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"LOG_LEVEL",
		"HTTP_ADDR",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"BOT_TOKEN",
		"BOT_POLL_TIMEOUT",
		"SUBMISSION_MIN_WORDS",
		"SUBMISSION_MAX_WORDS",
		"DEFAULT_CHANNEL_CHAT_ID",
		"DEFAULT_COOLDOWN_SECONDS",
	} {
		t.Setenv(key, "")
	}
}
