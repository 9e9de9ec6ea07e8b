package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRead_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9001
jwt:
  secret: "s3cret"
app:
  timezone: "Asia/Shanghai"
`)

	cfg, err := read(path)
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.App.Timezone != "Asia/Shanghai" {
		t.Errorf("App.Timezone = %q, want Asia/Shanghai", cfg.App.Timezone)
	}
	// defaults fill what the file leaves out
	if cfg.App.PageSize != 20 {
		t.Errorf("App.PageSize = %d, want 20", cfg.App.PageSize)
	}
	if cfg.Database.Path != "data/brainshift.db" {
		t.Errorf("Database.Path = %q, want default", cfg.Database.Path)
	}
	if cfg.Scheduler.StreakDecaySpec != "" {
		t.Errorf("StreakDecaySpec = %q, want empty", cfg.Scheduler.StreakDecaySpec)
	}
}

func TestRead_EnvOverride(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: file-secret\n")
	t.Setenv("BRAINSHIFT_SERVER_PORT", "9100")
	t.Setenv("BRAINSHIFT_JWT_SECRET", "env-secret")

	cfg, err := read(path)
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %q, want env-secret", cfg.JWT.Secret)
	}
}

func TestRead_MissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	if _, err := read(path); err == nil {
		t.Error("read() without jwt.secret error = nil, want error")
	}
}

func TestRead_MissingExplicitFile(t *testing.T) {
	if _, err := read(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("read() of missing explicit file error = nil, want error")
	}
}
