package config

import (
	"os"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ANUVAAD_BACKEND_URL",
		"ANUVAAD_LOG_LEVEL",
		"ANUVAAD_LOG_FORMAT",
		"ANUVAAD_PORT",
		"ANUVAAD_BACKEND_TIMEOUT_SECONDS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	path := writeTempConfig(t, `
server:
  port: 9090
  max_upload_mb: 5
  cors_origins: ["http://localhost:3000"]
backend:
  base_url: "http://localhost:5000"
  upload_path: "/api/upload"
  translate_path: "/api/translate"
  timeout_seconds: 15
log:
  level: "debug"
  format: "json"
store:
  max_sessions: 50
  idle_minutes: 10
limits:
  submits_per_minute: 12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadMB != 5 {
		t.Errorf("Expected max_upload_mb 5, got %d", cfg.Server.MaxUploadMB)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("Unexpected cors_origins %v", cfg.Server.CORSOrigins)
	}
	if cfg.Backend.BaseURL != "http://localhost:5000" {
		t.Errorf("Expected base_url http://localhost:5000, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.UploadPath != "/api/upload" {
		t.Errorf("Expected upload_path /api/upload, got %s", cfg.Backend.UploadPath)
	}
	if cfg.Backend.TranslatePath != "/api/translate" {
		t.Errorf("Expected translate_path /api/translate, got %s", cfg.Backend.TranslatePath)
	}
	if cfg.Backend.TimeoutSeconds != 15 {
		t.Errorf("Expected timeout_seconds 15, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected log format json, got %s", cfg.Log.Format)
	}
	if cfg.Store.MaxSessions != 50 {
		t.Errorf("Expected max_sessions 50, got %d", cfg.Store.MaxSessions)
	}
	if cfg.Store.IdleMinutes != 10 {
		t.Errorf("Expected idle_minutes 10, got %d", cfg.Store.IdleMinutes)
	}
	if cfg.Limits.SubmitsPerMinute != 12 {
		t.Errorf("Expected submits_per_minute 12, got %d", cfg.Limits.SubmitsPerMinute)
	}
	if GlobalConfig != cfg {
		t.Error("Expected GlobalConfig to be set")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	path := writeTempConfig(t, `
log:
  format: "text"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadMB != 20 {
		t.Errorf("Expected default max_upload_mb 20, got %d", cfg.Server.MaxUploadMB)
	}
	if cfg.Backend.BaseURL != "http://127.0.0.1:5000" {
		t.Errorf("Expected default base_url, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.UploadPath != "/upload" || cfg.Backend.TranslatePath != "/translate" {
		t.Errorf("Unexpected default paths %s %s", cfg.Backend.UploadPath, cfg.Backend.TranslatePath)
	}
	if cfg.Backend.TimeoutSeconds != 120 {
		t.Errorf("Expected default timeout 120, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.Store.MaxSessions != 1000 {
		t.Errorf("Expected default max_sessions 1000, got %d", cfg.Store.MaxSessions)
	}
	if cfg.Store.IdleMinutes != 30 {
		t.Errorf("Expected default idle_minutes 30, got %d", cfg.Store.IdleMinutes)
	}
	if cfg.Limits.SubmitsPerMinute != 30 {
		t.Errorf("Expected default submits_per_minute 30, got %d", cfg.Limits.SubmitsPerMinute)
	}
}

func TestLoadNegativeMaxSessionsIsUnlimited(t *testing.T) {
	clearEnv(t)

	path := writeTempConfig(t, `
store:
  max_sessions: -1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Store.MaxSessions != -1 {
		t.Errorf("Expected max_sessions -1 to be kept, got %d", cfg.Store.MaxSessions)
	}
}

func TestLoadNonExistentUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Expected missing file to fall back to defaults, got %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANUVAAD_BACKEND_URL", "http://localhost:5000")
	t.Setenv("ANUVAAD_PORT", "7000")
	t.Setenv("ANUVAAD_LOG_LEVEL", "warn")
	t.Setenv("ANUVAAD_BACKEND_TIMEOUT_SECONDS", "not-a-number")

	path := writeTempConfig(t, `
server:
  port: 9090
backend:
  base_url: "http://127.0.0.1:5000"
  timeout_seconds: 45
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Backend.BaseURL != "http://localhost:5000" {
		t.Errorf("Expected env base_url, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Expected env port 7000, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected env log level warn, got %s", cfg.Log.Level)
	}
	if cfg.Backend.TimeoutSeconds != 45 {
		t.Errorf("Expected invalid env timeout to be ignored, got %d", cfg.Backend.TimeoutSeconds)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "invalid: yaml: content:")

	_, err := Load(path)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
