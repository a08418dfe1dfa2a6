package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
	Limits  LimitsConfig  `yaml:"limits"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	MaxUploadMB int      `yaml:"max_upload_mb"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// BackendConfig points at the OCR/translation API
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	UploadPath     string `yaml:"upload_path"`
	TranslatePath  string `yaml:"translate_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StoreConfig struct {
	MaxSessions int `yaml:"max_sessions"` // negative = unlimited
	IdleMinutes int `yaml:"idle_minutes"`
}

type LimitsConfig struct {
	SubmitsPerMinute int `yaml:"submits_per_minute"`
}

var GlobalConfig *Config

// Load reads the YAML file at path, applies ANUVAAD_* overrides from the
// environment (and a .env file when present) and fills in defaults.
// A missing file is not an error; defaults and the environment are used.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()
	applyEnv(&cfg)

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = 20
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://127.0.0.1:5000"
	}
	if cfg.Backend.UploadPath == "" {
		cfg.Backend.UploadPath = "/upload"
	}
	if cfg.Backend.TranslatePath == "" {
		cfg.Backend.TranslatePath = "/translate"
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 120
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Store.MaxSessions == 0 {
		cfg.Store.MaxSessions = 1000
	}
	if cfg.Store.IdleMinutes == 0 {
		cfg.Store.IdleMinutes = 30
	}
	if cfg.Limits.SubmitsPerMinute == 0 {
		cfg.Limits.SubmitsPerMinute = 30
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ANUVAAD_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("ANUVAAD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ANUVAAD_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v, err := strconv.Atoi(os.Getenv("ANUVAAD_PORT")); err == nil && v > 0 {
		cfg.Server.Port = v
	}
	if v, err := strconv.Atoi(os.Getenv("ANUVAAD_BACKEND_TIMEOUT_SECONDS")); err == nil && v > 0 {
		cfg.Backend.TimeoutSeconds = v
	}
}
