package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr    string `env:"LISTEN_ADDR" envDefault:":8080"`
	DBPath        string `env:"DB_PATH"`
	PhotoPath     string `env:"PHOTO_LOCAL_PATH"`
	AuditPassword string `env:"AUDIT_PASSWORD" envDefault:"ACL101"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads the configuration from the environment. An empty DB_PATH keeps
// all audit data in memory for the lifetime of the process.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PhotoPath == "" {
		cfg.PhotoPath = filepath.Join(os.TempDir(), "aclaudit-photos")
	}
	return cfg, nil
}
