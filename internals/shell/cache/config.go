package cache

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config: versi cache + manifest shell + allowlist runtime, dimuat dari
// file YAML worker.
type Config struct {
	Version      string        `yaml:"version"`
	Home         string        `yaml:"home"`
	Shell        []string      `yaml:"shell"`
	Allowlist    []string      `yaml:"allowlist"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

func LoadConfig(path string) (Config, error) {
	var cfg Config
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Version == "" {
		return cfg, fmt.Errorf("cache: config %s: version wajib diisi", path)
	}
	if len(cfg.Shell) == 0 {
		return cfg, fmt.Errorf("cache: config %s: manifest shell kosong", path)
	}
	return cfg, nil
}
