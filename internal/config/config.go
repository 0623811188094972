package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Question sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Questions struct {
		Source         string `yaml:"source"` // file | postgres
		Path           string `yaml:"path"`
		TTL            string `yaml:"ttl"`
		ShuffleOptions *bool  `yaml:"shuffle_options"`
	} `yaml:"questions"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Log struct {
		Env string `yaml:"env"`
	} `yaml:"log"`
}

// Load reads YAML config from path and fills in defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default is the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Questions.Source == "" {
		c.Questions.Source = SourceFile
	}
	if c.Questions.Path == "" {
		c.Questions.Path = "data/questions.json"
	}
	if c.Log.Env == "" {
		c.Log.Env = "development"
	}
}

// ShuffleOptions reports whether answer options are shown in random order (default true).
func (c Config) ShuffleOptions() bool {
	return c.Questions.ShuffleOptions == nil || *c.Questions.ShuffleOptions
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
