package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Search struct {
		URL string `yaml:"url"`
	} `yaml:"search"`

	SMTP struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Subject string `yaml:"subject"`
	} `yaml:"smtp"`

	Mail struct {
		From string `yaml:"from"`
		To   string `yaml:"to"`
		// AppPassword never comes from the yaml file; env or keychain only.
		AppPassword string `yaml:"-"`
	} `yaml:"mail"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// OverlayEnv applies .env / process-env overrides on top of the file config.
// A missing .env is fine; the scheduler may export the vars directly.
func OverlayEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("FROM_EMAIL"); v != "" {
		cfg.Mail.From = v
	}
	if v := os.Getenv("TO_EMAIL"); v != "" {
		cfg.Mail.To = v
	}
	if v := os.Getenv("PASSWORD"); v != "" {
		cfg.Mail.AppPassword = v
	}
	if v := os.Getenv("JOBNOTIFY_SEARCH_URL"); v != "" {
		cfg.Search.URL = v
	}
}
