package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/atomic"
	"gopkg.in/yaml.v2"
)

// Config is one immutable configuration snapshot. Components receive a
// *Store and read the current snapshot per operation; runtime changes
// swap the snapshot whole instead of mutating process environment.
type Config struct {
	Port     string `yaml:"PORT"`
	LogLevel string `yaml:"LOG_LEVEL"`

	DBHost     string `yaml:"DB_HOST"`
	DBPort     string `yaml:"DB_PORT"`
	DBUser     string `yaml:"DB_USER"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBName     string `yaml:"DB_NAME"`

	OllamaHost           string `yaml:"OLLAMA_HOST"`
	OllamaModel          string `yaml:"OLLAMA_MODEL"`
	OllamaTimeoutSeconds int    `yaml:"OLLAMA_TIMEOUT_SECONDS"`

	SMTPHost     string `yaml:"SMTP_HOST"`
	SMTPPort     string `yaml:"SMTP_PORT"`
	SMTPEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

func defaults() Config {
	return Config{
		Port:                 "8080",
		LogLevel:             "info",
		DBHost:               "localhost",
		DBPort:               "5432",
		OllamaHost:           "http://localhost:11434",
		OllamaModel:          "llama3",
		OllamaTimeoutSeconds: 120,
	}
}

// Load builds a snapshot from defaults, an optional YAML file, and
// environment variable overrides, in that order of precedence.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.DBHost, "DB_HOST")
	overrideString(&cfg.DBPort, "DB_PORT")
	overrideString(&cfg.DBUser, "DB_USER")
	overrideString(&cfg.DBPassword, "DB_PASSWORD")
	overrideString(&cfg.DBName, "DB_NAME")
	overrideString(&cfg.OllamaHost, "OLLAMA_HOST")
	overrideString(&cfg.OllamaModel, "OLLAMA_MODEL")
	overrideString(&cfg.SMTPHost, "SMTP_HOST")
	overrideString(&cfg.SMTPPort, "SMTP_PORT")
	overrideString(&cfg.SMTPEmail, "SMTP_AUTH_EMAIL")
	overrideString(&cfg.SMTPPassword, "SMTP_AUTH_PASSWORD")
	overrideString(&cfg.AWSS3Bucket, "AWS_S3_BUCKET")
	overrideString(&cfg.AWSS3Region, "AWS_S3_REGION")
	overrideString(&cfg.AWSAccessKey, "AWS_ACCESS_KEY")
	overrideString(&cfg.AWSSecretKey, "AWS_SECRET_KEY")

	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DSN renders the postgres connection string for this snapshot.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func (c Config) OllamaTimeout() time.Duration {
	if c.OllamaTimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.OllamaTimeoutSeconds) * time.Second
}

// Store holds the active configuration snapshot.
type Store struct {
	current atomic.Value
}

func NewStore(cfg Config) *Store {
	s := &Store{}
	s.current.Store(cfg)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() Config {
	return s.current.Load().(Config)
}

// Swap atomically replaces the active snapshot.
func (s *Store) Swap(cfg Config) {
	s.current.Store(cfg)
}
