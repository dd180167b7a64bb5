package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loaded from a YAML file with
// defaults applied for anything omitted.
type Config struct {
	ListenAddr   string `yaml:"listenAddr"`
	DatabasePath string `yaml:"databasePath"`

	Upload UploadConfig `yaml:"upload"`

	// External collaborators
	PDFServiceURL     string `yaml:"pdfServiceUrl"`
	ExtractServiceURL string `yaml:"extractServiceUrl"`

	// Delay before a transient reference highlight clears, in milliseconds.
	ReferenceClearMs int `yaml:"referenceClearMs"`
}

// UploadConfig is the declarative upload capability descriptor:
// one PDF per operation, size-bounded.
type UploadConfig struct {
	Dir          string `yaml:"dir"`
	MaxSizeBytes int64  `yaml:"maxSizeBytes"`
	MaxFiles     int    `yaml:"maxFiles"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr:   ":8080",
		DatabasePath: "rulebook.db",
		Upload: UploadConfig{
			Dir:          "uploads",
			MaxSizeBytes: 16 << 20,
			MaxFiles:     1,
		},
		ReferenceClearMs: 3000,
	}
}

// Load reads the YAML file at path over the defaults. A missing path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listenAddr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("databasePath must not be empty")
	}
	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload.maxSizeBytes must be positive")
	}
	if c.Upload.MaxFiles <= 0 {
		return fmt.Errorf("upload.maxFiles must be positive")
	}
	if c.ReferenceClearMs <= 0 {
		return fmt.Errorf("referenceClearMs must be positive")
	}
	return nil
}

// ReferenceClearDelay returns the reference highlight delay as a Duration.
func (c *Config) ReferenceClearDelay() time.Duration {
	return time.Duration(c.ReferenceClearMs) * time.Millisecond
}
