package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for blogsync.
// The Notion integration token is deliberately absent: it is a secret and is
// only ever read from the NOTION_TOKEN environment variable.
type Config struct {
	OutputDir string       `toml:"output_dir"`
	LogDir    string       `toml:"log_dir"`
	Notion    NotionConfig `toml:"notion"`
	Images    ImagesConfig `toml:"images"`
}

// NotionConfig holds the content-source settings.
type NotionConfig struct {
	DatabaseID     string `toml:"database_id"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`
}

// ImagesConfig represents configuration for the image asset pipeline.
// This uses a tagged union pattern - the Pipeline field determines which
// other fields are relevant.
type ImagesConfig struct {
	Pipeline        string   `toml:"pipeline"` // "local" or "s3"
	Widths          []int    `toml:"widths"`   // responsive widths the resize pipeline generates
	DisplayMaxWidth int      `toml:"display_max_width"`
	S3              S3Config `toml:"s3"`
}

// S3Config holds the remote-staging settings (only used when Pipeline == "s3").
// BaseURL is the public CDN base the resize pipeline publishes under.
// AccessKeyID/SecretAccessKey are optional; when unset the default AWS
// credential chain applies.
type S3Config struct {
	Bucket          string `toml:"bucket,omitempty"`
	Prefix          string `toml:"prefix,omitempty"`
	Region          string `toml:"region,omitempty"`
	Profile         string `toml:"profile,omitempty"`
	BaseURL         string `toml:"base_url,omitempty"`
	AccessKeyID     string `toml:"access_key_id,omitempty"`
	SecretAccessKey string `toml:"secret_access_key,omitempty"`
}

// NewConfig creates a Config with the default values.
func NewConfig() *Config {
	return &Config{
		OutputDir: filepath.Join("public", "blog"),
		LogDir:    "log",
		Images: ImagesConfig{
			Pipeline:        "local",
			Widths:          []int{640},
			DisplayMaxWidth: 520,
			S3: S3Config{
				Prefix: "notion-originals/",
				Region: "ap-northeast-2",
			},
		},
	}
}

// Validate checks the configuration before any work starts. These are the
// fatal errors of a run: nothing is fetched or written past a bad config.
func (c *Config) Validate() error {
	if c.Notion.DatabaseID == "" {
		return fmt.Errorf("notion.database_id is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	switch c.Images.Pipeline {
	case "local":
	case "s3":
		if c.Images.S3.Bucket == "" {
			return fmt.Errorf("images.s3.bucket is required for the s3 pipeline")
		}
		if c.Images.S3.BaseURL == "" {
			return fmt.Errorf("images.s3.base_url is required for the s3 pipeline")
		}
	default:
		return fmt.Errorf("unknown images.pipeline: %s", c.Images.Pipeline)
	}
	for _, w := range c.Images.Widths {
		if w <= 0 {
			return fmt.Errorf("images.widths must be positive, got %d", w)
		}
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
