package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetConfigPath returns the config file path, checking the
// BLOGSYNC_CONFIG_PATH environment variable first, then falling back to
// ./blogsync.toml and finally ~/.config/blogsync.toml.
func GetConfigPath() (string, error) {
	if path := os.Getenv("BLOGSYNC_CONFIG_PATH"); path != "" {
		return path, nil
	}

	if _, err := os.Stat("blogsync.toml"); err == nil {
		return "blogsync.toml", nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "blogsync.toml"), nil
}
