package main

import (
	"fmt"
	"os"

	"blogsync/internal/app"
	"blogsync/internal/config"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blogsync",
	Short: "Sync Notion blog posts into static site content",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := app.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		cfg := config.NewConfig()
		if err := config.Init(path, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", path)
		fmt.Println("Set NOTION_TOKEN and notion.database_id before the first sync.")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := app.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		cfg, err := config.ReadFromFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Output Dir:  %s\n", cfg.OutputDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Database ID: %s\n", cfg.Notion.DatabaseID)
		fmt.Printf("Pipeline:    %s\n", cfg.Images.Pipeline)
		if cfg.Images.Pipeline == "s3" {
			fmt.Printf("S3 Bucket:   %s\n", cfg.Images.S3.Bucket)
			fmt.Printf("Base URL:    %s\n", cfg.Images.S3.BaseURL)
		}
		return nil
	},
}

// sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a full content sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := app.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		cfg, err := config.ReadFromFile(path)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}

		a, err := app.NewSyncApp(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}
		defer a.Close()

		count, err := a.Sync(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		fmt.Printf("Synced %d post(s)\n", count)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(syncCmd)
}
