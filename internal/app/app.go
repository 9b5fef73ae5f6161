package app

import (
	"context"
	"fmt"
	"os"

	"blogsync/internal/assets"
	"blogsync/internal/blog"
	"blogsync/internal/config"
	"blogsync/internal/notion"
	"blogsync/internal/render"

	"github.com/google/uuid"
)

// SyncApp is the application layer between the CLI and the sync service.
// It constructs all dependencies from config and environment, and owns the
// log file lifecycle. Everything it builds is scoped to one run: a second
// sync means a second SyncApp.
type SyncApp struct {
	cfg     *config.Config
	service *blog.Service
	logger  blog.Logger
	logFile *os.File
}

// NewSyncApp creates a fully wired SyncApp from the given config.
// The Notion token is read from the NOTION_TOKEN environment variable;
// a missing token or invalid config aborts before any work starts.
// The caller must call Close when done.
func NewSyncApp(ctx context.Context, cfg *config.Config) (*SyncApp, error) {
	if id := os.Getenv("NOTION_DATABASE_ID"); id != "" {
		cfg.Notion.DatabaseID = id
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	token := os.Getenv("NOTION_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("NOTION_TOKEN is not set")
	}

	runID := uuid.New().String()
	slogger, logFile, err := newLogger(cfg.LogDir, runID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	client, err := notion.NewClient(notion.Config{
		Token:          token,
		DatabaseID:     cfg.Notion.DatabaseID,
		TimeoutSeconds: cfg.Notion.TimeoutSeconds,
	})
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating notion client: %w", err)
	}

	resolver, err := assets.NewResolverFromConfig(ctx, cfg.Images, cfg.OutputDir, logger)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating asset resolver: %w", err)
	}

	renderer := render.NewRenderer(client, resolver, logger, render.Options{
		Widths:          resolver.Widths(),
		DisplayMaxWidth: cfg.Images.DisplayMaxWidth,
	})

	writer, err := blog.NewDirWriter(cfg.OutputDir)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating output writer: %w", err)
	}

	svc := blog.NewService(client, renderer, writer, logger)

	return &SyncApp{
		cfg:     cfg,
		service: svc,
		logger:  logger,
		logFile: logFile,
	}, nil
}

// Sync runs one full sync and returns the number of posts written.
func (a *SyncApp) Sync(ctx context.Context) (int, error) {
	a.logger.Info("sync started",
		"output_dir", a.cfg.OutputDir,
		"pipeline", a.cfg.Images.Pipeline,
	)
	return a.service.Sync(ctx)
}

// Close releases the log file.
func (a *SyncApp) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
