package assets

import (
	"context"
	"fmt"
	"path/filepath"

	"blogsync/internal/blog"
	"blogsync/internal/config"
)

// assetsPublicPrefix is the site-relative path the front end serves locally
// cached assets from.
const assetsPublicPrefix = "/blog/assets"

// NewResolverFromConfig creates a run-scoped Resolver based on the images
// pipeline config type.
func NewResolverFromConfig(ctx context.Context, cfg config.ImagesConfig, outputDir string, logger blog.Logger) (*Resolver, error) {
	local, err := NewLocalStore(filepath.Join(outputDir, "assets"), assetsPublicPrefix)
	if err != nil {
		return nil, fmt.Errorf("creating local asset store: %w", err)
	}

	opts := ResolverOptions{
		Local:   local,
		Widths:  cfg.Widths,
		BaseURL: cfg.S3.BaseURL,
		Prefix:  cfg.S3.Prefix,
		Logger:  logger,
	}

	switch cfg.Pipeline {
	case "", "local":
	case "s3":
		remote, err := NewS3Store(ctx, S3Options{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Profile:         cfg.S3.Profile,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 store: %w", err)
		}
		opts.Remote = remote
	default:
		return nil, fmt.Errorf("unknown images pipeline: %s", cfg.Pipeline)
	}

	return NewResolver(opts), nil
}
