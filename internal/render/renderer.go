package render

import (
	"context"

	"blogsync/internal/assets"
	"blogsync/internal/blog"
	"blogsync/internal/notion"
)

// DefaultMaxDepth bounds block-tree recursion. Blocks nested deeper are
// rendered as leaves: their has_children flag is ignored rather than
// descending further.
const DefaultMaxDepth = 6

// defaultIntrinsicCap limits render width to intrinsic image width when no
// responsive widths are configured.
const defaultIntrinsicCap = 960

// ChildLister fetches the direct children of a block, pagination already
// followed to exhaustion.
type ChildLister interface {
	ListBlockChildren(ctx context.Context, blockID string) ([]notion.Block, error)
}

// AssetResolver materializes remote media for the rendered page.
type AssetResolver interface {
	// CacheLocal never fails: it degrades to the original URL on error.
	CacheLocal(ctx context.Context, sourceURL, blockID, fallbackExt string) assets.Staged
	// StageRemote uploads the original for the external resize pipeline.
	StageRemote(ctx context.Context, sourceURL, blockID, fallbackExt string) (assets.Staged, error)
	// PipelineEnabled reports whether StageRemote is available this run.
	PipelineEnabled() bool
}

// Options tunes the renderer. Zero values fall back to defaults.
type Options struct {
	// Widths are the responsive widths the external pipeline generates,
	// used for srcset construction and width clamping. May be empty.
	Widths []int
	// DisplayMaxWidth caps the rendered width of images, in pixels.
	DisplayMaxWidth int
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

// Renderer assembles a page's HTML body from its block tree. It walks the
// tree recursively through ChildLister, dispatches each block to a per-type
// fragment renderer, and resolves embedded media through AssetResolver.
type Renderer struct {
	source          ChildLister
	assets          AssetResolver
	logger          blog.Logger
	widths          []int
	displayMaxWidth int
	maxDepth        int
}

// NewRenderer creates a Renderer with the provided dependencies.
func NewRenderer(source ChildLister, resolver AssetResolver, logger blog.Logger, opts Options) *Renderer {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = blog.NewNopLogger()
	}
	return &Renderer{
		source:          source,
		assets:          resolver,
		logger:          logger,
		widths:          opts.Widths,
		displayMaxWidth: opts.DisplayMaxWidth,
		maxDepth:        maxDepth,
	}
}

// RenderPage renders the full HTML body of one page. A page with zero
// blocks yields an empty string.
func (r *Renderer) RenderPage(ctx context.Context, pageID string) (string, error) {
	blocks, err := r.source.ListBlockChildren(ctx, pageID)
	if err != nil {
		return "", err
	}
	return r.renderBlocks(ctx, blocks, 0)
}

// maxGeneratedWidth returns the largest configured responsive width, or 0.
func (r *Renderer) maxGeneratedWidth() int {
	largest := 0
	for _, w := range r.widths {
		if w > largest {
			largest = w
		}
	}
	return largest
}

// Compile-time check that Renderer implements the blog.Renderer interface
var _ blog.Renderer = (*Renderer)(nil)
