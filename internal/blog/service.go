package blog

import (
	"context"
	"fmt"

	"blogsync/internal/notion"
)

// Source lists the published pages of the content database.
type Source interface {
	QueryPublishedPages(ctx context.Context) ([]notion.Page, error)
}

// Renderer turns one page's block tree into an HTML body.
type Renderer interface {
	RenderPage(ctx context.Context, pageID string) (string, error)
}

// Writer persists the sync output contract.
type Writer interface {
	WritePost(post *Post) error
	WriteIndex(index []Summary) error
}

// Service is the page indexer: it enumerates published pages, allocates
// collision-free slugs, renders each page body and writes the output
// documents. All state (slug counters, used-slug set) is scoped to one
// Sync call; the service itself is stateless between runs.
type Service struct {
	source   Source
	renderer Renderer
	writer   Writer
	logger   Logger
}

// NewService creates a Service with the provided dependencies.
func NewService(source Source, renderer Renderer, writer Writer, logger Logger) *Service {
	return &Service{
		source:   source,
		renderer: renderer,
		writer:   writer,
		logger:   logger,
	}
}

// Sync runs one full sync: one document per published page plus the index.
// Pages without a title or without the published flag are skipped silently;
// anything else that fails aborts the run. Returns the number of posts
// written.
func (s *Service) Sync(ctx context.Context) (int, error) {
	pages, err := s.source.QueryPublishedPages(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching pages: %w", err)
	}

	slugs := newSlugger()
	index := make([]Summary, 0, len(pages))

	for _, page := range pages {
		title := page.Title()
		if title == "" || !page.Published() {
			continue
		}

		publishedDate := page.PublishedDate()

		base := dateDigits(publishedDate)
		if base == "" {
			base = digitsOf(page.ID)
		}
		if base == "" {
			base = fmt.Sprintf("%04d", len(index)+1)
		}
		slug := slugs.allocate(base)

		html, err := s.renderer.RenderPage(ctx, page.ID)
		if err != nil {
			return len(index), fmt.Errorf("rendering page %s: %w", page.ID, err)
		}

		post := &Post{
			ID:            page.ID,
			Slug:          slug,
			Title:         title,
			Description:   page.Description(),
			PublishedDate: publishedDate,
			Tags:          page.Tags(),
			HTML:          html,
		}

		if err := s.writer.WritePost(post); err != nil {
			return len(index), fmt.Errorf("writing post %s: %w", slug, err)
		}

		index = append(index, Summary{
			ID:            post.ID,
			Slug:          post.Slug,
			Title:         post.Title,
			Description:   post.Description,
			PublishedDate: post.PublishedDate,
			Tags:          post.Tags,
		})

		s.logger.Debug("post synced", "slug", slug, "title", title)
	}

	if err := s.writer.WriteIndex(index); err != nil {
		return len(index), fmt.Errorf("writing index: %w", err)
	}

	s.logger.Info("sync complete", "posts", len(index))
	return len(index), nil
}
