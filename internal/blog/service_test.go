package blog_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"blogsync/internal/blog"
	"blogsync/internal/testutil"
)

// stubRenderer returns canned HTML per page id.
type stubRenderer struct {
	html map[string]string
	err  error
}

func (r *stubRenderer) RenderPage(_ context.Context, pageID string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.html[pageID], nil
}

func newService(source *testutil.FakeSource, renderer *stubRenderer, writer *testutil.MemoryWriter) *blog.Service {
	return blog.NewService(source, renderer, writer, blog.NewNopLogger())
}

func TestService_Sync(t *testing.T) {
	t.Parallel()
	source := testutil.NewFakeSource()
	source.Pages = append(source.Pages,
		testutil.NewPage("page-1", "First post", "about go", "2024-03-09", []string{"go"}, true),
		testutil.NewPage("page-2", "Second post", "", "2024-04-01", nil, true),
	)
	renderer := &stubRenderer{html: map[string]string{
		"page-1": "<p>one</p>",
		"page-2": "<p>two</p>",
	}}
	writer := testutil.NewMemoryWriter()

	count, err := newService(source, renderer, writer).Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if count != 2 {
		t.Errorf("Sync() = %d, want 2", count)
	}
	if len(writer.Posts) != 2 {
		t.Fatalf("wrote %d posts, want 2", len(writer.Posts))
	}

	first := writer.Posts[0]
	if first.Slug != "2024030901" {
		t.Errorf("first slug = %q, want 2024030901", first.Slug)
	}
	if first.Title != "First post" || first.Description != "about go" || first.HTML != "<p>one</p>" {
		t.Errorf("first post = %+v", first)
	}
	if len(first.Tags) != 1 || first.Tags[0] != "go" {
		t.Errorf("first post tags = %v, want [go]", first.Tags)
	}

	if len(writer.Index) != 2 {
		t.Fatalf("index has %d entries, want 2", len(writer.Index))
	}
	if writer.Index[1].Slug != "2024040101" {
		t.Errorf("second index slug = %q, want 2024040101", writer.Index[1].Slug)
	}
}

func TestService_SyncSkipsUnpublishableDrafts(t *testing.T) {
	t.Parallel()
	source := testutil.NewFakeSource()
	source.Pages = append(source.Pages,
		testutil.NewPage("page-1", "", "untitled is skipped", "2024-03-09", nil, true),
		testutil.NewPage("page-2", "Draft", "unpublished is skipped", "2024-03-09", nil, false),
		testutil.NewPage("page-3", "Kept", "", "2024-03-09", nil, true),
	)
	renderer := &stubRenderer{html: map[string]string{"page-3": "<p>kept</p>"}}
	writer := testutil.NewMemoryWriter()

	count, err := newService(source, renderer, writer).Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if count != 1 {
		t.Errorf("Sync() = %d, want 1", count)
	}
	if len(writer.Posts) != 1 || writer.Posts[0].ID != "page-3" {
		t.Errorf("posts = %+v, want only page-3", writer.Posts)
	}
}

func TestService_SyncSameDayPostsGetDistinctSlugs(t *testing.T) {
	t.Parallel()
	source := testutil.NewFakeSource()
	source.Pages = append(source.Pages,
		testutil.NewPage("page-1", "Morning", "", "2024-03-09", nil, true),
		testutil.NewPage("page-2", "Evening", "", "2024-03-09", nil, true),
	)
	renderer := &stubRenderer{html: map[string]string{}}
	writer := testutil.NewMemoryWriter()

	if _, err := newService(source, renderer, writer).Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	got := []string{writer.Posts[0].Slug, writer.Posts[1].Slug}
	if got[0] != "2024030901" || got[1] != "2024030902" {
		t.Errorf("slugs = %v, want [2024030901 2024030902]", got)
	}
}

func TestService_SyncSlugBaseFallbacks(t *testing.T) {
	t.Parallel()
	source := testutil.NewFakeSource()
	source.Pages = append(source.Pages,
		// No date: the digits of the page id become the base.
		testutil.NewPage("abc123", "No date", "", "", nil, true),
		// No date and no digits in the id: positional base.
		testutil.NewPage("abcdef", "No digits", "", "", nil, true),
	)
	renderer := &stubRenderer{html: map[string]string{}}
	writer := testutil.NewMemoryWriter()

	if _, err := newService(source, renderer, writer).Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	if got := writer.Posts[0].Slug; got != "12301" {
		t.Errorf("id-digit slug = %q, want 12301", got)
	}
	if got := writer.Posts[1].Slug; got != "000201" {
		t.Errorf("positional slug = %q, want 000201", got)
	}
}

func TestService_SyncIndexExcludesHTML(t *testing.T) {
	t.Parallel()
	source := testutil.NewFakeSource()
	source.Pages = append(source.Pages,
		testutil.NewPage("page-1", "Post", "desc", "2024-03-09", []string{"go", "notion"}, true),
	)
	renderer := &stubRenderer{html: map[string]string{"page-1": "<p>body</p>"}}
	writer := testutil.NewMemoryWriter()

	if _, err := newService(source, renderer, writer).Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	entry := writer.Index[0]
	want := blog.Summary{
		ID:            "page-1",
		Slug:          "2024030901",
		Title:         "Post",
		Description:   "desc",
		PublishedDate: "2024-03-09",
		Tags:          []string{"go", "notion"},
	}
	if !reflect.DeepEqual(entry, want) {
		t.Errorf("index entry = %+v, want %+v", entry, want)
	}
}

func TestService_SyncRenderErrorAborts(t *testing.T) {
	t.Parallel()
	source := testutil.NewFakeSource()
	source.Pages = append(source.Pages,
		testutil.NewPage("page-1", "Post", "", "2024-03-09", nil, true),
	)
	renderer := &stubRenderer{err: errors.New("listing block children: http 500")}
	writer := testutil.NewMemoryWriter()

	_, err := newService(source, renderer, writer).Sync(context.Background())
	if err == nil {
		t.Fatal("Sync() returned nil error, want render failure")
	}
	if writer.Index != nil {
		t.Error("index was written despite an aborted run")
	}
}

func TestService_SyncEmptyDatabaseWritesEmptyIndex(t *testing.T) {
	t.Parallel()
	source := testutil.NewFakeSource()
	renderer := &stubRenderer{}
	writer := testutil.NewMemoryWriter()

	count, err := newService(source, renderer, writer).Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if count != 0 {
		t.Errorf("Sync() = %d, want 0", count)
	}
	if writer.Index == nil || len(writer.Index) != 0 {
		t.Errorf("index = %v, want an empty non-nil slice", writer.Index)
	}
}
