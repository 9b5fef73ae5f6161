package blog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DirWriter writes the sync output contract to a local directory:
//
//	<dir>/
//	  index.json         (array of Summary)
//	  posts/
//	    <slug>.json      (one Post per page)
//
// The assets/ subdirectory is owned by the asset resolver, not the writer.
type DirWriter struct {
	dir      string
	postsDir string
}

// NewDirWriter creates the output directory structure rooted at dir.
func NewDirWriter(dir string) (*DirWriter, error) {
	postsDir := filepath.Join(dir, "posts")
	if err := os.MkdirAll(postsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating posts directory: %w", err)
	}
	return &DirWriter{dir: dir, postsDir: postsDir}, nil
}

// WritePost persists one post document as posts/{slug}.json.
func (w *DirWriter) WritePost(post *Post) error {
	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding post %s: %w", post.Slug, err)
	}
	path := filepath.Join(w.postsDir, post.Slug+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing post %s: %w", post.Slug, err)
	}
	return nil
}

// WriteIndex persists the run-level index.json.
func (w *DirWriter) WriteIndex(index []Summary) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, "index.json"), data, 0644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// Compile-time check that DirWriter implements the Writer interface
var _ Writer = (*DirWriter)(nil)
