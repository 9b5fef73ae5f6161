package testutil

import "blogsync/internal/blog"

// MemoryWriter collects output documents in memory.
type MemoryWriter struct {
	Posts []*blog.Post
	Index []blog.Summary
}

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{}
}

func (w *MemoryWriter) WritePost(post *blog.Post) error {
	w.Posts = append(w.Posts, post)
	return nil
}

func (w *MemoryWriter) WriteIndex(index []blog.Summary) error {
	w.Index = index
	return nil
}
