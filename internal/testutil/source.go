package testutil

import (
	"context"

	"blogsync/internal/notion"
)

// FakeSource serves canned pages and block children in place of the Notion
// API. Children are looked up by block id; missing ids yield no children.
type FakeSource struct {
	Pages    []notion.Page
	Children map[string][]notion.Block
	Err      error

	// ChildFetches records the block ids fetched, in order.
	ChildFetches []string
}

func NewFakeSource() *FakeSource {
	return &FakeSource{Children: make(map[string][]notion.Block)}
}

func (s *FakeSource) QueryPublishedPages(_ context.Context) ([]notion.Page, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Pages, nil
}

func (s *FakeSource) ListBlockChildren(_ context.Context, blockID string) ([]notion.Block, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.ChildFetches = append(s.ChildFetches, blockID)
	return s.Children[blockID], nil
}
