package testutil

import (
	"context"

	"blogsync/internal/assets"
)

// FakeRemoteStore records uploads in memory. Set Err to make every upload
// fail, simulating an unreachable bucket.
type FakeRemoteStore struct {
	Uploads      map[string][]byte
	ContentTypes map[string]string
	Err          error
}

func NewFakeRemoteStore() *FakeRemoteStore {
	return &FakeRemoteStore{
		Uploads:      make(map[string][]byte),
		ContentTypes: make(map[string]string),
	}
}

func (s *FakeRemoteStore) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Uploads[key] = data
	s.ContentTypes[key] = contentType
	return nil
}

// FakeResolver returns canned staged assets without any I/O. Staged is
// returned by both modes; set StageErr to force the pipeline-failure path.
type FakeResolver struct {
	Staged   assets.Staged
	Pipeline bool
	StageErr error

	LocalCalls  []string // source URLs passed to CacheLocal
	RemoteCalls []string // source URLs passed to StageRemote
}

func (r *FakeResolver) CacheLocal(_ context.Context, sourceURL, _, _ string) assets.Staged {
	r.LocalCalls = append(r.LocalCalls, sourceURL)
	return r.Staged
}

func (r *FakeResolver) StageRemote(_ context.Context, sourceURL, _, _ string) (assets.Staged, error) {
	r.RemoteCalls = append(r.RemoteCalls, sourceURL)
	if r.StageErr != nil {
		return assets.Staged{}, r.StageErr
	}
	return r.Staged, nil
}

func (r *FakeResolver) PipelineEnabled() bool { return r.Pipeline }
