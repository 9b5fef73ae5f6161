package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore materializes assets as files in a local directory served by the
// static site. File names are derived from the owning block id (or a URL
// hash), so re-running a sync overwrites rather than accumulates.
type LocalStore struct {
	dir          string
	publicPrefix string
}

// NewLocalStore creates the asset directory and returns a store that maps
// written files to public paths under publicPrefix.
func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating asset directory: %w", err)
	}
	return &LocalStore{dir: dir, publicPrefix: publicPrefix}, nil
}

// Save writes the asset bytes under filename and returns its public path.
func (s *LocalStore) Save(filename string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("writing asset %s: %w", filename, err)
	}
	return s.publicPrefix + "/" + filename, nil
}
