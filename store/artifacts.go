package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeu5/pricing-rl/types"
)

// FileArtifactStore stores policy blobs on the local filesystem. The
// storage path recorded in the registry is the path passed in here.
type FileArtifactStore struct{}

var _ types.ArtifactStore = FileArtifactStore{}

func (FileArtifactStore) Save(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating artifact dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func (FileArtifactStore) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading artifact %s: %w", path, err)
	}
	return data, nil
}
