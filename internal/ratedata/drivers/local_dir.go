package drivers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalDirSource reads rate data files from a directory on local disk.
type LocalDirSource struct {
	BaseDir string
}

// NewLocalDirSource creates a new LocalDirSource rooted at baseDir.
func NewLocalDirSource(baseDir string) (*LocalDirSource, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat rate data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rate data path %s is not a directory", baseDir)
	}
	return &LocalDirSource{BaseDir: baseDir}, nil
}

func (s *LocalDirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.BaseDir, filepath.Clean(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to open rate file %s: %w", name, err)
	}
	return f, nil
}
