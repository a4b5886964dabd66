package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps blobs on the local filesystem under a single root directory.
type FSStore struct {
	Root string
}

func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("blob root: %w", err)
	}
	return &FSStore{Root: root}, nil
}

func (s *FSStore) fullPath(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob path %q", path)
	}
	return filepath.Join(s.Root, clean), nil
}

func (s *FSStore) Save(ctx context.Context, path string, r io.Reader) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return err
	}
	return f.Close()
}

func (s *FSStore) Delete(ctx context.Context, path string) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FSStore) Resolve(ctx context.Context, path string) bool {
	full, err := s.fullPath(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

func (s *FSStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.fullPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}
