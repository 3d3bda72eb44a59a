package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore keeps blobs as plain files under a root directory. Object paths
// use forward slashes and are confined to the root.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed and returns the store.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", root, err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) resolve(objectPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(objectPath))
	if cleaned == "." || cleaned == ".." || filepath.IsAbs(cleaned) ||
		cleaned == string(filepath.Separator) || hasDotDotPrefix(cleaned) {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}
	return filepath.Join(s.root, cleaned), nil
}

func hasDotDotPrefix(p string) bool {
	return p == ".." || len(p) > 2 && p[:3] == ".."+string(filepath.Separator)
}

func (s *DiskStore) Put(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) error {
	target, err := s.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create blob file: %w", err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		_ = os.Remove(target)
		return fmt.Errorf("write blob %q: %w", objectPath, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(target)
		return fmt.Errorf("close blob %q: %w", objectPath, err)
	}
	return nil
}

func (s *DiskStore) Get(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	target, err := s.resolve(objectPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("open blob %q: %w", objectPath, err)
	}
	return f, nil
}

func (s *DiskStore) Remove(ctx context.Context, objectPath string) error {
	target, err := s.resolve(objectPath)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob %q: %w", objectPath, err)
	}
	return nil
}

func (s *DiskStore) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.root); err != nil {
		return fmt.Errorf("ping upload dir: %w", err)
	}
	return nil
}
