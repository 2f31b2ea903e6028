package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore persists uploaded attachments and hands back the stored
// filename, which is what the domain records reference.
type BlobStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
	Delete(ctx context.Context, storedName string) error
}

// DiskStore keeps blobs as flat files under a single directory. Stored
// names carry a UUID prefix so repeated uploads of the same file never
// collide.
type DiskStore struct {
	dir    string
	logger *slog.Logger
}

var _ BlobStore = (*DiskStore)(nil)

func NewDiskStore(dir string, logger *slog.Logger) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{
		dir:    dir,
		logger: logger.With(slog.String("component", "diskStore")),
	}, nil
}

func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	storedName := uuid.New().String() + "_" + sanitizeFilename(originalName)
	path := filepath.Join(s.dir, storedName)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create blob file", slog.Any("error", err))
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		s.logger.ErrorContext(ctx, "Failed to write blob file", slog.Any("error", err))
		return "", fmt.Errorf("failed to write blob file: %w", err)
	}

	s.logger.InfoContext(ctx, "Stored upload", slog.String("storedName", storedName))
	return storedName, nil
}

func (s *DiskStore) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	clean := sanitizeFilename(storedName)
	if clean != storedName {
		return nil, fmt.Errorf("invalid stored filename %q", storedName)
	}
	f, err := os.Open(filepath.Join(s.dir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob %s not found", clean)
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", clean, err)
	}
	return f, nil
}

func (s *DiskStore) Delete(ctx context.Context, storedName string) error {
	clean := sanitizeFilename(storedName)
	if clean != storedName {
		return fmt.Errorf("invalid stored filename %q", storedName)
	}
	if err := os.Remove(filepath.Join(s.dir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", clean, err)
	}
	return nil
}

// sanitizeFilename strips path elements and characters that have no
// business in a stored name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
