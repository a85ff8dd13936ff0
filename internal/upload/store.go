// Package upload keeps request-scoped image uploads on disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/xiaot623/stylist/internal/domain"
)

// Store writes each upload to its own uniquely named file under dir.
type Store struct {
	dir string
}

// NewStore creates dir if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the upload directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save copies r into a new file. On error nothing is left behind.
func (s *Store) Save(r io.Reader) (*domain.UploadedFile, error) {
	id := uuid.New().String()
	path := filepath.Join(s.dir, id)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &domain.UploadedFile{
		ID:        id,
		Path:      path,
		Size:      n,
		CreatedAt: time.Now(),
	}, nil
}

// Read returns the bytes of a saved upload.
func (s *Store) Read(f *domain.UploadedFile) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	return data, nil
}

// Release deletes the upload. Deleting a file that is already gone is not an error.
func (s *Store) Release(f *domain.UploadedFile) error {
	if f == nil {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

// ErrInvalidMaxAge is returned by Sweep for a non-positive age.
var ErrInvalidMaxAge = errors.New("sweep max age must be positive")

// Sweep removes uploads last modified more than maxAge ago and returns how
// many were removed. Files not named like an upload are left alone.
func (s *Store) Sweep(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, ErrInvalidMaxAge
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("list upload dir: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if _, err := uuid.Parse(entry.Name()); err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		err = os.Remove(filepath.Join(s.dir, entry.Name()))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove stale upload: %w", err)
		}
		if err == nil {
			removed++
		}
	}
	return removed, nil
}
