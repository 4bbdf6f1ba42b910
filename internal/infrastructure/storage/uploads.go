package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/guruapp/backend/domain"
)

// FileStore abstracts raw file persistence for listing files and images.
type FileStore interface {
	// Save persists the content under a generated name and returns the
	// stored filename.
	Save(originalName string, content io.Reader) (string, error)
	// Open returns a reader for a previously stored file.
	Open(name string) (io.ReadCloser, error)
}

type diskStore struct {
	dir string
}

// NewDiskStore creates the upload directory and returns a disk-backed
// FileStore. Files are stored uuid-named to avoid collisions; only the
// original extension is kept.
func NewDiskStore(dir string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &diskStore{dir: dir}, nil
}

func (s *diskStore) Save(originalName string, content io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

func (s *diskStore) Open(name string) (io.ReadCloser, error) {
	// Reject anything that could escape the upload directory.
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, domain.ErrFileNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}
