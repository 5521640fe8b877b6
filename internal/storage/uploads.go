package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload describes a photo written to the scratch directory. The file lives
// only for the duration of the request that created it.
type Upload struct {
	Path         string
	OriginalName string
	MIME         string
	Size         int64
}

// UploadStore persists incoming photos into a local scratch directory. It is
// transient storage: every saved file is removed once its request finishes.
type UploadStore struct {
	dir string
}

// NewUploadStore initializes an UploadStore rooted at dir, creating the
// directory if it does not exist.
func NewUploadStore(dir string) (*UploadStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure upload directory: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Dir returns the scratch directory root.
func (s *UploadStore) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Save writes the uploaded file under a unique name, preserving the original
// extension, and returns its scratch-directory record.
func (s *UploadStore) Save(file multipart.File, header *multipart.FileHeader) (*Upload, error) {
	if s == nil {
		return nil, errors.New("storage: no store configured")
	}
	name := uuid.NewString() + filepath.Ext(header.Filename)
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("storage: create scratch file: %w", err)
	}
	size, err := io.Copy(dst, file)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("storage: write scratch file: %w", err)
	}
	return &Upload{
		Path:         path,
		OriginalName: header.Filename,
		MIME:         header.Header.Get("Content-Type"),
		Size:         size,
	}, nil
}

// Remove deletes a scratch file. A file that is already gone is not an error,
// so cleanup stays idempotent.
func (s *UploadStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
