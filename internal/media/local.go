package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore keeps movie files on the local filesystem under a base
// directory, mirroring the temp/permanent folder split of the object store.
// Meant for dev and test environments.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	for _, dir := range []string{TempFolder, PermanentFolder} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("creating media directory: %w", err)
		}
	}

	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) MoveToPermanent(_ context.Context, filename string) error {
	src := filepath.Join(s.baseDir, TempFolder, filename)
	dst := filepath.Join(s.baseDir, PermanentFolder, filename)

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("relocating movie file: %w", err)
	}

	return nil
}

// CreateUploadTarget returns a filesystem destination; local clients write the
// file there directly instead of PUTting to a presigned URL.
func (s *LocalStore) CreateUploadTarget(_ context.Context) (*UploadTarget, error) {
	filename := NewUploadFileName()

	return &UploadTarget{
		FileName:  filename,
		UploadURL: filepath.Join(s.baseDir, TempFolder, filename),
	}, nil
}

// TempDir exposes the temp folder for the orphaned-upload sweeper.
func (s *LocalStore) TempDir() string {
	return filepath.Join(s.baseDir, TempFolder)
}
