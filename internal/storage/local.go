// Package storage keeps uploaded spreadsheet files on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"ppi/domain/core"
	"ppi/domain/dataset"
	"ppi/internal"
	"ppi/internal/errors"
	"ppi/internal/naming"
)

// StorageConfig holds configuration for file storage
type StorageConfig struct {
	BasePath    string
	MaxFileSize int64
	ChunkSize   int
}

// DefaultStorageConfig returns sensible defaults
func DefaultStorageConfig() *StorageConfig {
	return &StorageConfig{
		BasePath:    "uploads",
		MaxFileSize: 50 * 1024 * 1024, // 50MB
		ChunkSize:   1024 * 1024,      // 1MB
	}
}

// LocalFileStorage implements ports.FileStorage on a single directory.
// Stored names are "<unix millis>_<sanitized original name>".
type LocalFileStorage struct {
	config *StorageConfig
	now    func() time.Time
	logger *internal.Logger
}

// NewLocalFileStorage creates a new local file storage instance
func NewLocalFileStorage(config *StorageConfig) *LocalFileStorage {
	if config == nil {
		config = DefaultStorageConfig()
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultStorageConfig().ChunkSize
	}
	return &LocalFileStorage{
		config: config,
		now:    time.Now,
		logger: internal.NewComponentLogger("Storage"),
	}
}

// StoredName returns the name a file uploaded as originalName at t is kept under.
func StoredName(originalName string, t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + "_" + naming.Sanitize(originalName)
}

// Store copies r into the upload directory. Files over MaxFileSize are
// removed again and reported as core.ErrFileTooLarge.
func (s *LocalFileStorage) Store(ctx context.Context, originalName string, r io.Reader) (dataset.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return dataset.FileInfo{}, err
	}
	if err := os.MkdirAll(s.config.BasePath, 0755); err != nil {
		return dataset.FileInfo{}, errors.StorageError("failed to create storage directory", err)
	}

	uploadedAt := s.now()
	name := StoredName(filepath.Base(originalName), uploadedAt)
	filePath := filepath.Join(s.config.BasePath, name)

	destFile, err := os.Create(filePath)
	if err != nil {
		return dataset.FileInfo{}, errors.StorageError("failed to create destination file", err)
	}
	defer destFile.Close()

	src := r
	if s.config.MaxFileSize > 0 {
		src = io.LimitReader(r, s.config.MaxFileSize+1)
	}

	buf := make([]byte, s.config.ChunkSize)
	written, err := io.CopyBuffer(destFile, src, buf)
	if err != nil {
		os.Remove(filePath)
		return dataset.FileInfo{}, errors.StorageError("failed to copy file contents", err)
	}
	if s.config.MaxFileSize > 0 && written > s.config.MaxFileSize {
		os.Remove(filePath)
		return dataset.FileInfo{}, fmt.Errorf("%w: %s exceeds %d bytes", core.ErrFileTooLarge, originalName, s.config.MaxFileSize)
	}

	s.logger.Info("saved %s (%d bytes)", filePath, written)
	return dataset.FileInfo{Name: name, Size: written, UploadedAt: uploadedAt}, nil
}

// Open returns a reader for a stored file.
func (s *LocalFileStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	filePath, err := s.path(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filePath)
	if os.IsNotExist(err) {
		return nil, fileNotFound(name)
	}
	if err != nil {
		return nil, errors.StorageError("failed to open file", err)
	}
	return file, nil
}

// Delete removes a stored file. A missing file is reported as not found.
func (s *LocalFileStorage) Delete(ctx context.Context, name string) error {
	filePath, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fileNotFound(name)
		}
		return errors.StorageError("failed to delete file", err)
	}
	s.logger.Info("deleted %s", filePath)
	return nil
}

// Exists checks if a file exists in storage
func (s *LocalFileStorage) Exists(ctx context.Context, name string) (bool, error) {
	filePath, err := s.path(name)
	if err != nil {
		return false, nil
	}
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.StorageError("failed to check file existence", err)
	}
	return info.Mode().IsRegular(), nil
}

// List returns every stored file sorted by name. A missing upload directory
// lists as empty.
func (s *LocalFileStorage) List(ctx context.Context) ([]dataset.FileInfo, error) {
	entries, err := os.ReadDir(s.config.BasePath)
	if os.IsNotExist(err) {
		return []dataset.FileInfo{}, nil
	}
	if err != nil {
		return nil, errors.StorageError("failed to list files", err)
	}

	files := make([]dataset.FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, dataset.FileInfo{
			Name:       e.Name(),
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// path rejects names that would escape the upload directory.
func (s *LocalFileStorage) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fileNotFound(name)
	}
	return filepath.Join(s.config.BasePath, name), nil
}

func fileNotFound(name string) error {
	return fmt.Errorf("%w %q", core.ErrFileNotFound, name)
}
