package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// FileStorage is the object-storage boundary: store a blob under a key,
// read it back, delete it. Keys may contain slashes (photos/<app-id>/...).
type FileStorage interface {
	UploadFile(file multipart.File, key string) (string, error)
	UploadFileFromReader(src io.Reader, key string) (string, error)
	DownloadFile(key string) (io.ReadCloser, error)
	DeleteFile(key string) error
	FileExists(key string) (bool, error)
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) *LocalFileStorage {
	return &LocalFileStorage{basePath: basePath}
}

// UploadFile stores a multipart upload under the given key.
func (s *LocalFileStorage) UploadFile(file multipart.File, key string) (string, error) {
	return s.UploadFileFromReader(file, key)
}

// UploadFileFromReader stores the reader's content under the given key,
// creating any intermediate directories.
func (s *LocalFileStorage) UploadFileFromReader(src io.Reader, key string) (string, error) {
	fullPath := filepath.Join(s.basePath, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}

	return key, nil
}

// DownloadFile opens the stored blob for reading.
func (s *LocalFileStorage) DownloadFile(key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.basePath, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// DeleteFile removes a stored blob. Deleting a missing key is not an error.
func (s *LocalFileStorage) DeleteFile(key string) error {
	fullPath := filepath.Join(s.basePath, key)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// FileExists checks if a key is present in storage.
func (s *LocalFileStorage) FileExists(key string) (bool, error) {
	if _, err := os.Stat(filepath.Join(s.basePath, key)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return true, nil
}
