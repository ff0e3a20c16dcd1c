package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/garageconnect/customer/internal/domain"
)

// LocalStorage keeps each bucket as a directory under basePath.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) *LocalStorage {
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// BasePath is the directory served under /uploads.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

func (s *LocalStorage) Upload(ctx context.Context, bucket, key string, data []byte, opts domain.UploadOptions) (string, error) {
	key, err := cleanKey(bucket, key)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.basePath, bucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	out, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrObjectExists
		}
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return key, nil
}

func (s *LocalStorage) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, bucket, strings.TrimPrefix(key, "/"))
}

func (s *LocalStorage) Delete(ctx context.Context, bucket, key string) error {
	key, err := cleanKey(bucket, key)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.basePath, bucket, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
