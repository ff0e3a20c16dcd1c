package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/garageconnect/customer/internal/domain"
)

var (
	ErrObjectExists = errors.New("object already exists")
	ErrInvalidPath  = errors.New("invalid object path")
)

// Config holds the storage configuration.
type Config struct {
	Driver string // local, s3

	// Local storage
	UploadsPath   string
	PublicBaseURL string

	// S3 (or an S3-compatible endpoint such as R2/MinIO)
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	BucketPrefix       string
	Endpoint           string
}

// NewDriver creates a storage driver based on configuration.
func NewDriver(cfg Config) (domain.BlobStore, error) {
	switch cfg.Driver {
	case "local", "":
		uploadsPath := cfg.UploadsPath
		if uploadsPath == "" {
			uploadsPath = "./uploads"
		}
		return NewLocalStorage(uploadsPath, cfg.PublicBaseURL), nil
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// cleanKey rejects keys that would escape their bucket.
func cleanKey(bucket, key string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, "/\\") {
		return "", ErrInvalidPath
	}
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// ContentType returns the MIME type based on file extension.
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".heic":
		return "image/heic"
	}
	return "application/octet-stream"
}
