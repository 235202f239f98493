package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the export document store. Implementations hold finished
// schedule and breakdown documents; the scheduling core never touches
// the backing store directly.
type Storage interface {
	// Upload stores a document under key and returns its URL.
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Download opens a stored document.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetPresignedDownloadURL returns a time-limited download URL.
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// Delete removes a document.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a document exists.
	Exists(ctx context.Context, key string) (bool, error)

	// GetFileInfo returns document metadata.
	GetFileInfo(ctx context.Context, key string) (*FileInfo, error)

	// GetStorageType returns the backend type.
	GetStorageType() string
}

// FileInfo is stored document metadata.
type FileInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// StorageType identifies a storage backend.
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // local filesystem
	StorageTypeOSS   StorageType = "oss"   // Aliyun OSS
)
