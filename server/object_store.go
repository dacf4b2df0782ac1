// Package server defines the remote object store the sync engine talks to.
package server

import (
	"context"
	"time"
)

type Object struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
}

// ObjectStore is the narrow view of an S3-compatible store used by this module.
// Implementations report failures as *Error so callers can branch on Kind.
type ObjectStore interface {
	// ListObjects returns every object in bucket, following pagination.
	ListObjects(ctx context.Context, bucket string) ([]Object, error)
	// HeadObject returns the metadata of a single object.
	HeadObject(ctx context.Context, bucket, key string) (Object, error)
	// GetObject writes the object to localPath, replacing any existing file.
	GetObject(ctx context.Context, bucket, key, localPath string) error
	// PutObject uploads the file at localPath under key.
	PutObject(ctx context.Context, bucket, key, localPath string) error
	// RemoveObject deletes key from bucket.
	RemoveObject(ctx context.Context, bucket, key string) error
}
