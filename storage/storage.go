// Package storage holds the image stores the product controllers upload to.
// Two backends are supported: Google Cloud Storage and any S3-compatible
// service (Cloudflare R2 in production). STORAGE_PROVIDER selects one.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// ImageStore uploads binary payloads and hands back the public reference that
// gets persisted in their place. Only the reference ever reaches the
// database.
type ImageStore interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (publicURL string, err error)
	Delete(ctx context.Context, objectName string) error
	// ObjectName recovers the object key from a public URL previously
	// returned by Upload. Used to delete replaced images.
	ObjectName(publicURL string) (string, error)
}

// FromEnv builds the store named by STORAGE_PROVIDER ("gcs" or "r2").
func FromEnv(ctx context.Context) (ImageStore, error) {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_PROVIDER")))
	switch provider {
	case "", "gcs":
		return NewGCSStore(ctx)
	case "r2", "s3":
		return NewR2Store(ctx)
	}
	return nil, fmt.Errorf("unknown STORAGE_PROVIDER %q (want gcs or r2)", provider)
}
