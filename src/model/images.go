package model

import (
	"context"
	"io"
)

// ImageRecord is one stored photograph as exposed to the display layer.
// ID is positional within a single gallery assembly pass and is not stable
// across separate fetches; PublicID is the store's object key without the
// format extension and is the stable identifier.
type ImageRecord struct {
	ID          int    `json:"id"`
	PublicID    string `json:"public_id"`
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	URL         string `json:"url"`
	BlurDataURL string `json:"blurDataUrl,omitempty"`
}

// ObjectInfo is the subset of store listing metadata the gallery needs.
type ObjectInfo struct {
	Key  string
	Size int64
}

// MediaStore is the external media-storage service: upload, list, fetch a
// rendition, resolve a public URL. Implemented over MinIO in src/app and by
// fakes in tests.
type MediaStore interface {
	UploadStream(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	ListFolder(ctx context.Context, folder string, max int) ([]ObjectInfo, error)
	FetchObject(ctx context.Context, key string) ([]byte, error)
	ObjectURL(ctx context.Context, key string) (string, error)
}
