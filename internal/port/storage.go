package port

import (
	"context"
	"io"
	"time"
)

// ExportObject is a generated export file headed for the export bucket.
type ExportObject struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Filename    string // suggested download name; optional
}

// StoredExport identifies an export once it is stored.
type StoredExport struct {
	Location string
	ETag     string
}

// ExportStore keeps generated exports and hands out time-limited download links.
type ExportStore interface {
	Put(ctx context.Context, obj ExportObject) (*StoredExport, error)
	Remove(ctx context.Context, bucket, key string) error
	DownloadURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
