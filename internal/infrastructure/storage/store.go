package storage

import (
	"context"
	"io"
)

// Store persists an uploaded file under name and returns its public path or URL.
type Store interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

var (
	_ Store = (*LocalStore)(nil)
	_ Store = (*GCSStore)(nil)
)
