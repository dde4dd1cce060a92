package storage

import (
	"context"
	"io"
	"path"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/six-cities-api/pkg/helpers"
)

// GCSStore uploads files into a bucket under Prefix and returns their public URL.
type GCSStore struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func NewGCSStore(client *storage.Client, bucket, prefix string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket, Prefix: prefix}
}

func (s *GCSStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.Client, s.Bucket, path.Join(s.Prefix, path.Base(name)), contentType, r)
}
