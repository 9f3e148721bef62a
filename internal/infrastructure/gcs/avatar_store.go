package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/feedback-board/pkg/helpers"
)

// AvatarStore writes profile images into a single bucket.
type AvatarStore struct {
	client *storage.Client
	bucket string
}

func NewAvatarStore(client *storage.Client, bucket string) *AvatarStore {
	return &AvatarStore{client: client, bucket: bucket}
}

// Put uploads r to objectPath and returns the object's public URL.
func (s *AvatarStore) Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}
