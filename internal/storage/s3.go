package storage

import (
	"context"
	"errors"
	"fmt"

	"talent-horizon/internal/clients"
)

const s3KeyPrefix = "state/"

// S3 stores each key as one JSON object in the configured bucket.
type S3 struct {
	client *clients.S3Client
}

func NewS3(client *clients.S3Client) *S3 {
	return &S3{client: client}
}

func (s *S3) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.GetObject(ctx, s3KeyPrefix+key+fileSuffix)
	if errors.Is(err, clients.ErrObjectNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("s3 storage load %q: %w", key, err)
	}
	return data, nil
}

func (s *S3) Save(ctx context.Context, key string, value []byte) error {
	if _, err := s.client.PutObject(ctx, s3KeyPrefix+key+fileSuffix, clients.ContentTypeJSON, value); err != nil {
		return fmt.Errorf("s3 storage save %q: %w", key, err)
	}
	return nil
}
