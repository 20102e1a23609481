package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"talent-horizon/internal/clients"
)

const fileSuffix = ".json"

// File stores each key as one JSON file in a local directory.
type File struct {
	files *clients.StorageClient
}

func NewFile(files *clients.StorageClient) *File {
	return &File{files: files}
}

func fileName(key string) string {
	return url.PathEscape(key) + fileSuffix
}

func (f *File) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := f.files.ReadFile(ctx, fileName(key))
	if errors.Is(err, clients.ErrFileNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file storage load %q: %w", key, err)
	}
	return data, nil
}

func (f *File) Save(ctx context.Context, key string, value []byte) error {
	if err := f.files.WriteFile(ctx, fileName(key), value); err != nil {
		return fmt.Errorf("file storage save %q: %w", key, err)
	}
	return nil
}
