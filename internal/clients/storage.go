package clients

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrFileNotFound = errors.New("file not found")

type StorageClient struct {
	BaseDir      string // directory holding stored files
	PublicPrefix string // URL prefix where files are served, e.g. "/files"
	BaseURL      string // optional scheme+host[:port] used to build absolute URLs
}

// NewLocalStorage creates a storage client; baseDir will be created if missing.
func NewLocalStorage(baseDir, publicPrefix, baseURL string) (*StorageClient, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if publicPrefix == "" {
		publicPrefix = "/files"
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure storage dir %q: %w", baseDir, err)
	}

	return &StorageClient{BaseDir: baseDir, PublicPrefix: publicPrefix, BaseURL: baseURL}, nil
}

// Save writes data under a unique name that keeps fileName as its suffix and
// returns the stored name.
func (s *StorageClient) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	final := fmt.Sprintf("%s_%s", strings.ReplaceAll(uuid.NewString(), "-", ""), filepath.Base(fileName))
	if err := s.WriteFile(ctx, final, data); err != nil {
		return "", err
	}
	return final, nil
}

// WriteFile atomically replaces the named file: a reader sees either the old
// or the new contents, never a partial write.
func (s *StorageClient) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.Path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.BaseDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to finalize file: %w", err)
	}
	return nil
}

func (s *StorageClient) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Path resolves name inside BaseDir. Names containing path separators are
// rejected.
func (s *StorageClient) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.BaseDir, name), nil
}

// GetURL returns the public URL for a saved file. With BaseURL configured the
// URL is absolute, otherwise it is PublicPrefix/fileName.
func (s *StorageClient) GetURL(fileName string) string {
	prefix := "/" + strings.Trim(s.PublicPrefix, "/")
	if prefix == "/" {
		prefix = "/files"
	}

	if s.BaseURL != "" {
		return fmt.Sprintf("%s%s/%s", strings.TrimRight(s.BaseURL, "/"), prefix, fileName)
	}
	return fmt.Sprintf("%s/%s", prefix, fileName)
}

// CleanupOlderThan deletes files in BaseDir whose names match pattern and
// that were modified more than d ago.
func (s *StorageClient) CleanupOlderThan(pattern string, d time.Duration) error {
	now := time.Now()
	return filepath.WalkDir(s.BaseDir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			if path != s.BaseDir {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, de.Name()); !ok {
			return nil
		}
		info, err := de.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) > d {
			_ = os.Remove(path) // best-effort
		}
		return nil
	})
}
