package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeJSON = "application/json"
)

var ErrObjectNotFound = errors.New("s3: object not found")

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	Prefix          string
	// Transport overrides the HTTP transport, e.g. for a private CA.
	Transport http.RoundTripper
	// MaxRetries of 0 keeps the minio default; 1 disables retries.
	MaxRetries int
}

type S3Client struct {
	raw    *minio.Client
	bucket string
	prefix string
}

func NewS3Client(ctx context.Context, cfg S3Config) (*S3Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:      credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:     cfg.UseSSL,
		Region:     cfg.Region,
		Transport:  cfg.Transport,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	c := &S3Client{
		raw:    client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}
	if err := c.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *S3Client) ensureBucket(ctx context.Context, region string) error {
	exists, err := c.raw.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", c.bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.raw.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %q: %w", c.bucket, err)
	}
	return nil
}

// PutObject stores data under the prefixed key and returns that key.
func (c *S3Client) PutObject(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if c == nil || c.raw == nil {
		return "", fmt.Errorf("s3 client is nil")
	}

	key := c.prefix + name
	_, err := c.raw.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %q failed: %w", key, err)
	}
	return key, nil
}

func (c *S3Client) GetObject(ctx context.Context, name string) ([]byte, error) {
	if c == nil || c.raw == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}

	key := c.prefix + name
	obj, err := c.raw.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q failed: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("read object %q failed: %w", key, err)
	}
	return data, nil
}

func (c *S3Client) UploadXLSX(ctx context.Context, fileName string, data []byte) (string, error) {
	return c.PutObject(ctx, fileName, ContentTypeXLSX, data)
}

func (c *S3Client) GetTemporaryURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if c == nil || c.raw == nil {
		return "", fmt.Errorf("s3 client is nil")
	}

	u, err := c.raw.PresignedGetObject(ctx, c.bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign get object %q failed: %w", key, err)
	}

	return u.String(), nil
}
