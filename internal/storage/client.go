package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"pago_backend/platform/config"
	"pago_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// presignTTL is how long presigned upload and download URLs stay valid.
const presignTTL = 15 * time.Minute

// Client wraps the MinIO SDK for the buckets this application owns.
type Client struct {
	minio *minio.Client
	log   *logger.Logger
}

// NewClient connects to the configured MinIO endpoint.
func NewClient(cfg config.StorageConfig, log *logger.Logger) (*Client, error) {
	mc, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Client{minio: mc, log: log}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := c.minio.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.minio.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	c.log.Info("bucket created", "bucket", bucket)
	return nil
}

// ObjectKey builds a collision-free key from a validated filename.
func ObjectKey(filename string) string {
	return fmt.Sprintf("%s-%s", uuid.NewString(), strings.ToLower(filename))
}

// PresignedPut returns a short-lived upload URL for the key.
func (c *Client) PresignedPut(ctx context.Context, bucket, key string) (string, error) {
	u, err := c.minio.PresignedPutObject(ctx, bucket, key, presignTTL)
	if err != nil {
		return "", fmt.Errorf("presign put %s/%s: %w", bucket, key, err)
	}
	return u.String(), nil
}

// PresignedGet returns a short-lived download URL for the key, with a
// Content-Disposition that restores the original filename.
func (c *Client) PresignedGet(ctx context.Context, bucket, key, downloadName string) (string, error) {
	params := make(url.Values)
	if downloadName != "" {
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	}
	u, err := c.minio.PresignedGetObject(ctx, bucket, key, presignTTL, params)
	if err != nil {
		return "", fmt.Errorf("presign get %s/%s: %w", bucket, key, err)
	}
	return u.String(), nil
}

// Stat returns size and content type of a stored object.
func (c *Client) Stat(ctx context.Context, bucket, key string) (minio.ObjectInfo, error) {
	info, err := c.minio.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return minio.ObjectInfo{}, fmt.Errorf("stat %s/%s: %w", bucket, key, err)
	}
	return info, nil
}

// Put streams an object into the bucket.
func (c *Client) Put(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.minio.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Get opens a stored object for reading.
func (c *Client) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := c.minio.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, err)
	}
	return obj, nil
}

// Remove deletes an object; missing objects are not an error.
func (c *Client) Remove(ctx context.Context, bucket, key string) error {
	if err := c.minio.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s/%s: %w", bucket, key, err)
	}
	return nil
}
