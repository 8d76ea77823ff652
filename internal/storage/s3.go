package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/shortsgen/backend/internal/config"
)

// ErrObjectEmpty indicates the referenced object exists but has no content.
var ErrObjectEmpty = errors.New("s3 object is empty")

// Downloader fetches objects into an io.WriterAt. *manager.Downloader satisfies it.
type Downloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

// S3Storage reads media assets from an S3-compatible service.
type S3Storage struct {
	downloader    Downloader
	defaultBucket string
}

// NewS3Storage configures a downloader targeting the provided object store.
func NewS3Storage(ctx context.Context, cfg config.ObjectStoreConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	downloader := manager.NewDownloader(client, func(d *manager.Downloader) {
		d.PartSize = 5 * 1024 * 1024
	})

	return NewS3StorageWithDownloader(downloader, cfg.Bucket), nil
}

// NewS3StorageWithDownloader wraps an existing downloader.
func NewS3StorageWithDownloader(downloader Downloader, defaultBucket string) *S3Storage {
	return &S3Storage{downloader: downloader, defaultBucket: strings.TrimSpace(defaultBucket)}
}

// Open downloads bucket/key into memory. An empty bucket falls back to the configured default.
func (s *S3Storage) Open(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	if bucket == "" {
		bucket = s.defaultBucket
	}
	key = strings.TrimLeft(key, "/")
	if bucket == "" || key == "" {
		return nil, 0, fmt.Errorf("s3 storage: bucket and key are required")
	}

	buf := manager.NewWriteAtBuffer([]byte{})
	n, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("s3 storage download %s/%s: %w", bucket, key, err)
	}
	if n == 0 {
		return nil, 0, fmt.Errorf("s3 storage download %s/%s: %w", bucket, key, ErrObjectEmpty)
	}

	return io.NopCloser(bytes.NewReader(buf.Bytes())), n, nil
}
