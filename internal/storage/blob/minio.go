package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gravadigital/partnerships-api/internal/logger"
)

// MinioConfig holds the connection settings of an S3-compatible server
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the base of the returned object URLs
	PublicURL string
}

// Minio stores blobs in a single MinIO bucket
type Minio struct {
	client  *minio.Client
	bucket  string
	baseURL string
	log     *log.Logger
}

// NewMinio connects to the server and creates the bucket when missing
func NewMinio(ctx context.Context, cfg MinioConfig) (*Minio, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &Minio{
		client: client,
		bucket: cfg.Bucket,
		log:    logger.Storage().With("blob", "minio"),
	}
	s.baseURL = cfg.PublicURL
	if s.baseURL == "" {
		s.baseURL = joinURL(client.EndpointURL().String(), cfg.Bucket)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	s.log.Info("MinIO blob store ready", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return s, nil
}

func (s *Minio) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.log.Info("Created bucket", "bucket", s.bucket)
	return nil
}

func (s *Minio) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.log.Error("Failed to upload object", "key", key, "error", err)
		return Object{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.log.Debug("Uploaded object", "key", key, "size", info.Size)
	return Object{
		Key:         key,
		URL:         joinURL(s.baseURL, key),
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

func (s *Minio) Get(ctx context.Context, key string) (io.ReadCloser, Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, Object{}, fmt.Errorf("failed to get %s: %w", key, err)
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, Object{}, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return nil, Object{}, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return obj, Object{
		Key:         key,
		URL:         joinURL(s.baseURL, key),
		Size:        stat.Size,
		ContentType: stat.ContentType,
	}, nil
}

func (s *Minio) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Minio) Driver() Driver {
	return DriverMinio
}
