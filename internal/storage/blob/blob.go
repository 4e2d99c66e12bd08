// Package blob stores uploaded binaries such as publication screenshots.
package blob

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/gravadigital/partnerships-api/internal/config"
)

// Driver identifies a blob backend
type Driver string

const (
	DriverMinio  Driver = "minio"
	DriverS3     Driver = "s3"
	DriverMemory Driver = "memory"
)

// ErrNotFound is returned by Get for unknown keys
var ErrNotFound = errors.New("blob not found")

// Object describes a stored blob
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

// Store is the minimal object storage surface used by the upload handlers.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
	Get(ctx context.Context, key string) (io.ReadCloser, Object, error)
	Delete(ctx context.Context, key string) error
	Driver() Driver
}

// New builds the configured store. The memory store serves its URLs under
// localBaseURL.
func New(ctx context.Context, cfg *config.Config, localBaseURL string) (Store, error) {
	switch Driver(cfg.BlobDriver()) {
	case DriverMinio:
		s, err := NewMinio(ctx, MinioConfig{
			Endpoint:  cfg.Blob.Endpoint,
			AccessKey: cfg.Blob.AccessKey,
			SecretKey: cfg.Blob.SecretKey,
			Bucket:    cfg.Blob.Bucket,
			UseSSL:    cfg.Blob.UseSSL,
			PublicURL: cfg.Blob.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverS3:
		s, err := NewS3(ctx, S3Config{
			Bucket:          cfg.Blob.S3.Bucket,
			Region:          cfg.Blob.S3.Region,
			Endpoint:        cfg.Blob.S3.Endpoint,
			AccessKeyID:     cfg.Blob.AccessKey,
			SecretAccessKey: cfg.Blob.SecretKey,
			PathStyle:       cfg.Blob.S3.PathStyle,
			PublicURL:       cfg.Blob.S3.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return NewMemory(localBaseURL), nil
	}
}

// ScreenshotKey builds a collision-free key for a publication screenshot,
// keeping the original extension.
func ScreenshotKey(partnerID, publicationID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("partners", partnerID, "publications", publicationID, uuid.NewString()+ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
