package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"socialgram-api/config"
)

// FileStorage stores uploaded image bytes and hands back a relative
// reference. Callers persist the reference, never the bytes.
type FileStorage interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

// NewFileStorage picks the storage backend from configuration.
func NewFileStorage(cfg *config.Config) (FileStorage, error) {
	switch cfg.StorageDriver {
	case "minio":
		return NewMinioStorage(cfg)
	case "local":
		return NewLocalStorage(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// LocalStorage writes uploads to a directory served as static files.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (ls *LocalStorage) Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(ls.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return "/uploads/" + name, nil
}

// MinioStorage stores uploads in an S3-compatible bucket.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(cfg *config.Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStorage{client: client, bucket: cfg.MinioBucket}, nil
}

func (ms *MinioStorage) Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)

	_, err := ms.client.PutObject(ctx, ms.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return path.Join("/", ms.bucket, name), nil
}
