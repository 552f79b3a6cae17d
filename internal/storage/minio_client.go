package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"blogstarter/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Storage interface {
	UploadImage(ctx context.Context, postID, fileName, contentType string, file io.Reader, size int64) (objectName, url string, err error)
	DeleteImage(ctx context.Context, objectName string) error
	Ping(ctx context.Context) error
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

func NewMinIOClient(cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.BucketName)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.cfg.BucketName, err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.cfg.BucketName, minio.MakeBucketOptions{Region: m.cfg.Region})
	if err != nil {
		return fmt.Errorf("create bucket %s: %w", m.cfg.BucketName, err)
	}
	return nil
}

func (m *MinIOClient) Ping(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.BucketName)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.cfg.BucketName, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", m.cfg.BucketName)
	}
	return nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, postID, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	now := time.Now()
	objectName := ObjectName(postID, fileName, contentType, now)

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"post-id":           postID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("upload to minio: %w", err)
	}

	return objectName, ObjectURL(m.cfg, objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}

// ObjectName lays images out as posts/<post>/<year>/<month>/<uuid><ext>.
// The extension comes from the file name, else from the content type.
func ObjectName(postID, fileName, contentType string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	return fmt.Sprintf("posts/%s/%d/%02d/%s%s",
		postID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext)
}

func ObjectURL(cfg config.MinIO, objectName string) string {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.Endpoint, cfg.BucketName, objectName)
}
