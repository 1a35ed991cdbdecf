// Package storage holds the object-store adapter for uploaded media.
// Chat messages reference uploads by URL only; the realtime subsystem
// never touches this package.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MediaStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
}

func NewMediaStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MediaStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	slog.Info("MinIO connection established", "endpoint", endpoint, "bucket", bucket)
	return &MediaStore{client: client, bucket: bucket, endpoint: endpoint}, nil
}

// Upload stores the file under a random object name, keeping the
// original extension, and returns the public URL
func (m *MediaStore) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	objectName := fmt.Sprintf("uploads/%s%s", uuid.New().String(), path.Ext(file.Filename))
	_, err = m.client.PutObject(ctx, m.bucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("http://%s/%s/%s", m.endpoint, m.bucket, objectName), nil
}
