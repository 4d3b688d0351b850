package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ExportStorage archives generated PDF exports to S3-compatible storage.
type ExportStorage struct {
	client     *minio.Client
	bucketName string
	region     string
}

// NewExportStorage creates the S3 client for the export archive.
func NewExportStorage(endpoint, accessKey, secretKey, bucketName, region string, useSSL bool) (*ExportStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &ExportStorage{
		client:     client,
		bucketName: bucketName,
		region:     region,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *ExportStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{
			Region: s.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ArchivePDF stores one export under a dated, uuid-keyed object and returns
// the object key.
func (s *ExportStorage) ArchivePDF(ctx context.Context, kind string, userID int, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s/user-%d/%s.pdf",
		kind, time.Now().Format("2006-01-02"), userID, uuid.New().String())

	_, err := s.client.PutObject(ctx, s.bucketName, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to archive export: %w", err)
	}

	return key, nil
}
