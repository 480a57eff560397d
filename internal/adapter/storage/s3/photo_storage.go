package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// PhotoStorage stores room photos in a MinIO/S3 bucket and hands back the
// public object URL.
type PhotoStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewPhotoStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *zap.Logger) (*PhotoStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucket, err, errBucketExists)
		}
		logger.Info("Photo bucket already exists", zap.String("bucket", bucket))
	} else {
		logger.Info("Photo bucket created", zap.String("bucket", bucket))
	}

	return &PhotoStorage{client: client, bucket: bucket, logger: logger}, nil
}

func (s *PhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("photos/%s%s", uuid.New().String(), ext)

	info, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("PhotoStorage.Upload: PutObject failed",
			zap.String("bucket", s.bucket), zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	s.logger.Info("Photo uploaded",
		zap.String("bucket", info.Bucket), zap.String("key", info.Key), zap.Int64("size", info.Size))

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey), nil
}
