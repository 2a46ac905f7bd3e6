package minio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"invoicing-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient wraps the MinIO client for receipt image storage.
type MinioClient struct {
	client *minio.Client
	config config.MinioConfig
}

// Storage defines the buckets the invoicing service uses.
var Storage = struct {
	Receipts string
}{
	Receipts: "receipts",
}

var BucketNames = []string{
	Storage.Receipts,
}

// NewMinioClient initializes a MinIO client and ensures the required buckets exist.
func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	endpoint := strings.TrimPrefix(cfg.MinioURL, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		slog.Warn("invalid MinIO secure flag, defaulting to false", "error", err)
		isSecure = false
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := minioClient.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO server: %w", err)
	}

	mc := &MinioClient{
		client: minioClient,
		config: cfg,
	}

	if err := mc.ensureRequiredBuckets(); err != nil {
		return nil, fmt.Errorf("failed to ensure required buckets: %w", err)
	}

	slog.Info("connected to MinIO", "endpoint", cfg.MinioURL)
	return mc, nil
}

func (mc *MinioClient) ensureRequiredBuckets() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, bucket := range BucketNames {
		exists, err := mc.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			err := mc.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: mc.config.MinioLocation})
			if err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			slog.Info("bucket created", "bucket", bucket)
		}
	}
	return nil
}

// UploadFile stores an object and returns its public resource URL.
func (mc *MinioClient) UploadFile(ctx context.Context, bucket, objectName string, data []byte, contentType string) (string, error) {
	_, err := mc.client.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucket, objectName, err)
	}

	url := strings.TrimSuffix(mc.config.MinioResourceURL, "/") + "/" + bucket + "/" + objectName
	return url, nil
}

// GetFile retrieves an object for download.
func (mc *MinioClient) GetFile(ctx context.Context, bucket, objectName string) (*minio.Object, error) {
	obj, err := mc.client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", bucket, objectName, err)
	}
	return obj, nil
}
