package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds object store connection settings.
type Config struct {
	Endpoint   string
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	PublicHost string // optional host rewrite for presigned URLs handed to browsers
	PresignTTL time.Duration
}

// MinioStore implements ObjectStore against an S3-compatible backend.
type MinioStore struct {
	client     *minio.Client
	bucket     string
	publicHost string
	presignTTL time.Duration
}

// NewMinio creates a MinioStore from config.
func NewMinio(cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	presignTTL := cfg.PresignTTL
	if presignTTL <= 0 {
		presignTTL = time.Hour
	}

	return &MinioStore{
		client:     client,
		bucket:     cfg.Bucket,
		publicHost: cfg.PublicHost,
		presignTTL: presignTTL,
	}, nil
}

// Put uploads an object.
func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("storage: put failed key=%s: %v", key, err)
		return err
	}
	return nil
}

// Delete removes an object. A key that is already gone counts as deleted.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		log.Printf("storage: delete failed key=%s: %v", key, err)
		return err
	}
	return nil
}

// Presign generates a time-limited retrieval URL, rewritten to the public
// host when the internal endpoint is not reachable from browsers.
func (s *MinioStore) Presign(ctx context.Context, key string) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.presignTTL, url.Values{})
	if err != nil {
		log.Printf("storage: presign failed key=%s: %v", key, err)
		return "", err
	}
	if s.publicHost != "" {
		signed.Host = s.publicHost
	}
	return signed.String(), nil
}
