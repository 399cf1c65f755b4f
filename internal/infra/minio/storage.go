package minio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/heroxshorts/heroxshorts-studio/internal/infra/assets"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AssetStore hands out presigned links to the demo clips kept in a bucket.
type AssetStore struct {
	client *miniogo.Client
	bucket string
	ttl    time.Duration
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
	TTL       time.Duration
}

func NewAssetStore(cfg StorageConfig) (*AssetStore, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &AssetStore{client: client, bucket: cfg.Bucket, ttl: ttl}, nil
}

func (s *AssetStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, miniogo.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Resolve presigns a GET for the asset. Signing is local; the object is not checked.
func (s *AssetStore) Resolve(ctx context.Context, path string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, assets.ObjectKey(path), s.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", path, err)
	}
	return u.String(), nil
}
