package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// MinioSigner подписывает ссылки через minio-go (локальная разработка, S3-совместимые хранилища)
type MinioSigner struct {
	client *minio.Client
}

// NewMinioSigner создает клиент MinIO. Endpoint может содержать схему.
func NewMinioSigner(cfg Config) (*MinioSigner, error) {
	host, secure, err := splitEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	bucketLookup := minio.BucketLookupAuto
	if cfg.UsePathStyle {
		bucketLookup = minio.BucketLookupPath
	}

	client, err := minio.New(host, &minio.Options{
		Creds:        miniocreds.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: bucketLookup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", cfg.Endpoint, err)
	}
	logger.Debug("Created MinIO client (endpoint: %s, secure: %v)", host, secure)

	return &MinioSigner{client: client}, nil
}

// PresignPut реализует URLSigner. Content-Type и метаданные входят в подпись.
func (m *MinioSigner) PresignPut(ctx context.Context, bucket string, item StorageItem, expires time.Duration) (string, error) {
	headers := make(http.Header)
	if item.FileType != "" {
		headers.Set("Content-Type", item.FileType)
	}
	for k, v := range item.Metadata {
		headers.Set("X-Amz-Meta-"+k, v)
	}

	u, err := m.client.PresignHeader(ctx, http.MethodPut, bucket, item.Key, expires, nil, headers)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// PresignGet реализует URLSigner
func (m *MinioSigner) PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, bucket, key, expires, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// CheckBucket проверяет существование бакета
func (m *MinioSigner) CheckBucket(ctx context.Context, bucket string) error {
	ok, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}
	return nil
}

// splitEndpoint отделяет схему: minio-go ожидает host[:port]
func splitEndpoint(endpoint string) (string, bool, error) {
	if endpoint == "" {
		return "", false, fmt.Errorf("endpoint cannot be empty")
	}
	if !strings.Contains(endpoint, "://") {
		return endpoint, false, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}
	return u.Host, u.Scheme == "https", nil
}

// NewSigner выбирает реализацию подписи по cfg.Provider
func NewSigner(ctx context.Context, cfg Config) (URLSigner, error) {
	switch cfg.Provider {
	case ProviderMinio:
		signer, err := NewMinioSigner(cfg)
		if err != nil {
			return nil, err
		}
		return signer, nil
	case ProviderS3, "":
		signer, err := NewS3SignerFromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return signer, nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %q", cfg.Provider)
	}
}
