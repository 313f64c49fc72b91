package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/failure"
)

// fakeSigner подписывает ссылки детерминированно и может падать на заданных ключах
type fakeSigner struct {
	failKeys map[string]error
	calls    atomic.Int32
	expires  atomic.Int64
	checkErr error
}

func (f *fakeSigner) sign(method, bucket, key string, expires time.Duration) (string, error) {
	f.calls.Add(1)
	f.expires.Store(int64(expires))
	if err, ok := f.failKeys[key]; ok {
		return "", err
	}
	return fmt.Sprintf("https://%s.example.com/%s?method=%s&expires=%d", bucket, key, method, int(expires.Seconds())), nil
}

func (f *fakeSigner) PresignPut(_ context.Context, bucket string, item StorageItem, expires time.Duration) (string, error) {
	return f.sign("PUT", bucket, item.Key, expires)
}

func (f *fakeSigner) PresignGet(_ context.Context, bucket, key string, expires time.Duration) (string, error) {
	return f.sign("GET", bucket, key, expires)
}

func (f *fakeSigner) CheckBucket(_ context.Context, _ string) error {
	return f.checkErr
}

func testItems(n int) []StorageItem {
	items := make([]StorageItem, n)
	for i := range items {
		name := fmt.Sprintf("video%d.mp4", i)
		items[i] = StorageItem{
			Key:      "sources/u1/" + name,
			FileName: name,
			FileType: "video/mp4",
			Metadata: map[string]string{MetaUserID: "u1", MetaSourceFileName: name},
		}
	}
	return items
}

func newTestService(t *testing.T, signer URLSigner) *Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Bucket = "lumiere-bucket"
	svc, err := NewService(signer, cfg)
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	t.Run("MissingBucket", func(t *testing.T) {
		svc, err := NewService(&fakeSigner{}, DefaultConfig())
		assert.Nil(t, svc)
		require.True(t, failure.Is(err, failure.KindUnexpected))
		assert.Equal(t, "Error instantiating the StorageService: Bucket name is missing", failure.From(err).Reason)
	})

	t.Run("ZeroValuesFallBackToDefaults", func(t *testing.T) {
		svc, err := NewService(&fakeSigner{}, Config{Bucket: "b"})
		require.NoError(t, err)
		assert.Equal(t, 300*time.Second, svc.defaultExpiry)
		assert.Equal(t, "b", svc.Bucket())
	})
}

func TestGetBatchUploadUrls(t *testing.T) {
	signer := &fakeSigner{}
	svc := newTestService(t, signer)
	items := testItems(5)

	result, err := svc.GetBatchUploadUrls(context.Background(), items, 0)
	require.NoError(t, err)
	require.Len(t, result, len(items))

	for i, item := range items {
		assert.Equal(t, item.Key, result[i].Key)
		assert.Equal(t, item.FileName, result[i].FileName)
		assert.Equal(t, item.Metadata, result[i].Metadata)
		assert.Contains(t, result[i].PresignedURL, "method=PUT")
		assert.Contains(t, result[i].PresignedURL, item.Key)
	}
	assert.Equal(t, int64(300*time.Second), signer.expires.Load())
}

func TestGetBatchDownloadUrls(t *testing.T) {
	signer := &fakeSigner{}
	svc := newTestService(t, signer)

	result, err := svc.GetBatchDownloadUrls(context.Background(), testItems(3), time.Minute)
	require.NoError(t, err)
	require.Len(t, result, 3)

	for _, r := range result {
		assert.Nil(t, r.Metadata)
		assert.Contains(t, r.PresignedURL, "method=GET")
	}
	assert.Equal(t, int64(time.Minute), signer.expires.Load())
}

func TestBatchFirstFailureWins(t *testing.T) {
	boom := errors.New("AccessDenied")
	items := testItems(4)
	signer := &fakeSigner{failKeys: map[string]error{items[2].Key: boom}}
	svc := newTestService(t, signer)

	result, err := svc.GetBatchUploadUrls(context.Background(), items, 0)
	assert.Nil(t, result)
	require.True(t, failure.Is(err, failure.KindServiceProvider))
	assert.Equal(t, "AccessDenied", failure.From(err).Reason)
	assert.ErrorIs(t, err, boom)

	// все ветви отрабатывают до конца
	assert.Equal(t, int32(len(items)), signer.calls.Load())
}

func TestEmptyBatch(t *testing.T) {
	svc := newTestService(t, &fakeSigner{})
	result, err := svc.GetBatchDownloadUrls(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestPing(t *testing.T) {
	svc := newTestService(t, &fakeSigner{})
	assert.NoError(t, svc.Ping(context.Background()))

	svc = newTestService(t, &fakeSigner{checkErr: errors.New("NotFound")})
	err := svc.Ping(context.Background())
	assert.True(t, failure.Is(err, failure.KindServiceProvider))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"Default", func(c *Config) {}, ""},
		{"UnknownProvider", func(c *Config) { c.Provider = "gcs" }, "unknown storage provider"},
		{"MinioWithoutEndpoint", func(c *Config) { c.Provider = ProviderMinio }, "endpoint cannot be empty"},
		{"MinioWithoutKeys", func(c *Config) {
			c.Provider = ProviderMinio
			c.Endpoint = "localhost:9000"
		}, "access_key and secret_key"},
		{"ZeroExpiry", func(c *Config) { c.DefaultExpiry = 0 }, "default_expiry"},
		{"EmptyRegion", func(c *Config) { c.Region = "" }, "region"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}
}
