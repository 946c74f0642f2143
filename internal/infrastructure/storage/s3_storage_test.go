package storage

import (
	"context"
	"os"
	"testing"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:       "shop-media",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(testStorageConfig(), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "shop-media", storage.GetBucket())
	})

	t.Run("default endpoint is localhost", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.Endpoint = ""
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/shop-media/a.png", storage.PublicURL("a.png"))
	})

	t.Run("scheme follows the SSL flag", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.Endpoint = "minio.internal:9000"
		cfg.UseSSL = true
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://minio.internal:9000/shop-media/a.png", storage.PublicURL("a.png"))

		cfg.UseSSL = false
		storage, err = NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "http://minio.internal:9000/shop-media/a.png", storage.PublicURL("a.png"))
	})
}

func TestS3ObjectStorage_PublicURL(t *testing.T) {
	t.Run("path style", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(testStorageConfig())
		require.NoError(t, err)
		assert.Equal(t,
			"http://localhost:9000/shop-media/products/trail-runner-tee/black/1.jpg",
			storage.PublicURL("products/trail-runner-tee/black/1.jpg"))
	})

	t.Run("virtual hosted style", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.Endpoint = "https://s3.ap-south-1.amazonaws.com"
		cfg.UsePathStyle = false
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://shop-media.s3.ap-south-1.amazonaws.com/collections/summer.png", storage.PublicURL("collections/summer.png"))
	})

	t.Run("public url wins", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.PublicURL = "https://cdn.example.com/"
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/misc/a.png", storage.PublicURL("misc/a.png"))
	})

	t.Run("segments are escaped", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(testStorageConfig())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/shop-media/misc/summer%20sale.png", storage.PublicURL("/misc/summer sale.png"))
	})
}

func TestS3ObjectStorage_RequiresKey(t *testing.T) {
	storage, err := NewS3ObjectStorage(testStorageConfig())
	require.NoError(t, err)
	ctx := context.Background()

	err = storage.Upload(ctx, "", []byte("x"), "text/plain")
	assert.ErrorIs(t, err, errKeyRequired)

	err = storage.DeleteObject(ctx, "")
	assert.ErrorIs(t, err, errKeyRequired)

	exists, err := storage.ObjectExists(ctx, "")
	assert.ErrorIs(t, err, errKeyRequired)
	assert.False(t, exists)
}

// Set S3_INTEGRATION_TEST=1 with MinIO or RustFS on localhost:9000 to run
func newIntegrationStorage(t *testing.T) *S3ObjectStorage {
	t.Helper()
	if os.Getenv("S3_INTEGRATION_TEST") == "" {
		t.Skip("S3_INTEGRATION_TEST not set")
	}

	storage, err := NewS3ObjectStorage(&config.StorageConfig{
		Bucket:       "shop-integration",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Endpoint:     "http://localhost:9000",
		Region:       "us-east-1",
		UsePathStyle: true,
	}, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	require.NoError(t, storage.EnsureBucket(context.Background()))
	require.NoError(t, storage.EnsureBucket(context.Background()))
	return storage
}

func TestIntegration_UploadExistsDelete(t *testing.T) {
	storage := newIntegrationStorage(t)
	ctx := context.Background()
	key := "integration/upload.txt"

	require.NoError(t, storage.Upload(ctx, key, []byte("hello"), "text/plain"))

	exists, err := storage.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, storage.DeleteObject(ctx, key))

	exists, err = storage.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}
