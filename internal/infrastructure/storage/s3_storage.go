// Package storage provides object storage backends for uploaded images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Charan2012-gif/Shopping-App/internal/application/media"
	infraconfig "github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/telemetry"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var _ media.ObjectStorage = (*S3ObjectStorage)(nil)

var errKeyRequired = errors.New("storage key is required")

const (
	defaultEndpoint = "http://localhost:9000"
	defaultRegion   = "us-east-1"
)

// S3ObjectStorage talks to any S3-compatible backend: AWS S3, MinIO or RustFS.
type S3ObjectStorage struct {
	client    *s3.Client
	bucket    string
	endpoint  *url.URL
	pathStyle bool
	publicURL string
	logger    *zap.Logger
}

type S3ObjectStorageOption func(*S3ObjectStorage)

func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.logger = logger
	}
}

// NewS3ObjectStorage builds the client only; nothing is contacted until
// EnsureBucket or the first object call.
func NewS3ObjectStorage(cfg *infraconfig.StorageConfig, opts ...S3ObjectStorageOption) (*S3ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	for _, required := range []struct{ value, name string }{
		{cfg.Bucket, "bucket"},
		{cfg.AccessKey, "access key"},
		{cfg.SecretKey, "secret key"},
	} {
		if required.value == "" {
			return nil, fmt.Errorf("storage %s is required", required.name)
		}
	}

	endpoint := endpointURL(cfg.Endpoint, cfg.UseSSL)
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s := &S3ObjectStorage{
		client: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = cfg.UsePathStyle
			o.BaseEndpoint = aws.String(endpoint)
		}),
		bucket:    cfg.Bucket,
		endpoint:  parsed,
		pathStyle: cfg.UsePathStyle,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// endpointURL defaults the endpoint and gives a bare host:port the scheme
// the SSL flag asks for.
func endpointURL(endpoint string, useSSL bool) string {
	switch {
	case endpoint == "":
		return defaultEndpoint
	case strings.HasPrefix(endpoint, "http://"), strings.HasPrefix(endpoint, "https://"):
		return endpoint
	case useSSL:
		return "https://" + endpoint
	default:
		return "http://" + endpoint
	}
}

// EnsureBucket creates the bucket when it is missing. Run once at startup.
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) (err error) {
	ctx, span := s.startSpan(ctx, "ensure_bucket", "")
	defer telemetry.EndSpan(span, &err)

	_, err = s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("head bucket %s: %w", s.bucket, err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	var owned *types.BucketAlreadyOwnedByYou
	switch {
	case errors.As(err, &owned):
		// another replica created it first
		err = nil
	case err != nil:
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	default:
		s.logger.Info("Storage bucket created", zap.String("bucket", s.bucket))
	}
	return err
}

func (s *S3ObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) (err error) {
	if storageKey == "" {
		return errKeyRequired
	}
	ctx, span := s.startSpan(ctx, "upload", storageKey)
	defer telemetry.EndSpan(span, &err)
	telemetry.SetAttributes(span, telemetry.SpanAttrStorageBytes, len(data))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(storageKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", storageKey, err)
	}
	s.logger.Debug("Object uploaded", zap.String("key", storageKey), zap.Int("bytes", len(data)))
	return nil
}

func (s *S3ObjectStorage) DeleteObject(ctx context.Context, storageKey string) (err error) {
	if storageKey == "" {
		return errKeyRequired
	}
	ctx, span := s.startSpan(ctx, "delete", storageKey)
	defer telemetry.EndSpan(span, &err)

	if _, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", storageKey, err)
	}
	return nil
}

func (s *S3ObjectStorage) ObjectExists(ctx context.Context, storageKey string) (_ bool, err error) {
	if storageKey == "" {
		return false, errKeyRequired
	}
	ctx, span := s.startSpan(ctx, "head", storageKey)
	defer telemetry.EndSpan(span, &err)

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, fmt.Errorf("head object %s: %w", storageKey, err)
	}
}

// PublicURL is where clients fetch the object. A configured public URL,
// usually a CDN, takes precedence over the S3 endpoint.
func (s *S3ObjectStorage) PublicURL(storageKey string) string {
	key := escapeKey(storageKey)
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}

	base := *s.endpoint
	base.Path = strings.TrimRight(base.Path, "/")
	if !s.pathStyle {
		base.Host = s.bucket + "." + base.Host
		return base.String() + "/" + key
	}
	return base.String() + "/" + s.bucket + "/" + key
}

func (s *S3ObjectStorage) GetBucket() string {
	return s.bucket
}

func (s *S3ObjectStorage) startSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	opts := []telemetry.SpanOption{
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrStorageBucket, s.bucket),
	}
	if key != "" {
		opts = append(opts, telemetry.WithAttribute(telemetry.SpanAttrStorageKey, key))
	}
	return telemetry.StartServiceSpan(ctx, "storage", operation, opts...)
}

// isNotFound also matches backends that only put the code in the message.
func isNotFound(err error) bool {
	var (
		notFound     *types.NotFound
		noSuchKey    *types.NoSuchKey
		noSuchBucket *types.NoSuchBucket
	)
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) || errors.As(err, &noSuchBucket) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "NotFound") || strings.Contains(msg, "NoSuchKey")
}

func escapeKey(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
