// Package media stores product and collection images in object storage.
package media

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AllowedContentTypes is the whitelist of image types accepted for upload
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

const (
	DefaultMaxFileSize int64 = 5 << 20
	DefaultMaxFiles          = 10
	maxParallelUploads       = 4
)

// ObjectStorage is implemented by the infrastructure layer (S3 or a local stub)
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	PublicURL(storageKey string) string
}

// TargetType selects the key layout for an upload
type TargetType string

const (
	TargetProduct    TargetType = "product"
	TargetCollection TargetType = "collection"
	TargetMisc       TargetType = "misc"
)

// UploadTarget says what the uploaded images belong to
type UploadTarget struct {
	Type  TargetType `form:"type"`
	Name  string     `form:"name"`
	Color string     `form:"color"`
}

// FileInput is one file read from a multipart request
type FileInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadedFile describes a stored object
type UploadedFile struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	FileName    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// UploadServiceConfig holds the upload limits
type UploadServiceConfig struct {
	MaxFileSize int64
	MaxFiles    int
}

// UploadService validates images and writes them to object storage
type UploadService struct {
	storage ObjectStorage
	config  UploadServiceConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewUploadService creates a new UploadService
func NewUploadService(storage ObjectStorage, config UploadServiceConfig, logger *zap.Logger) *UploadService {
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = DefaultMaxFileSize
	}
	if config.MaxFiles <= 0 {
		config.MaxFiles = DefaultMaxFiles
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{
		storage: storage,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

// UploadSingle stores one image
func (s *UploadService) UploadSingle(ctx context.Context, target UploadTarget, file FileInput) (*UploadedFile, error) {
	if err := s.validate(file); err != nil {
		return nil, err
	}
	uploaded, err := s.put(ctx, target, file, s.now().UnixMilli())
	if err != nil {
		return nil, err
	}
	return uploaded, nil
}

// UploadMultiple stores up to MaxFiles images. Every file is validated before any is written.
func (s *UploadService) UploadMultiple(ctx context.Context, target UploadTarget, files []FileInput) ([]UploadedFile, error) {
	if len(files) == 0 {
		return nil, shared.NewDomainError("NO_FILES", "No files uploaded")
	}
	if len(files) > s.config.MaxFiles {
		return nil, shared.NewDomainError("TOO_MANY_FILES",
			fmt.Sprintf("At most %d files can be uploaded at once", s.config.MaxFiles))
	}
	for _, f := range files {
		if err := s.validate(f); err != nil {
			return nil, err
		}
	}

	stamp := s.now().UnixMilli()
	results := make([]UploadedFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for i, f := range files {
		g.Go(func() error {
			// distinct stamps keep same-named files in one batch from overwriting each other
			uploaded, err := s.put(gctx, target, f, stamp+int64(i))
			if err != nil {
				return err
			}
			results[i] = *uploaded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.rollback(results)
		return nil, err
	}
	return results, nil
}

// Delete removes a stored object by key
func (s *UploadService) Delete(ctx context.Context, key string) error {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return shared.NewDomainError("INVALID_KEY", "Invalid storage key")
	}
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check object: %w", err)
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Image not found")
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	s.logger.Info("image deleted", zap.String("key", key))
	return nil
}

func (s *UploadService) put(ctx context.Context, target UploadTarget, file FileInput, stamp int64) (*UploadedFile, error) {
	contentType := detectContentType(file)
	key := StorageKey(target, strconv.FormatInt(stamp, 10)+"-"+sanitizeFileName(file.FileName))
	if err := s.storage.Upload(ctx, key, file.Data, contentType); err != nil {
		s.logger.Error("image upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to upload %s: %w", file.FileName, err)
	}
	s.logger.Info("image uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(file.Data)))
	return &UploadedFile{
		URL:         s.storage.PublicURL(key),
		Key:         key,
		FileName:    file.FileName,
		ContentType: contentType,
		Size:        len(file.Data),
	}, nil
}

// rollback removes the objects written before a batch failed
func (s *UploadService) rollback(results []UploadedFile) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range results {
		if r.Key == "" {
			continue
		}
		if err := s.storage.DeleteObject(ctx, r.Key); err != nil {
			s.logger.Warn("failed to remove partial upload", zap.String("key", r.Key), zap.Error(err))
		}
	}
}

func (s *UploadService) validate(file FileInput) error {
	if len(file.Data) == 0 {
		return shared.NewDomainError("EMPTY_FILE", "File is empty")
	}
	if int64(len(file.Data)) > s.config.MaxFileSize {
		return shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("%s exceeds the %d MB limit", file.FileName, s.config.MaxFileSize>>20))
	}
	if !AllowedContentTypes[detectContentType(file)] {
		return shared.NewDomainError("INVALID_FILE_TYPE", "Only JPEG, PNG, WebP and GIF images are allowed")
	}
	return nil
}

// detectContentType trusts the file bytes over the declared header
func detectContentType(file FileInput) string {
	detected := mimetype.Detect(file.Data).String()
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	return strings.ToLower(detected)
}

var unsafeSegment = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeSegment makes a user value safe for one path segment
func sanitizeSegment(v string) string {
	v = unsafeSegment.ReplaceAllString(strings.TrimSpace(v), "-")
	v = strings.Trim(v, "-.")
	if v == "" {
		return "unnamed"
	}
	return v
}

func sanitizeFileName(name string) string {
	return sanitizeSegment(path.Base(strings.ReplaceAll(name, "\\", "/")))
}

// StorageKey builds products/{name}/{color}/{file}, collections/{name}/{file} or misc/{file}
func StorageKey(target UploadTarget, fileName string) string {
	switch target.Type {
	case TargetProduct:
		return path.Join("products", sanitizeSegment(target.Name), sanitizeSegment(target.Color), fileName)
	case TargetCollection:
		return path.Join("collections", sanitizeSegment(target.Name), fileName)
	default:
		return path.Join("misc", fileName)
	}
}
