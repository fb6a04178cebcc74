package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/tablehost/sop-backend/config"
	"github.com/tablehost/sop-backend/pkg/logger"
)

var (
	ErrInvalidFileType = errors.New("file type not allowed")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
)

const (
	presignExpiry = 15 * time.Minute
	maxFileSize   = 10 << 20 // 10 MiB
)

// Media attached to SOP steps: photos of plated dishes, station setup
// diagrams, and printable PDF checklists.
var allowedContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// PresignedUpload is handed to the client, which PUTs the file directly to S3.
type PresignedUpload struct {
	UploadURL string    `json:"upload_url"`
	FileURL   string    `json:"file_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Uploader interface {
	PresignUpload(ctx context.Context, restaurantID uint, filename, contentType string, size int64) (*PresignedUpload, error)
}

type s3Uploader struct {
	presigner *s3.PresignClient
	cfg       config.S3Config
}

func NewS3Uploader(ctx context.Context, cfg config.S3Config) (Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &s3Uploader{
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
	}, nil
}

// PresignUpload validates the upload metadata and returns a time-limited PUT
// URL. Nothing touches the backend on the actual upload path.
func (u *s3Uploader) PresignUpload(ctx context.Context, restaurantID uint, filename, contentType string, size int64) (*PresignedUpload, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, ErrInvalidFileType
	}
	if size <= 0 || size > maxFileSize {
		return nil, ErrFileTooLarge
	}

	if orig := strings.ToLower(filepath.Ext(filename)); orig != "" {
		ext = orig
	}
	key := fmt.Sprintf("uploads/%d/%s/%s%s",
		restaurantID,
		time.Now().UTC().Format("2006/01/02"),
		uuid.New().String(),
		ext,
	)

	request, err := u.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &u.cfg.Bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		logger.Error("Failed to presign S3 upload", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
	if u.cfg.BaseURL != "" {
		fileURL = strings.TrimSuffix(u.cfg.BaseURL, "/") + "/" + key
	}

	logger.Info("Presigned upload issued", map[string]interface{}{
		"key":          key,
		"content_type": contentType,
	})
	return &PresignedUpload{
		UploadURL: request.URL,
		FileURL:   fileURL,
		Key:       key,
		ExpiresAt: time.Now().Add(presignExpiry),
	}, nil
}
