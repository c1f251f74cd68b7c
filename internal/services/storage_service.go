// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/letmemugyou/backend/internal/config"
)

// Logo uploads are constrained before any processing is attempted.
var allowedLogoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
}

// StorageService keeps logo artifacts on local disk. When AWS credentials
// are configured, saved artifacts are also mirrored to S3 best-effort.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	svc := &StorageService{config: cfg}

	if cfg.AWS.AccessKeyID != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWS.Region),
			Credentials: credentials.NewStaticCredentials(
				cfg.AWS.AccessKeyID,
				cfg.AWS.SecretAccessKey,
				"",
			),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		svc.s3Client = s3.New(sess)
	}

	return svc, nil
}

// ValidateUpload enforces the extension allow-list and size cap before any
// bytes are written.
func (s *StorageService) ValidateUpload(header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedLogoExtensions[ext] {
		return "", fmt.Errorf("%w: use PNG, JPG, or SVG", ErrFileTypeNotAllowed)
	}

	if header.Size > s.config.Upload.MaxSizeBytes {
		return "", fmt.Errorf("%w: maximum %dMB", ErrFileTooLarge,
			s.config.Upload.MaxSizeBytes/(1024*1024))
	}

	return ext, nil
}

// SaveUpload writes the upload under the given filename and returns its
// absolute path.
func (s *StorageService) SaveUpload(file multipart.File, filename string) (string, error) {
	path := s.PathFor(filename)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return path, nil
}

func (s *StorageService) PathFor(filename string) string {
	return filepath.Join(s.config.Upload.Dir, filename)
}

func (s *StorageService) URLFor(filename string) string {
	return strings.TrimSuffix(s.config.Upload.PublicBaseURL, "/") + "/" + filename
}

func (s *StorageService) Remove(filename string) {
	if err := os.Remove(s.PathFor(filename)); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("filename", filename).Warn("Failed to remove file")
	}
}

// MirrorToS3 uploads a stored artifact to the configured bucket. Failures
// are logged, not surfaced: local disk remains the source of truth.
func (s *StorageService) MirrorToS3(filename, contentType string) {
	if s.s3Client == nil {
		return
	}

	data, err := os.ReadFile(s.PathFor(filename))
	if err != nil {
		logrus.WithError(err).WithField("filename", filename).Warn("S3 mirror: read failed")
		return
	}

	key := "logos/" + filename
	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("S3 mirror: upload failed")
	}
}
