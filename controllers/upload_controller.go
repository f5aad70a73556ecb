package controllers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/college-eventhub/api-go/config"
)

// MaxUploadSize caps uploaded files at 5MB.
const MaxUploadSize = 5 << 20

const (
	UploadKindEvent   = "events"
	UploadKindProfile = "profiles"
)

// UploadController stores uploaded images. Local disk under uploads/ is the
// default; when Cloudflare R2 is configured, files go to the bucket instead
// and the public bucket URL is returned.
type UploadController struct {
	R2Client *s3.Client
	R2Config *config.R2Config
	LocalDir string
}

func NewUploadController() *UploadController {
	r2Config := config.GetR2Config()

	uc := &UploadController{
		R2Config: r2Config,
		LocalDir: "uploads",
	}

	if r2Config.Enabled() {
		uc.R2Client = s3.New(s3.Options{
			BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
			Credentials: credentials.NewStaticCredentialsProvider(
				r2Config.AccessKeyID,
				r2Config.SecretAccessKey,
				"",
			),
			Region: r2Config.Region,
		})
	}

	for _, dir := range []string{UploadKindEvent, UploadKindProfile} {
		if err := os.MkdirAll(filepath.Join(uc.LocalDir, dir), 0o755); err != nil {
			log.WithError(err).WithField("dir", dir).Error("Failed to create upload directory")
		}
	}

	return uc
}

// SaveImage validates and stores a multipart image upload, returning the URL
// it will be served from.
func (uc *UploadController) SaveImage(c *gin.Context, file *multipart.FileHeader, kind string) (string, error) {
	if file.Size > MaxUploadSize {
		return "", fmt.Errorf("file exceeds the 5MB size limit")
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image files allowed")
	}

	name := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(kind, "s"), uuid.New().String(), filepath.Ext(file.Filename))
	key := fmt.Sprintf("%s/%s", kind, name)

	if uc.R2Client != nil {
		return uc.saveToR2(c, file, key, contentType)
	}

	dst := filepath.Join(uc.LocalDir, kind, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return "/uploads/" + key, nil
}

func (uc *UploadController) saveToR2(c *gin.Context, file *multipart.FileHeader, key, contentType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	defer src.Close()

	_, err = uc.R2Client.PutObject(c.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	return fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key), nil
}
