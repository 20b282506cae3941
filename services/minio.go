package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	appcontext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MinIOService holds the files behind downloadable resources.
type MinIOService struct {
	appcontext.DefaultService
	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
	urlExpiry  time.Duration
}

const MINIO_SVC = "minio_svc"

func (svc MinIOService) Id() string {
	return MINIO_SVC
}

// NewMinIOService reads the MINIO_* environment and connects. It is used
// outside the service container, by the seeder.
func NewMinIOService() (*MinIOService, error) {
	svc := &MinIOService{}
	svc.loadConfig()
	if err := svc.Start(); err != nil {
		return nil, err
	}
	return svc, nil
}

func (svc *MinIOService) Configure(ctx *appcontext.Context) error {
	svc.loadConfig()
	return svc.DefaultService.Configure(ctx)
}

func (svc *MinIOService) loadConfig() {
	svc.endpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	svc.accessKey = getEnv("MINIO_ACCESS_KEY", "admin")
	svc.secretKey = getEnv("MINIO_SECRET_KEY", "password123")
	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"
	svc.bucketName = getEnv("MINIO_BUCKET_NAME", "epsilon-resources")

	svc.urlExpiry = 15 * time.Minute
	if v := os.Getenv("DOWNLOAD_URL_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			svc.urlExpiry = d
		}
	}
}

func (svc *MinIOService) Start() error {
	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.WithFields(log.Fields{
		"endpoint": svc.endpoint,
		"bucket":   svc.bucketName,
	}).Info("MinIO service started")
	return nil
}

func (svc *MinIOService) ensureBucket() error {
	ctx := context.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.WithField("bucket", svc.bucketName).Info("Created MinIO bucket")
	}

	return nil
}

func (svc *MinIOService) UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (*minio.UploadInfo, error) {
	uploadInfo, err := svc.client.PutObject(ctx, svc.bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to MinIO: %v", err)
	}

	return &uploadInfo, nil
}

// PresignedDownloadURL returns a time limited link that downloads the object
// under filename.
func (svc *MinIOService) PresignedDownloadURL(ctx context.Context, objectName, filename string) (string, time.Duration, error) {
	params := url.Values{}
	if filename != "" {
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}

	presignedURL, err := svc.client.PresignedGetObject(ctx, svc.bucketName, objectName, svc.urlExpiry, params)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate presigned URL: %v", err)
	}

	return presignedURL.String(), svc.urlExpiry, nil
}
