package storage

import (
	"Hostel-Food-Ordering/internal/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2/log"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/webp"}

	ErrStorageNotConfigured = errors.New("object storage not configured")
	ErrFileTypeNotAllowed   = errors.New("file type not allowed")
)

type (
	AwsS3 interface {
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error)
		UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" || region == "" {
		log.Warn("AWS_S3_BUCKET or AWS_S3_REGION not set, image uploads are disabled")
		return &awsS3{}
	}

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Errorf("unable to load AWS config: %v", err)
		return &awsS3{}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (a *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	return a.put(func(ext string) string {
		return path.Join(folder, fileName+ext)
	}, file, allowedTypes)
}

func (a *awsS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	base := strings.TrimSuffix(objectKey, path.Ext(objectKey))
	newKey, err := a.put(func(ext string) string {
		return base + ext
	}, file, allowedTypes)
	if err != nil {
		return "", err
	}
	if newKey != objectKey {
		_ = a.DeleteFile(objectKey)
	}
	return newKey, nil
}

func (a *awsS3) put(keyFor func(ext string) string, file *multipart.FileHeader, allowedTypes []string) (string, error) {
	if a.client == nil {
		return "", ErrStorageNotConfigured
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}
	if len(allowedTypes) > 0 && !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	key := keyFor(mtype.Extension())
	_, err = a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(mtype.String()),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	if a.client == nil {
		return ErrStorageNotConfigured
	}
	_, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	if a.bucket == "" || !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
