package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"pantry-planner/internal/config"
)

var AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type (
	AwsS3 interface {
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error)
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

func NewAwsS3(cfg config.Config) (AwsS3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(cfg.AWSS3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AWSS3Bucket,
		region: cfg.AWSS3Region,
	}, nil
}

func (s *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if len(allowedTypes) > 0 {
		allowed := false
		for _, t := range allowedTypes {
			if t == contentType {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("content type %s not allowed", contentType)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	objectKey := fmt.Sprintf("%s/%s-%s%s", folder, fileName, uuid.NewString()[:8], ext)

	_, err = s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &objectKey,
		Body:        src,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", objectKey, err)
	}

	return objectKey, nil
}

func (s *awsS3) DeleteFile(objectKey string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &objectKey,
	})
	return err
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
