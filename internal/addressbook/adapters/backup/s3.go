package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	svc "addressbook/internal/addressbook/ports/services"
	"addressbook/pkg/logger"
)

const (
	contentTypeSQL = "application/sql"

	msgUploading = "uploading backup to S3"

	errCtxLoadAWSConfig = "loading aws config"
	errCtxOpenBackup    = "opening backup file"
	errCtxPutObject     = "putting backup object"
)

var loadDefaultAWSConfig = config.LoadDefaultConfig

// PutObjectAPI - часть клиента S3, нужная для выгрузки.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options описывает S3-совместимое хранилище.
type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Client создает клиента S3. Заданный Endpoint включает path-style адресацию (MinIO).
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadAWSConfig, err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Uploader реализует Uploader: файл кладется в bucket под ключом prefix+имя файла.
type S3Uploader struct {
	client PutObjectAPI
	bucket string
	prefix string
}

var _ svc.Uploader = (*S3Uploader)(nil)

// NewS3Uploader создает загрузчик резервных копий.
func NewS3Uploader(client PutObjectAPI, bucket, prefix string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix}
}

// Upload выгружает файл и возвращает ключ объекта.
func (u *S3Uploader) Upload(ctx context.Context, path string) (string, error) {
	key := u.prefix + filepath.Base(path)
	logger.Log(ctx).Info(ctx, msgUploading, zap.String("bucket", u.bucket), zap.String("key", key))

	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxOpenBackup, err)
	}
	defer f.Close()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentTypeSQL),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxPutObject, err)
	}

	return key, nil
}
