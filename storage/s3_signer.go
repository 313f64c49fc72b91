package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
)

// PresignAPI - подмножество s3.PresignClient
type PresignAPI interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// BucketAPI - подмножество s3.Client для проверки бакета
type BucketAPI interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Signer подписывает ссылки через aws-sdk-go-v2
type S3Signer struct {
	presigner PresignAPI
	client    BucketAPI
}

// NewS3Signer создает подписчик поверх готовых клиентов
func NewS3Signer(client BucketAPI, presigner PresignAPI) *S3Signer {
	return &S3Signer{presigner: presigner, client: client}
}

// NewS3SignerFromConfig создает клиент S3 по конфигурации
func NewS3SignerFromConfig(ctx context.Context, cfg Config) (*S3Signer, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for storage: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	logger.Debug("Created S3 client (region: %s, endpoint: %q, path style: %v)", cfg.Region, cfg.Endpoint, cfg.UsePathStyle)

	return NewS3Signer(client, s3.NewPresignClient(client)), nil
}

// PresignPut реализует URLSigner
func (s *S3Signer) PresignPut(ctx context.Context, bucket string, item StorageItem, expires time.Duration) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(item.Key),
		Metadata: item.Metadata,
	}
	if item.FileType != "" {
		input.ContentType = aws.String(item.FileType)
	}

	req, err := s.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PresignGet реализует URLSigner
func (s *S3Signer) PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// CheckBucket выполняет легковесную проверку HeadBucket
func (s *S3Signer) CheckBucket(ctx context.Context, bucket string) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	return err
}
