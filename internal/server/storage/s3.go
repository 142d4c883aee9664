package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/avilov/fieldsync/internal/server/config"
)

// Seams for testing the AWS client construction and calls.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Storage stores payloads in an S3-compatible bucket (MinIO in the
// default deployment).
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage builds the S3 client from config the same way every other
// component builds its collaborators: once, at process scope.
func NewS3Storage(config *sc.Config) (*S3Storage, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			config.S3RootUser,     // MINIO_ROOT_USER
			config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Storage{client: client, bucket: config.S3Bucket}, nil
}

func (s *S3Storage) Put(ctx context.Context, key string, payload []byte) error {
	_, err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(payload),
	})
	return err
}
