package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/avilov/fieldsync/internal/server/config"
)

func testConfig() *sc.Config {
	c := &sc.Config{}
	c.LoadDefaults()
	return c
}

func TestNewS3Storage_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = orig }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("bad aws config")
	}

	_, err := NewS3Storage(testConfig())
	require.Error(t, err)
}

func TestS3Storage_Put_CallsPutObject(t *testing.T) {
	origLoad, origNew, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, putObject
	defer func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject = origLoad, origNew, origPut
	}()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}

	var gotBucket, gotKey string
	var gotBody []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		gotBody = b
		return &s3.PutObjectOutput{}, nil
	}

	s, err := NewS3Storage(testConfig())
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), "organizations/org-1/x.png", []byte("payload")))
	assert.Equal(t, "artifacts", gotBucket)
	assert.Equal(t, "organizations/org-1/x.png", gotKey)
	assert.Equal(t, []byte("payload"), gotBody)
}

func TestS3Storage_Put_PropagatesError(t *testing.T) {
	origLoad, origNew, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, putObject
	defer func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject = origLoad, origNew, origPut
	}()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("bucket gone")
	}

	s, err := NewS3Storage(testConfig())
	require.NoError(t, err)
	require.Error(t, s.Put(context.Background(), "k", []byte("x")))
}
