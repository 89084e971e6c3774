package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/greation/sermonkit/blob"
)

// Documents past this size go through the multipart manager.
const largeObjectMinSize = 10 * 1024 * 1024

// Config holds connection settings for an S3-compatible endpoint.
type Config struct {
	// HostEndpointUrl overrides the endpoint, e.g. "http://127.0.0.1:9000"
	// for minio. Empty uses the AWS default resolution.
	HostEndpointUrl string
	// Region, e.g. "us-east-1".
	Region string
	// Username and Password are static credentials for the endpoint.
	// Leave both empty to use the host's default AWS credential chain.
	Username string
	Password string
}

// Connect creates an S3 client for the configured endpoint.
// With no static credentials it falls back to the default AWS config chain.
func Connect(ctx context.Context, config Config) (*s3.Client, error) {
	if config.Username != "" {
		client := s3.NewFromConfig(aws.Config{Region: config.Region}, func(o *s3.Options) {
			if config.HostEndpointUrl != "" {
				o.BaseEndpoint = aws.String(config.HostEndpointUrl)
			}
			o.Credentials = credentials.NewStaticCredentialsProvider(config.Username, config.Password, "")
		})
		return client, nil
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 backend: load default AWS config: %w", err)
	}
	if config.Region != "" {
		sdkConfig.Region = config.Region
	}
	return s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if config.HostEndpointUrl != "" {
			o.BaseEndpoint = aws.String(config.HostEndpointUrl)
		}
	}), nil
}

// Backend stores each document as one object in an S3 bucket.
// S3 object replacement is atomic from the reader's perspective, which
// satisfies the blob contract directly.
type Backend struct {
	bucketName string
	s3Client   *s3.Client
}

var _ blob.Backend = (*Backend)(nil)

// NewBackend creates an S3 backend over an existing client and bucket.
func NewBackend(s3Client *s3.Client, bucketName string) (*Backend, error) {
	if s3Client == nil {
		return nil, fmt.Errorf("s3 backend: client is required")
	}
	if bucketName == "" {
		return nil, fmt.Errorf("s3 backend: bucket name is required")
	}
	return &Backend{
		bucketName: bucketName,
		s3Client:   s3Client,
	}, nil
}

// Fetch downloads the whole object stored under key.
func (b *Backend) Fetch(ctx context.Context, key string) ([]byte, error) {
	downloader := manager.NewDownloader(b.s3Client, func(d *manager.Downloader) {
		d.PartSize = largeObjectMinSize
	})
	buffer := manager.NewWriteAtBuffer([]byte{})
	_, err := downloader.Download(ctx, buffer, &s3.GetObjectInput{
		Bucket: aws.String(b.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, blob.ErrNotFound
		}
		return nil, fmt.Errorf("s3 backend: fetch %s: %w", key, err)
	}
	return buffer.Bytes(), nil
}

// Store replaces the object under key with data.
func (b *Backend) Store(ctx context.Context, key string, data []byte) error {
	if len(data) >= largeObjectMinSize {
		uploader := manager.NewUploader(b.s3Client, func(u *manager.Uploader) {
			u.PartSize = largeObjectMinSize
		})
		_, err := uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(b.bucketName),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		})
		if err != nil {
			return fmt.Errorf("s3 backend: upload %s: %w", key, err)
		}
		return nil
	}

	_, err := b.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("s3 backend: put %s: %w", key, err)
	}
	return nil
}
