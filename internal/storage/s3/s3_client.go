package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"khata/internal/config"
	"khata/internal/port"
)

type exportStore struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewExportStore creates an S3-backed ExportStore.
// A custom endpoint (MinIO, LocalStack) switches to path-style addressing.
func NewExportStore(cfg *config.S3Config) (port.ExportStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &exportStore{
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
	}, nil
}

func (c *exportStore) Put(ctx context.Context, obj port.ExportObject) (*port.StoredExport, error) {
	put := &s3.PutObjectInput{
		Bucket:      aws.String(obj.Bucket),
		Key:         aws.String(obj.Key),
		Body:        obj.Body,
		ContentType: aws.String(obj.ContentType),
	}
	if obj.Filename != "" {
		put.ContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", obj.Filename))
	}

	result, err := c.uploader.Upload(ctx, put)
	if err != nil {
		return nil, fmt.Errorf("s3 upload %s: %w", obj.Key, err)
	}

	out := &port.StoredExport{Location: result.Location}
	if result.ETag != nil {
		out.ETag = *result.ETag
	}
	return out, nil
}

func (c *exportStore) Remove(ctx context.Context, bucket, key string) error {
	if _, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (c *exportStore) DownloadURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return req.URL, nil
}
