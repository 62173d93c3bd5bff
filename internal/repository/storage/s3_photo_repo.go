package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

// S3PhotoRepository stores collateral photos in an S3-compatible bucket.
// A custom endpoint with path-style addressing lets it talk to MinIO in
// development while using real S3 in production.
type S3PhotoRepository struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// S3Options configures the photo bucket connection.
type S3Options struct {
	Endpoint  string // empty for real AWS S3
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewS3PhotoRepository(ctx context.Context, opts S3Options) (*S3PhotoRepository, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			scheme := "http"
			if opts.UseSSL {
				scheme = "https"
			}
			o.BaseEndpoint = aws.String(fmt.Sprintf("%s://%s", scheme, opts.Endpoint))
			o.UsePathStyle = true
		}
	})

	repo := &S3PhotoRepository{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    opts.Bucket,
	}

	if err := repo.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *S3PhotoRepository) ensureBucket(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to check bucket %s: %w", r.bucket, err)
	}

	_, err = r.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", r.bucket, err)
	}

	log.Info().Str("bucket", r.bucket).Msg("created photo bucket")
	return nil
}

func (r *S3PhotoRepository) Upload(ctx context.Context, objectPath string, data io.Reader, size int64, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(objectPath),
		Body:          data,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload photo %s: %w", objectPath, err)
	}
	return nil
}

func (r *S3PhotoRepository) Delete(ctx context.Context, objectPath string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(objectPath),
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo %s: %w", objectPath, err)
	}
	return nil
}

func (r *S3PhotoRepository) PresignURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(objectPath),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign photo url %s: %w", objectPath, err)
	}
	return req.URL, nil
}
