package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink delivers a generated report and returns where it went.
type Sink interface {
	Deliver(ctx context.Context, r *Report) (string, error)
}

// FileSink writes the report to the local filesystem. An empty Path writes
// the report's own filename into the working directory.
type FileSink struct {
	Path string
}

// Deliver writes r to disk.
func (s FileSink) Deliver(_ context.Context, r *Report) (string, error) {
	p := s.Path
	if p == "" {
		p = r.Filename
	}
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(p, r.Content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return p, nil
}

// ObjectPutter is the slice of the S3 API the sink needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config points the sink at a bucket. Endpoint enables S3-compatible
// stores such as MinIO.
type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
	Prefix   string
}

// S3Sink uploads reports as objects.
type S3Sink struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Sink builds a sink using the default AWS credentials chain.
func NewS3Sink(ctx context.Context, cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3SinkWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3SinkWithClient builds a sink around an existing client.
func NewS3SinkWithClient(client ObjectPutter, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// Deliver uploads r under prefix/filename.
func (s *S3Sink) Deliver(ctx context.Context, r *Report) (string, error) {
	key := path.Join(s.prefix, r.Filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(r.Content),
		ContentType:        aws.String(r.ContentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", r.Filename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to s3://%s/%s: %w", s.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
