// Package s3gateway implements server.ObjectStore on the AWS SDK v2 S3 client.
// It works against AWS and any S3-compatible endpoint.
package s3gateway

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/util/multibar"
)

// S3API is the subset of *s3.Client used by the gateway.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// Config selects the endpoint. Credentials come from the default AWS chain.
type Config struct {
	Endpoint  string
	Region    string
	PathStyle bool
	// MaxAttempts bounds the SDK's own retryer per request; 0 keeps the SDK default.
	MaxAttempts int
}

type S3Server struct {
	api S3API
	bar multibar.MultiBar
}

var _ server.ObjectStore = (*S3Server)(nil)

func NewS3Server(ctx context.Context, cfg Config, bar multibar.MultiBar) (*S3Server, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.MaxAttempts > 0 {
		opts = append(opts, config.WithRetryMaxAttempts(cfg.MaxAttempts))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, bar), nil
}

// NewWithClient wraps an existing client, typically a mock in tests.
func NewWithClient(api S3API, bar multibar.MultiBar) *S3Server {
	if bar == nil {
		bar = &multibar.DefaultBar{}
	}
	return &S3Server{
		api: api,
		bar: bar,
	}
}
