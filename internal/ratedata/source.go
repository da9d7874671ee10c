package ratedata

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/opentariff/tariff/internal/config"
	"github.com/opentariff/tariff/internal/ratedata/drivers"
)

// Source defines where rate data files are read from.
type Source interface {
	// Open returns a reader for the named rate file.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewSourceFromConfig creates a rate data source based on the provided configuration
func NewSourceFromConfig(ctx context.Context, cfg config.RateSourceConfig) (Source, error) {
	switch cfg.Type {
	case "local":
		slog.Info("reading rate data from local directory", "dir", cfg.LocalBaseDir)
		return drivers.NewLocalDirSource(cfg.LocalBaseDir)
	case "s3":
		slog.Info("reading rate data from S3", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)

		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.S3Region),
		}

		if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
			creds := credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
			opts = append(opts, awsconfig.WithCredentialsProvider(creds))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			}
			o.UsePathStyle = true
		})

		return drivers.NewS3BucketSource(client, cfg.S3Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported rate source type: %s", cfg.Type)
	}
}
