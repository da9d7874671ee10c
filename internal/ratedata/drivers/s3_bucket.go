package drivers

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3BucketSource reads rate data files from an S3-compatible bucket.
type S3BucketSource struct {
	Client *s3.Client
	Bucket string
}

func NewS3BucketSource(client *s3.Client, bucket string) *S3BucketSource {
	return &S3BucketSource{Client: client, Bucket: bucket}
}

func (s *S3BucketSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get rate file %s from S3: %w", name, err)
	}
	return resp.Body, nil
}
