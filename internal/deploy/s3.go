package deploy

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the subset of the S3 client used by deploys.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Target uploads files to an S3-compatible bucket (AWS S3 or MinIO).
// Keys are prefix + relative path. Credentials come from the default
// AWS chain; SCHOLARSITE_S3_ENDPOINT selects a custom endpoint.
type S3Target struct {
	client s3API
	bucket string
	prefix string
}

// NewS3Target creates an S3 deploy target for the given bucket and key prefix.
func NewS3Target(ctx context.Context, bucket, prefix string) (*S3Target, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}

	region := os.Getenv("SCHOLARSITE_S3_REGION")
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	endpoint := os.Getenv("SCHOLARSITE_S3_ENDPOINT")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Target{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

func (t *S3Target) Put(ctx context.Context, rel string, data []byte) error {
	key := rel
	if t.prefix != "" {
		key = path.Join(t.prefix, rel)
	}
	ct := contentType(rel)

	_, err := t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &t.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &ct,
	})
	return err
}

func (t *S3Target) Description() string {
	if t.prefix == "" {
		return "s3://" + t.bucket
	}
	return "s3://" + t.bucket + "/" + t.prefix
}

func (t *S3Target) Close() error { return nil }
