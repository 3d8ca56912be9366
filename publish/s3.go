package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Publisher stores a named object.
type Publisher interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// objectPutter is the subset of the S3 client used here.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher writes objects into a single bucket
type S3Publisher struct {
	client objectPutter
	bucket string
}

// NewS3Publisher loads the default AWS configuration for region, optionally
// using a shared config profile.
func NewS3Publisher(ctx context.Context, bucket, region, profile string) (*S3Publisher, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3Publisher{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Put uploads body under key.
func (p *S3Publisher) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("putting object to S3 bucket %s: %w", p.bucket, err)
	}
	return nil
}

// Key joins prefix and the base name of file.
func Key(prefix, file string) string {
	name := filepath.Base(file)
	if prefix == "" {
		return name
	}
	return path.Join(strings.TrimSuffix(prefix, "/"), name)
}

// ContentType guesses the content type of a produced file.
func ContentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Files uploads each file to p under prefix.
func Files(ctx context.Context, p Publisher, prefix string, logger *zap.Logger, files ...string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f, err)
		}
		key := Key(prefix, f)
		if err := p.Put(ctx, key, data, ContentType(f)); err != nil {
			return err
		}
		logger.Info("published file", zap.String("file", f), zap.String("key", key), zap.Int("bytes", len(data)))
	}
	return nil
}
