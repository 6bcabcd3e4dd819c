package staging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds the settings of the S3-compatible staging backend.
type S3Config struct {
	User         string
	Password     string
	Region       string
	Bucket       string
	BaseEndpoint string
}

// S3Store implements Store on an S3-compatible backend. One client is
// constructed per process and reused for every request of the run.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds the S3 client from static credentials and an
// optional endpoint override (MinIO and friends).
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.User,
			cfg.Password,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("staging: aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// key converts a staging path ("/cardData.csv") to an object key.
func (s *S3Store) key(path string) string {
	return strings.TrimPrefix(path, "/")
}

// Write stores data under path, overwriting any previous object.
func (s *S3Store) Write(ctx context.Context, path string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("staging: write %s: %w", path, err)
	}
	return nil
}

// Read returns the object at path, or ErrNotFound.
func (s *S3Store) Read(ctx context.Context, path string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("staging: read %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("staging: read %s: %w", path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("staging: read %s: %w", path, err)
	}
	return data, nil
}

// List enumerates objects under prefix.
func (s *S3Store) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var infos []ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.key(prefix)),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("staging: list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			info := ObjectInfo{Path: "/" + aws.ToString(obj.Key)}
			if obj.LastModified != nil {
				info.Modified = *obj.LastModified
			}
			infos = append(infos, info)
		}
	}
	return infos, nil
}
