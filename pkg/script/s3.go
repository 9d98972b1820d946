package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Source fetches scripts stored in Amazon S3.
type S3Source struct {
	client *s3.Client
}

// NewS3Source creates an S3 source using the AWS SDK default
// credentials chain (env vars, config files, IAM roles).
func NewS3Source(ctx context.Context) (*S3Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Source{client: s3.NewFromConfig(cfg)}, nil
}

// NewS3SourceWithClient creates an S3 source with a custom client,
// useful for testing and custom configurations.
func NewS3SourceWithClient(client *s3.Client) *S3Source {
	return &S3Source{client: client}
}

// parseS3URI parses s3://bucket/key/path into bucket and key.
func parseS3URI(uri string) (bucket, key string, err error) {
	scheme, path, err := ParseURI(uri)
	if err != nil {
		return "", "", err
	}

	if scheme != "s3" {
		return "", "", fmt.Errorf("S3 source only supports s3:// URIs, got %s://", scheme)
	}

	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 1 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid S3 URI: missing bucket name")
	}

	bucket = parts[0]
	if len(parts) > 1 {
		key = parts[1]
	}
	if key == "" {
		return "", "", fmt.Errorf("invalid S3 URI: missing object key")
	}
	return bucket, key, nil
}

// Fetch downloads a script object from S3.
func (s *S3Source) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	return result.Body, nil
}

// Exists checks whether a script object is present in S3.
func (s *S3Source) Exists(ctx context.Context, uri string) (bool, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return false, nil
			}
			if httpResp, ok := apiErr.(interface{ HTTPStatusCode() int }); ok {
				if httpResp.HTTPStatusCode() == http.StatusNotFound {
					return false, nil
				}
			}
		}

		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return false, nil
		}

		return false, fmt.Errorf("failed to check S3 object existence: %w", err)
	}
	return true, nil
}
