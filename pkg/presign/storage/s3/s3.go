// Package s3 implements the presign.Signer interface against S3 and
// S3-compatible services.
package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/objstore-io/presigned-access/pkg/presign"
)

// Config options for the S3 signer
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
}

// Signer is an S3-compatible implementation of the presign.Signer interface
type Signer struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
}

// New creates a new S3 signer
func New(config Config) (presign.Signer, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	client, err := NewClient(config)
	if err != nil {
		return nil, err
	}

	return &Signer{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        config.Bucket,
	}, nil
}

// NewClient builds an S3 client from the config. Exposed so operational
// tooling can share the client setup (for example a direct canary upload).
func NewClient(config Config) (*s3.Client, error) {
	region := config.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	return s3.NewFromConfig(awsCfg, s3Options...), nil
}

// Head reports whether the object exists
func (s *Signer) Head(ctx context.Context, objectKey string) error {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})

	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return presign.ErrObjectNotFound
		}
		// HeadObject failures carry no response body; some S3-compatible
		// services surface the 404 only as a bare NotFound error code.
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return presign.ErrObjectNotFound
		}
		return fmt.Errorf("failed to head object: %w", err)
	}

	return nil
}

// PresignGet returns a presigned URL for downloading the object
func (s *Signer) PresignGet(ctx context.Context, objectKey, responseContentDisposition string, ttl time.Duration) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}
	if responseContentDisposition != "" {
		input.ResponseContentDisposition = aws.String(responseContentDisposition)
	}

	result, err := s.presignClient.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return result.URL, nil
}

// PresignPost returns a presigned POST authorization over the given form
// fields and policy conditions
func (s *Signer) PresignPost(ctx context.Context, objectKey string, fields map[string]string, conditions []presign.Condition, ttl time.Duration) (*presign.PostAuthorization, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}

	result, err := s.presignClient.PresignPostObject(ctx, input, func(opts *s3.PresignPostOptions) {
		opts.Expires = ttl
		for _, c := range conditions {
			opts.Conditions = append(opts.Conditions, c.PolicyEntry())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned upload form: %w", err)
	}

	// The SDK returns only the signature fields; merge in the constrained
	// fields so the client submits a form matching the policy. Signature
	// fields win on collision.
	merged := make(map[string]string, len(result.Values)+len(fields))
	for k, v := range fields {
		merged[k] = v
	}
	for k, v := range result.Values {
		merged[k] = v
	}

	return &presign.PostAuthorization{
		URL:    result.URL,
		Fields: merged,
	}, nil
}
