// Package config builds the immutable service configuration applied at
// process start. Values are loaded once and passed by reference into the
// handlers; nothing reads ambient environment state afterwards.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/objstore-io/presigned-access/pkg/presign"
	s3signer "github.com/objstore-io/presigned-access/pkg/presign/storage/s3"
)

// Option applies configuration on top of library defaults.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of
// defaults, then validating the result.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		ExpirationTime: 300,
		MaxFileSizeMB:  10,
		Region:         "us-east-1",
		Port:           "8080",
	}
}

// Config holds the service configuration.
type Config struct {
	// Bucket is the target bucket. Required, no default.
	Bucket string

	// ExpirationTime is the authorization lifetime in seconds.
	ExpirationTime int

	// MaxFileSizeMB caps upload size, in MiB.
	MaxFileSizeMB int

	// AllowedContentTypes restricts upload content types; empty means
	// unrestricted.
	AllowedContentTypes []string

	// KMSKeyID enables the server-side encryption requirement when
	// non-empty.
	KMSKeyID string

	// S3 client plumbing.
	Region          string
	Endpoint        string // custom endpoint for S3-compatible services
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool

	// Port is used by cmd/server only.
	Port string
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("bucket name is required")
	}
	if c.ExpirationTime <= 0 {
		return errors.New("expiration time must be positive")
	}
	if c.MaxFileSizeMB <= 0 {
		return errors.New("max file size must be positive")
	}
	if c.Port == "" {
		return errors.New("port is required")
	}
	return nil
}

// Expiry returns the authorization lifetime as a duration.
func (c *Config) Expiry() time.Duration {
	return time.Duration(c.ExpirationTime) * time.Second
}

// MaxFileSizeBytes returns the upload size cap in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

// BuildService wires an S3 signer from the configuration and returns the
// authorization service.
func (c *Config) BuildService() (presign.Service, error) {
	signer, err := s3signer.New(s3signer.Config{
		Region:          c.Region,
		Bucket:          c.Bucket,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		Endpoint:        c.Endpoint,
		UsePathStyle:    c.UsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build S3 signer: %w", err)
	}
	return c.BuildServiceWithSigner(signer)
}

// BuildServiceWithSigner returns the authorization service backed by the
// given signer. Used by tests and the dev server with a fake signer.
func (c *Config) BuildServiceWithSigner(signer presign.Signer) (presign.Service, error) {
	return presign.New(
		presign.WithSigner(signer),
		presign.WithExpiry(c.Expiry()),
		presign.WithMaxFileSize(c.MaxFileSizeBytes()),
		presign.WithAllowedContentTypes(c.AllowedContentTypes),
		presign.WithKMSKey(c.KMSKeyID),
	)
}
