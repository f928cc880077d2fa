package config

import (
	"encoding/json"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig is the raw environment shape read by cleanenv.
//
// ALLOWED_CONTENT_TYPES is a JSON array of strings (e.g.
// `["application/pdf","image/png"]`), matching the deployment contract, so
// it is read as a string and decoded separately.
type envConfig struct {
	BucketName          string `env:"BUCKET_NAME"`
	ExpirationTime      int    `env:"EXPIRATION_TIME" env-default:"300"`
	MaxFileSize         int    `env:"MAX_FILE_SIZE" env-default:"10"`
	AllowedContentTypes string `env:"ALLOWED_CONTENT_TYPES" env-default:"[]"`
	KMSKeyID            string `env:"KMS_KEY_ID" env-default:""`

	Region          string `env:"AWS_REGION" env-default:"us-east-1"`
	Endpoint        string `env:"S3_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`

	Port string `env:"PORT" env-default:"8080"`
}

// WithEnv loads configuration from environment variables.
func WithEnv() Option {
	return func(c *Config) error {
		var e envConfig
		if err := cleanenv.ReadEnv(&e); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		var allowed []string
		if e.AllowedContentTypes != "" {
			if err := json.Unmarshal([]byte(e.AllowedContentTypes), &allowed); err != nil {
				return fmt.Errorf("invalid ALLOWED_CONTENT_TYPES: %w", err)
			}
		}

		c.Bucket = e.BucketName
		c.ExpirationTime = e.ExpirationTime
		c.MaxFileSizeMB = e.MaxFileSize
		c.AllowedContentTypes = allowed
		c.KMSKeyID = e.KMSKeyID
		c.Region = e.Region
		c.Endpoint = e.Endpoint
		c.AccessKeyID = e.AccessKeyID
		c.SecretAccessKey = e.SecretAccessKey
		c.UsePathStyle = e.UsePathStyle
		c.Port = e.Port
		return nil
	}
}

// WithBucket overrides the bucket name.
func WithBucket(bucket string) Option {
	return func(c *Config) error {
		c.Bucket = bucket
		return nil
	}
}

// WithAllowedContentTypes overrides the content-type allow-list.
func WithAllowedContentTypes(types []string) Option {
	return func(c *Config) error {
		c.AllowedContentTypes = types
		return nil
	}
}

// WithKMSKey overrides the KMS key ID.
func WithKMSKey(keyID string) Option {
	return func(c *Config) error {
		c.KMSKeyID = keyID
		return nil
	}
}
