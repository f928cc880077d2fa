package presign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/objstore-io/presigned-access/pkg/presign/objectkey"
)

// Defaults applied when no option overrides them.
const (
	DefaultExpiry      = 300 * time.Second
	DefaultMaxFileSize = int64(10) << 20 // 10 MiB
)

// service implements the Service interface
type service struct {
	signer              Signer
	keys                objectkey.Generator
	expiry              time.Duration
	maxFileSize         int64
	allowedContentTypes []string
	kmsKeyID            string
	now                 func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithSigner sets the storage collaborator. Required.
func WithSigner(signer Signer) Option {
	return func(s *service) {
		s.signer = signer
	}
}

// WithKeyGenerator overrides the object key derivation strategy.
func WithKeyGenerator(g objectkey.Generator) Option {
	return func(s *service) {
		s.keys = g
	}
}

// WithExpiry sets the authorization lifetime (default 300s).
func WithExpiry(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.expiry = d
		}
	}
}

// WithMaxFileSize sets the upload size cap in bytes (default 10 MiB).
func WithMaxFileSize(n int64) Option {
	return func(s *service) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// WithAllowedContentTypes restricts upload content types. An empty list
// means unrestricted.
func WithAllowedContentTypes(types []string) Option {
	return func(s *service) {
		s.allowedContentTypes = types
	}
}

// WithKMSKey enables the server-side encryption requirement. An empty key ID
// disables it.
func WithKMSKey(keyID string) Option {
	return func(s *service) {
		s.kmsKeyID = keyID
	}
}

// WithClock overrides the authorization-time clock. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		keys:        objectkey.NewTimestampGenerator(),
		expiry:      DefaultExpiry,
		maxFileSize: DefaultMaxFileSize,
		now:         time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.signer == nil {
		return nil, fmt.Errorf("signer is required")
	}

	return s, nil
}

func (s *service) AuthorizeUpload(ctx context.Context, req UploadRequest) (*UploadAuthorization, error) {
	if req.Filename == "" {
		return nil, &ValidationError{Reason: "filename is required"}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}
	if len(s.allowedContentTypes) > 0 && !contains(s.allowedContentTypes, contentType) {
		return nil, &ValidationError{Reason: fmt.Sprintf("Content type %s not allowed", contentType)}
	}

	now := s.now().UTC()
	objectKey := s.keys.GenerateKey(req.Filename, now)
	uploadedAt := now.Format(time.RFC3339)

	fields := map[string]string{
		FieldContentType: contentType,
		FieldUploadedAt:  uploadedAt,
	}

	conditions := NewConditionSet(
		ExactMatchCondition{Field: FieldContentType, Value: contentType},
		ContentLengthRangeCondition{Min: 1, Max: s.maxFileSize},
		ExactMatchCondition{Field: FieldUploadedAt, Value: uploadedAt},
	)

	// Each metadata field must be mirrored by a condition or the provider
	// rejects the form at redemption time. Sorted for a stable policy.
	for _, k := range sortedKeys(req.Metadata) {
		field := MetadataFieldPrefix + k
		fields[field] = req.Metadata[k]
		conditions.Put(ExactMatchCondition{Field: field, Value: req.Metadata[k]})
	}
	if s.kmsKeyID != "" {
		fields[FieldSSEAlgorithm] = SSEAlgorithmKMS
		fields[FieldSSEKMSKeyID] = s.kmsKeyID
		conditions.Put(ExactMatchCondition{Field: FieldSSEAlgorithm, Value: SSEAlgorithmKMS})
		conditions.Put(ExactMatchCondition{Field: FieldSSEKMSKeyID, Value: s.kmsKeyID})
	}

	post, err := s.signer.PresignPost(ctx, objectKey, fields, conditions.Conditions(), s.expiry)
	if err != nil {
		slog.Error("Failed to presign upload", "object_key", objectKey, "error", err)
		return nil, &StorageError{Op: "presign_post", Key: objectKey, Err: err}
	}

	return &UploadAuthorization{
		UploadURL:     post.URL,
		Fields:        post.Fields,
		ObjectKey:     objectKey,
		ExpiresIn:     int(s.expiry / time.Second),
		MaxFileSizeMB: float64(s.maxFileSize) / float64(1<<20),
	}, nil
}

func (s *service) AuthorizeDownload(ctx context.Context, req DownloadRequest) (*DownloadAuthorization, error) {
	if req.ObjectKey == "" {
		return nil, &ValidationError{Reason: "object_key is required"}
	}

	if err := s.signer.Head(ctx, req.ObjectKey); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, ErrObjectNotFound
		}
		slog.Error("Failed to check object existence", "object_key", req.ObjectKey, "error", err)
		return nil, &StorageError{Op: "head", Key: req.ObjectKey, Err: err}
	}

	url, err := s.signer.PresignGet(ctx, req.ObjectKey, req.ResponseContentDisposition, s.expiry)
	if err != nil {
		slog.Error("Failed to presign download", "object_key", req.ObjectKey, "error", err)
		return nil, &StorageError{Op: "presign_get", Key: req.ObjectKey, Err: err}
	}

	return &DownloadAuthorization{
		DownloadURL: url,
		ObjectKey:   req.ObjectKey,
		ExpiresIn:   int(s.expiry / time.Second),
	}, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
