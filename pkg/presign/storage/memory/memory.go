// Package memory implements an in-process presign.Signer for tests and
// local development. Minted URLs are fake but deterministic in shape, and
// the most recent presign arguments are recorded for inspection.
package memory

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/objstore-io/presigned-access/pkg/presign"
)

// PostRecord captures the arguments of the most recent PresignPost call.
type PostRecord struct {
	ObjectKey  string
	Fields     map[string]string
	Conditions []presign.Condition
	TTL        time.Duration
}

// GetRecord captures the arguments of the most recent PresignGet call.
type GetRecord struct {
	ObjectKey                  string
	ResponseContentDisposition string
	TTL                        time.Duration
}

// Signer is an in-memory implementation of the presign.Signer interface
type Signer struct {
	mu      sync.RWMutex
	objects map[string][]byte

	lastPost *PostRecord
	lastGet  *GetRecord

	// HeadErr, when set, is returned by Head for any key. Used to exercise
	// the non-404 failure path.
	HeadErr error
	// PresignErr, when set, is returned by both presign methods.
	PresignErr error
}

// New creates a new in-memory signer
func New() *Signer {
	return &Signer{
		objects: make(map[string][]byte),
	}
}

// Put seeds an object so Head will report it as existing.
func (s *Signer) Put(objectKey string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectKey] = data
}

// Head reports whether the object exists
func (s *Signer) Head(ctx context.Context, objectKey string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.HeadErr != nil {
		return s.HeadErr
	}
	if _, exists := s.objects[objectKey]; !exists {
		return presign.ErrObjectNotFound
	}
	return nil
}

// PresignGet returns a fake download URL carrying the call arguments
func (s *Signer) PresignGet(ctx context.Context, objectKey, responseContentDisposition string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.PresignErr != nil {
		return "", s.PresignErr
	}

	s.lastGet = &GetRecord{
		ObjectKey:                  objectKey,
		ResponseContentDisposition: responseContentDisposition,
		TTL:                        ttl,
	}

	values := url.Values{}
	values.Set("token", uuid.NewString())
	values.Set("expires", fmt.Sprint(int(ttl/time.Second)))
	if responseContentDisposition != "" {
		values.Set("response-content-disposition", responseContentDisposition)
	}
	return fmt.Sprintf("memory:///%s?%s", objectKey, values.Encode()), nil
}

// PresignPost returns a fake upload authorization echoing the constrained
// fields plus stand-in signature fields
func (s *Signer) PresignPost(ctx context.Context, objectKey string, fields map[string]string, conditions []presign.Condition, ttl time.Duration) (*presign.PostAuthorization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.PresignErr != nil {
		return nil, s.PresignErr
	}

	s.lastPost = &PostRecord{
		ObjectKey:  objectKey,
		Fields:     fields,
		Conditions: conditions,
		TTL:        ttl,
	}

	merged := make(map[string]string, len(fields)+3)
	for k, v := range fields {
		merged[k] = v
	}
	merged["key"] = objectKey
	merged["policy"] = uuid.NewString()
	merged["x-amz-signature"] = uuid.NewString()

	return &presign.PostAuthorization{
		URL:    "memory:///" + objectKey,
		Fields: merged,
	}, nil
}

// LastPost returns the most recent PresignPost arguments, or nil.
func (s *Signer) LastPost() *PostRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPost
}

// LastGet returns the most recent PresignGet arguments, or nil.
func (s *Signer) LastGet() *GetRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastGet
}
