package presign

import (
	"context"
	"time"
)

// Signer defines the storage collaborator that checks object existence and
// mints signed authorizations. Implementations must return ErrObjectNotFound
// from Head when the object is absent; any other failure is surfaced as-is.
type Signer interface {
	// Head reports whether the object exists.
	Head(ctx context.Context, objectKey string) error

	// PresignGet mints a time-boxed download URL. A non-empty
	// responseContentDisposition overrides the response disposition header.
	PresignGet(ctx context.Context, objectKey, responseContentDisposition string, ttl time.Duration) (string, error)

	// PresignPost mints a time-boxed upload authorization over the given
	// form fields and policy conditions.
	PresignPost(ctx context.Context, objectKey string, fields map[string]string, conditions []Condition, ttl time.Duration) (*PostAuthorization, error)
}
