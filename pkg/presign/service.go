package presign

import (
	"context"
)

// Service defines the two authorization operations. Implementations are
// stateless; concurrent calls never interact.
type Service interface {
	// AuthorizeUpload validates the request, derives a unique object key,
	// and mints a signed upload authorization.
	AuthorizeUpload(ctx context.Context, req UploadRequest) (*UploadAuthorization, error)

	// AuthorizeDownload validates the request, confirms the object exists,
	// and mints a signed download authorization.
	AuthorizeDownload(ctx context.Context, req DownloadRequest) (*DownloadAuthorization, error)
}
