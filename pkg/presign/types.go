package presign

// Form field names used in upload authorizations.
const (
	// FieldContentType constrains the uploaded object's content type.
	FieldContentType = "Content-Type"

	// FieldUploadedAt tags the object with the authorization instant.
	FieldUploadedAt = "x-amz-meta-uploaded-at"

	// MetadataFieldPrefix marks caller-supplied metadata entries.
	MetadataFieldPrefix = "x-amz-meta-"

	// FieldSSEAlgorithm and FieldSSEKMSKeyID require server-side encryption
	// at upload time when a KMS key is configured.
	FieldSSEAlgorithm = "x-amz-server-side-encryption"
	FieldSSEKMSKeyID  = "x-amz-server-side-encryption-aws-kms-key-id"

	// SSEAlgorithmKMS is the only encryption algorithm issued.
	SSEAlgorithmKMS = "aws:kms"
)

// DefaultContentType is assumed when the upload request names none.
const DefaultContentType = "application/octet-stream"

// UploadAuthorization grants one presigned POST upload. Fields must be
// submitted verbatim by the uploading client alongside the file.
type UploadAuthorization struct {
	UploadURL     string            `json:"upload_url"`
	Fields        map[string]string `json:"fields"`
	ObjectKey     string            `json:"object_key"`
	ExpiresIn     int               `json:"expires_in"`
	MaxFileSizeMB float64           `json:"max_file_size_mb"`
}

// DownloadAuthorization grants one presigned GET download.
type DownloadAuthorization struct {
	DownloadURL string `json:"download_url"`
	ObjectKey   string `json:"object_key"`
	ExpiresIn   int    `json:"expires_in"`
}

// PostAuthorization is the raw presigned POST result returned by a Signer:
// the upload URL and the complete form field set, including the signature
// fields added by the provider.
type PostAuthorization struct {
	URL    string
	Fields map[string]string
}
