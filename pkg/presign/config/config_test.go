package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objstore-io/presigned-access/pkg/presign"
	memorysigner "github.com/objstore-io/presigned-access/pkg/presign/storage/memory"
)

func TestBuildServiceWithSigner(t *testing.T) {
	cfg, err := Load(
		WithBucket("b"),
		WithAllowedContentTypes([]string{"application/pdf"}),
		WithKMSKey("kms-key-1"),
	)
	require.NoError(t, err)

	signer := memorysigner.New()
	svc, err := cfg.BuildServiceWithSigner(signer)
	require.NoError(t, err)

	auth, err := svc.AuthorizeUpload(context.Background(), presign.UploadRequest{
		Filename:    "doc.pdf",
		ContentType: "application/pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, 300, auth.ExpiresIn)
	assert.Equal(t, float64(10), auth.MaxFileSizeMB)
	assert.Equal(t, "aws:kms", auth.Fields[presign.FieldSSEAlgorithm])

	_, err = svc.AuthorizeUpload(context.Background(), presign.UploadRequest{
		Filename:    "x.bin",
		ContentType: "application/octet-stream",
	})
	require.ErrorIs(t, err, presign.ErrInvalidRequest)
}
