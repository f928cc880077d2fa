package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objstore-io/presigned-access/pkg/presign"
	memorysigner "github.com/objstore-io/presigned-access/pkg/presign/storage/memory"
)

// setupHandlerTest creates a Handler over the in-memory signer with a fixed
// clock.
func setupHandlerTest(t *testing.T, opts ...presign.Option) (http.Handler, *memorysigner.Signer) {
	t.Helper()

	signer := memorysigner.New()
	options := append([]presign.Option{
		presign.WithSigner(signer),
		presign.WithClock(func() time.Time {
			return time.Date(2024, 2, 13, 12, 0, 0, 0, time.UTC)
		}),
	}, opts...)

	svc, err := presign.New(options...)
	require.NoError(t, err)

	return NewHandler(svc).Routes(), signer
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAuthorizeUpload_OK(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	w := postJSON(t, handler, "/uploads", `{"filename":"doc.pdf","content_type":"application/pdf"}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))

	var auth presign.UploadAuthorization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	assert.Equal(t, "uploads/2024/02/13/120000/doc.pdf", auth.ObjectKey)
	assert.NotEmpty(t, auth.UploadURL)
	assert.Equal(t, float64(10), auth.MaxFileSizeMB)
}

func TestAuthorizeUpload_MissingFilename(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	w := postJSON(t, handler, "/uploads", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"error":"filename is required"}`, w.Body.String())
}

func TestAuthorizeUpload_ContentTypeNotAllowed(t *testing.T) {
	handler, _ := setupHandlerTest(t,
		presign.WithAllowedContentTypes([]string{"application/pdf"}),
	)

	w := postJSON(t, handler, "/uploads", `{"filename":"x.exe","content_type":"application/x-msdownload"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "application/x-msdownload")
}

func TestAuthorizeUpload_MalformedBody(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	w := postJSON(t, handler, "/uploads", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestAuthorizeUpload_StorageFailure(t *testing.T) {
	handler, signer := setupHandlerTest(t)
	signer.PresignErr = errors.New("internal signing detail")

	w := postJSON(t, handler, "/uploads", `{"filename":"doc.pdf"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error generating presigned URL"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "internal signing detail")
}

func TestAuthorizeDownload_OK(t *testing.T) {
	handler, signer := setupHandlerTest(t)
	signer.Put("k", []byte("data"))

	w := postJSON(t, handler, "/downloads", `{"object_key":"k","response_content_disposition":"attachment; filename=out.pdf"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var auth presign.DownloadAuthorization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	assert.NotEmpty(t, auth.DownloadURL)
	assert.Equal(t, "k", auth.ObjectKey)
	assert.Equal(t, 300, auth.ExpiresIn)

	get := signer.LastGet()
	require.NotNil(t, get)
	assert.Equal(t, "attachment; filename=out.pdf", get.ResponseContentDisposition)
}

func TestAuthorizeDownload_NotFound(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	w := postJSON(t, handler, "/downloads", `{"object_key":"uploads/2024/02/13/120000/doc.pdf"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Object not found"}`, w.Body.String())
}

func TestAuthorizeDownload_MissingObjectKey(t *testing.T) {
	handler, _ := setupHandlerTest(t)

	w := postJSON(t, handler, "/downloads", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"object_key is required"}`, w.Body.String())
}

func TestAuthorizeDownload_EventShapedBody(t *testing.T) {
	handler, signer := setupHandlerTest(t)
	signer.Put("k", []byte("data"))

	w := postJSON(t, handler, "/downloads", `{"body":"{\"object_key\":\"k\"}"}`)
	require.Equal(t, http.StatusOK, w.Code)
}
