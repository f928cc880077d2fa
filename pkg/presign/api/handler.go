// Package api exposes the authorization service over HTTP. Every response is
// a JSON object with permissive cross-origin headers; errors carry a single
// user-facing message, never a raw collaborator error.
package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/objstore-io/presigned-access/pkg/presign"
)

// Handler handles the upload and download authorization endpoints
type Handler struct {
	service presign.Service
}

func NewHandler(service presign.Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the authorization endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/uploads", h.AuthorizeUpload)
	r.Post("/downloads", h.AuthorizeDownload)
	return r
}

// AuthorizeUpload mints a presigned upload authorization
func (h *Handler) AuthorizeUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		Error(w, r, http.StatusBadRequest, "failed to read request body")
		return
	}

	req, err := presign.DecodeUploadRequest(body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	auth, err := h.service.AuthorizeUpload(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	Success(w, r, auth)
}

// AuthorizeDownload mints a presigned download authorization
func (h *Handler) AuthorizeDownload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		Error(w, r, http.StatusBadRequest, "failed to read request body")
		return
	}

	req, err := presign.DecodeDownloadRequest(body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	auth, err := h.service.AuthorizeDownload(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	Success(w, r, auth)
}
