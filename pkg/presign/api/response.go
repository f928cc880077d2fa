package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/objstore-io/presigned-access/pkg/presign"
)

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// Success writes the payload with status 200 and permissive cross-origin
// headers.
func Success(w http.ResponseWriter, r *http.Request, payload interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST")
	render.Status(r, http.StatusOK)
	render.JSON(w, r, payload)
}

// Error writes the error envelope with the given status.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: message})
}

// writeServiceError maps a service error onto the response contract. The raw
// collaborator error is logged, never sent to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *presign.ValidationError
	switch {
	case errors.As(err, &validationErr):
		Error(w, r, http.StatusBadRequest, validationErr.Reason)
	case errors.Is(err, presign.ErrObjectNotFound):
		Error(w, r, http.StatusNotFound, "Object not found")
	default:
		var storageErr *presign.StorageError
		if errors.As(err, &storageErr) {
			slog.Error("Storage operation failed", "op", storageErr.Op, "object_key", storageErr.Key, "error", storageErr.Err)
			Error(w, r, http.StatusInternalServerError, "Error generating presigned URL")
			return
		}
		slog.Error("Unexpected error", "error", err)
		Error(w, r, http.StatusInternalServerError, "Unexpected error")
	}
}
