// Lambda entrypoint for the authorization handlers. One binary serves both
// functions; HANDLER selects "upload" or "download" per deployment.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/objstore-io/presigned-access/pkg/presign"
	"github.com/objstore-io/presigned-access/pkg/presign/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	svc, err := cfg.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	mode := os.Getenv("HANDLER")
	switch mode {
	case "download":
		lambda.Start(func(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
			return handleDownload(ctx, svc, event), nil
		})
	case "upload", "":
		lambda.Start(func(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
			return handleUpload(ctx, svc, event), nil
		})
	default:
		slog.Error("Unknown HANDLER mode", "mode", mode)
		os.Exit(1)
	}
}

func handleUpload(ctx context.Context, svc presign.Service, event json.RawMessage) events.APIGatewayProxyResponse {
	req, err := presign.DecodeUploadRequest(event)
	if err != nil {
		return errorResponse(err)
	}
	auth, err := svc.AuthorizeUpload(ctx, req)
	if err != nil {
		return errorResponse(err)
	}
	return successResponse(auth)
}

func handleDownload(ctx context.Context, svc presign.Service, event json.RawMessage) events.APIGatewayProxyResponse {
	req, err := presign.DecodeDownloadRequest(event)
	if err != nil {
		return errorResponse(err)
	}
	auth, err := svc.AuthorizeDownload(ctx, req)
	if err != nil {
		return errorResponse(err)
	}
	return successResponse(auth)
}

func successResponse(payload interface{}) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		return errorResponse(err)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Allow-Methods": "POST",
		},
		Body: string(body),
	}
}

func errorResponse(err error) events.APIGatewayProxyResponse {
	status := http.StatusInternalServerError
	message := "Unexpected error"

	var validationErr *presign.ValidationError
	var storageErr *presign.StorageError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Reason
	case errors.Is(err, presign.ErrObjectNotFound):
		status = http.StatusNotFound
		message = "Object not found"
	case errors.As(err, &storageErr):
		slog.Error("Storage operation failed", "op", storageErr.Op, "object_key", storageErr.Key, "error", storageErr.Err)
		message = "Error generating presigned URL"
	default:
		slog.Error("Unexpected error", "error", err)
	}

	body, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}
}
