package presign

import (
	"encoding/json"
	"strconv"
)

// UploadRequest asks for an upload authorization for a single file.
type UploadRequest struct {
	Filename    string            `json:"filename"`
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// DownloadRequest asks for a download authorization for an existing object.
// ObjectKey is caller-supplied and not validated against a naming scheme.
type DownloadRequest struct {
	ObjectKey                  string `json:"object_key"`
	ResponseContentDisposition string `json:"response_content_disposition,omitempty"`
}

// DecodeUploadRequest decodes an upload request from a raw JSON event. The
// request fields may appear at the top level or nested under a "body" field,
// either as an embedded object or as a string of encoded JSON. Metadata
// values of any JSON scalar type are coerced to strings.
func DecodeUploadRequest(data []byte) (UploadRequest, error) {
	payload, err := eventPayload(data)
	if err != nil {
		return UploadRequest{}, err
	}

	var wire struct {
		Filename    string                 `json:"filename"`
		ContentType string                 `json:"content_type"`
		Metadata    map[string]interface{} `json:"metadata"`
	}
	if err := json.Unmarshal(payload, &wire); err != nil {
		return UploadRequest{}, &ValidationError{Reason: "request body is not valid JSON"}
	}

	req := UploadRequest{
		Filename:    wire.Filename,
		ContentType: wire.ContentType,
	}
	if len(wire.Metadata) > 0 {
		req.Metadata = make(map[string]string, len(wire.Metadata))
		for k, v := range wire.Metadata {
			req.Metadata[k] = metadataString(v)
		}
	}
	return req, nil
}

// DecodeDownloadRequest decodes a download request from a raw JSON event,
// supporting the same shapes as DecodeUploadRequest.
func DecodeDownloadRequest(data []byte) (DownloadRequest, error) {
	payload, err := eventPayload(data)
	if err != nil {
		return DownloadRequest{}, err
	}

	var req DownloadRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return DownloadRequest{}, &ValidationError{Reason: "request body is not valid JSON"}
	}
	return req, nil
}

// eventPayload extracts the request payload from a raw event: the "body"
// field when present (string-encoded or embedded JSON), otherwise the event
// itself.
func eventPayload(data []byte) ([]byte, error) {
	var envelope struct {
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &ValidationError{Reason: "request body is not valid JSON"}
	}

	body := envelope.Body
	if len(body) == 0 || string(body) == "null" {
		return data, nil
	}
	if body[0] == '"' {
		var encoded string
		if err := json.Unmarshal(body, &encoded); err != nil {
			return nil, &ValidationError{Reason: "request body is not valid JSON"}
		}
		return []byte(encoded), nil
	}
	return body, nil
}

func metadataString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		// Nested arrays or objects: keep the JSON text.
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
