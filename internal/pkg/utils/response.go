package utils

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
)

// SuccessResponse is the envelope used by the health endpoints
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail mirrors the public fields of an AppError
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// fallbackBody is written when a response value cannot be encoded
var fallbackBody = []byte(`{"success":false,"error":{"code":"` + errors.ErrCodeInternal + `","message":"Internal server error"}}` + "\n")

// WriteJSON encodes data fully before writing. An encoding failure yields a
// 500 with fallbackBody.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(fallbackBody)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteSuccess wraps data in the success envelope
func WriteSuccess(w http.ResponseWriter, status int, data interface{}) error {
	return WriteJSON(w, status, SuccessResponse{Success: true, Data: data})
}

// WriteError renders err with its own status code. The wrapped internal
// error is never exposed.
func WriteError(w http.ResponseWriter, err *errors.AppError) error {
	return WriteJSON(w, err.StatusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    err.Code,
			Message: err.Message,
			Details: err.Details,
		},
	})
}
