// Package httputil centralizes JSON response writing so every handler
// produces the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "jobtrack/pkg/domain-errors"
)

// ErrorResponse is the error envelope returned by every endpoint.
// Description is omitted for internal errors so store failures never leak
// details to clients. Errors carries per-field validation messages.
type ErrorResponse struct {
	Error       string              `json:"error"`
	Description string              `json:"error_description,omitempty"`
	Errors      map[string][]string `json:"errors,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Unknown errors are reported as internal without detail.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	message := ""
	var fields map[string][]string

	var de *dErrors.Error
	if errors.As(err, &de) {
		code = de.Code
		message = de.Message
		fields = de.Fields
	}
	if code == dErrors.CodeInternal {
		message = ""
		fields = nil
	}

	WriteJSON(w, dErrors.ToHTTPStatus(code), ErrorResponse{
		Error:       string(code),
		Description: message,
		Errors:      fields,
	})
}
