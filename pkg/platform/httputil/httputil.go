// Package httputil centralizes JSON response writing and domain-error
// translation so every handler produces the same error envelope.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "wathiq/pkg/domain-errors"
)

// statusByCode maps domain error codes to HTTP statuses. Codes missing from
// the map fall back to 500.
var statusByCode = map[dErrors.Code]int{
	dErrors.CodeConsentMissing:    http.StatusUnprocessableEntity,
	dErrors.CodeFieldsMissing:     http.StatusUnprocessableEntity,
	dErrors.CodeOCRUnavailable:    http.StatusBadGateway,
	dErrors.CodeNameInsufficient:  http.StatusUnprocessableEntity,
	dErrors.CodeIdentityMismatch:  http.StatusUnprocessableEntity,
	dErrors.CodeRosterUnavailable: http.StatusBadGateway,
	dErrors.CodeNameNotFound:      http.StatusNotFound,
	dErrors.CodeSlotsExhausted:    http.StatusConflict,
	dErrors.CodeRenderFailure:     http.StatusBadGateway,
	dErrors.CodeBadRequest:        http.StatusBadRequest,
	dErrors.CodeUnauthorized:      http.StatusUnauthorized,
	dErrors.CodeNotFound:          http.StatusNotFound,
	dErrors.CodeInternal:          http.StatusInternalServerError,
}

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the standard error envelope. Internal errors
// omit the description so store/service details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := errorBody{Error: string(code)}
	var de *dErrors.Error
	if code != dErrors.CodeInternal && errors.As(err, &de) {
		body.Description = de.Message
	}
	WriteJSON(w, status, body)
}
