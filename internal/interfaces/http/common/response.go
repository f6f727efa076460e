package common

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse is the terminal JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Warn("encode JSON response failed", zap.Error(err))
	}
}

// WriteError writes info as an ErrorResponse.
func WriteError(logger *zap.Logger, w http.ResponseWriter, info ErrorInfo) {
	WriteJSON(logger, w, info.Status, ErrorResponse{Error: info.Message, Code: info.Code})
}
