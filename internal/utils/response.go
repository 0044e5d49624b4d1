package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the error envelope for all endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error envelope
func WriteErrorResponse(w http.ResponseWriter, status int, errorType, message string) {
	WriteJSONResponse(w, status, ErrorResponse{Error: errorType, Message: message})
}

// DecodeJSONRequest decodes the request body into dst and reports decoding
// problems to the client. Callers should return immediately on error.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", fmt.Sprintf("cannot parse JSON: %v", err))
		return err
	}
	return nil
}
