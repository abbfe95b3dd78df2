package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorEnvelope is the uniform failure shape returned by every handler.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RespondJSON writes a JSON response body.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError writes the failure envelope.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorEnvelope{Success: false, Error: message})
}

// RespondErrorDetails writes the failure envelope with upstream error text.
func RespondErrorDetails(w http.ResponseWriter, status int, message, details string) {
	RespondJSON(w, status, ErrorEnvelope{Success: false, Error: message, Details: details})
}
