package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

// ErrorBody is the JSON envelope every failed request gets. Fields is only set
// for validation failures and maps a form field to its message.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{Error: message})
}

func WriteFieldErrors(w http.ResponseWriter, status int, message string, fields map[string]string) {
	WriteJSON(w, status, ErrorBody{Error: message, Fields: fields})
}
