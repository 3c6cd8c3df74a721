// Package httpjson holds the small request/response helpers shared by the
// JSON feature handlers.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body: {"error": "..."}.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, map[string]string{"error": message})
}

// Decode parses the request body into v. The body is limited to 1 MiB;
// unknown fields are rejected so typos fail loudly instead of silently
// dropping input.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
