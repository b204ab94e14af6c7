// Package httpx holds the JSON response envelope shared by every
// handler and middleware.
package httpx

import (
	"encoding/json"
	"net/http"
)

// APIError is the wire shape of every rejection: a human message, a
// stable machine code (see ledger.Code) and optional field details.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details any) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}
