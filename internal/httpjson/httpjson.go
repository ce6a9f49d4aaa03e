// Package httpjson holds the JSON response helpers shared by the calc handlers.
package httpjson

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// Write encodes v before touching the response, so an unencodable value
// becomes a 500 instead of a bodiless status.
func Write(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response", "error", err)
		code = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorBody{Error: "Failed to encode response", Code: code})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(append(body, '\n'))
}

func Error(w http.ResponseWriter, message string, code int) {
	Write(w, code, ErrorBody{Error: message, Code: code})
}

// Decode reads a JSON body into v, rejecting unknown fields.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
