package isolator

import (
	"errors"
	"net/http"

	"Isolator/internal/httpjson"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		httpjson.Error(w, err.Error(), StatusFor(err))
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}

// StatusFor maps calculation errors to HTTP status codes.
func StatusFor(err error) int {
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDegenerateFrequency) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
