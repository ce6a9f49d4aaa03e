package batch

import (
	"errors"
	"net/http"

	"Isolator/internal/calc/isolator"
	"Isolator/internal/httpjson"
)

type Handler struct {
	MaxItems int
}

func (h *Handler) Isolator(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input, h.MaxItems)
	if err != nil {
		httpjson.Error(w, err.Error(), StatusFor(err))
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}

func StatusFor(err error) int {
	if errors.Is(err, ErrNoItems) {
		return http.StatusBadRequest
	}
	return isolator.StatusFor(err)
}
