package autodesign

import (
	"net/http"

	"Isolator/internal/calc/isolator"
	"Isolator/internal/httpjson"
)

type Handler struct{}

func (h *Handler) Isolator(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Isolator(input)
	if err != nil {
		httpjson.Error(w, err.Error(), isolator.StatusFor(err))
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}
