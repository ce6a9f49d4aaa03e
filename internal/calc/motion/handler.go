package motion

import (
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
		httpjson.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}
