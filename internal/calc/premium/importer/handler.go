package importer

import (
	"bytes"
	"log/slog"
	"net/http"

	"Isolator/internal/calc/premium/batch"
	"Isolator/internal/httpjson"
)

type Handler struct {
	MaxItems    int
	MaxUploadMB int
}

// Isolator accepts a multipart upload ("file") and returns the batch result.
func (h *Handler) Isolator(w http.ResponseWriter, r *http.Request) {
	limit := int64(h.MaxUploadMB) << 20
	if limit <= 0 {
		limit = 10 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, _, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ReadInputs(file)
	if err != nil {
		httpjson.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Evaluate(rows, h.MaxItems)
	if err != nil {
		httpjson.Error(w, err.Error(), batch.StatusFor(err))
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}

// Export computes a JSON batch and returns it as an .xlsx workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input batch.Input
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := batch.Calculate(input, h.MaxItems)
	if err != nil {
		httpjson.Error(w, err.Error(), batch.StatusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := WriteResults(&buf, res); err != nil {
		slog.Error("write workbook", "error", err)
		httpjson.Error(w, "Workbook generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="isolators.xlsx"`)
	w.Write(buf.Bytes())
}
