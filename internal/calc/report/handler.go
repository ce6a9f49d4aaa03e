package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"Isolator/internal/calc/isolator"
	"Isolator/internal/httpjson"

	"github.com/google/uuid"
)

type Input struct {
	Project     string         `json:"project"`
	Author      string         `json:"author"`
	Title       string         `json:"title"`
	Calculation isolator.Input `json:"calculation"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := isolator.Calculate(input.Calculation)
	if err != nil {
		httpjson.Error(w, err.Error(), isolator.StatusFor(err))
		return
	}

	meta := Meta{
		ID:      uuid.NewString(),
		Title:   input.Title,
		Project: input.Project,
		Author:  input.Author,
		Date:    time.Now(),
	}
	var buf bytes.Buffer
	if err := Write(&buf, meta, res); err != nil {
		slog.Error("report generation", "report_id", meta.ID, "error", err)
		httpjson.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"isolator-%s.pdf\"", meta.ID[:8]))
	w.Write(buf.Bytes())
}
