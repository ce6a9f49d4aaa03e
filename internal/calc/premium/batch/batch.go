package batch

import (
	"errors"
	"fmt"

	"Isolator/internal/calc/isolator"
)

const DefaultMaxItems = 500

var ErrNoItems = errors.New("no items")

type Input struct {
	Items []isolator.Input `json:"items"`
}

// Item holds either a result or the reason the case was rejected.
type Item struct {
	Index  int              `json:"index"`
	Label  string           `json:"label,omitempty"`
	Result *isolator.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type Result struct {
	Count  int    `json:"count"`
	Failed int    `json:"failed"`
	Items  []Item `json:"items"`
}

// Calculate evaluates every case; a bad case does not abort the batch.
func Calculate(in Input, maxItems int) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	if len(in.Items) > maxItems {
		return Result{}, fmt.Errorf("%w: %d items exceeds the limit of %d", isolator.ErrInvalidInput, len(in.Items), maxItems)
	}

	out := Result{Items: make([]Item, 0, len(in.Items))}
	for i, item := range in.Items {
		out.Items = append(out.Items, Evaluate(i, item))
	}
	out.tally()
	return out, nil
}

func Evaluate(index int, in isolator.Input) Item {
	res, err := isolator.Calculate(in)
	if err != nil {
		return Item{Index: index, Error: err.Error()}
	}
	return Item{Index: index, Result: &res}
}

// Append adds a pre-built item, e.g. a spreadsheet row that failed to parse.
func (r *Result) Append(item Item) {
	r.Items = append(r.Items, item)
	r.tally()
}

func (r *Result) tally() {
	r.Count, r.Failed = len(r.Items), 0
	for _, it := range r.Items {
		if it.Error != "" {
			r.Failed++
		}
	}
}
