package report

import (
	"encoding/json"
	"io"

	"github.com/dgtlntv/design-tokens-validator/internal/schema"
	"github.com/dgtlntv/design-tokens-validator/internal/validator"
)

// JSONRenderer emits one machine-readable report for the whole batch.
// Per-file output is suppressed; everything is written by Summary.
type JSONRenderer struct{}

type jsonResult struct {
	Path        string                 `json:"path"`
	Valid       bool                   `json:"valid"`
	Error       string                 `json:"error,omitempty"`
	Diagnostics []validator.Diagnostic `json:"diagnostics,omitempty"`
}

type jsonOutput struct {
	Stats struct {
		Valid   int `json:"valid"`
		Invalid int `json:"invalid"`
	} `json:"stats"`
	Results []jsonResult `json:"results"`
}

func (jr *JSONRenderer) Result(_ io.Writer, _ *schema.Result) {}

func (jr *JSONRenderer) Summary(w io.Writer, results []schema.Result) error {
	out := jsonOutput{Results: make([]jsonResult, 0, len(results))}

	for i := range results {
		res := &results[i]
		entry := jsonResult{
			Path:        res.Path,
			Valid:       res.Valid,
			Diagnostics: res.Diagnostics,
		}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		}
		if res.Valid {
			out.Stats.Valid++
		} else {
			out.Stats.Invalid++
		}
		out.Results = append(out.Results, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
