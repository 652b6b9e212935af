// Package report renders validation results for humans and machines.
package report

import (
	"fmt"
	"io"

	"github.com/dgtlntv/design-tokens-validator/internal/schema"
)

// Renderer renders validation results. Result is called once per file as it
// is evaluated, Summary once after the whole batch. The orchestration logic
// is renderer-agnostic: all formatting decisions live behind this interface.
type Renderer interface {
	Result(w io.Writer, res *schema.Result)
	Summary(w io.Writer, results []schema.Result) error
}

// New returns the renderer for the given output format.
func New(format string, useColour bool) (Renderer, error) {
	switch format {
	case "text":
		return &TextRenderer{UseColour: useColour}, nil
	case "context":
		return &ContextRenderer{UseColour: useColour}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q - must be 'text', 'context' or 'json'", format)
	}
}
