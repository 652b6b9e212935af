package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dgtlntv/design-tokens-validator/internal/schema"
)

// TextRenderer prints a coloured check/cross marker per file followed by a
// flat list of diagnostics for invalid documents.
type TextRenderer struct {
	UseColour bool
}

func (tr *TextRenderer) paint(attr color.Attribute, s string) string {
	if !tr.UseColour {
		return s
	}
	return color.New(attr).Sprint(s)
}

func (tr *TextRenderer) Result(w io.Writer, res *schema.Result) {
	if res.Valid {
		fmt.Fprintf(w, "%s %s\n", tr.paint(color.FgGreen, "✓"), res.Path)
		return
	}

	fmt.Fprintf(w, "%s %s\n", tr.paint(color.FgRed, "✗"), res.Path)

	if res.Err != nil {
		fmt.Fprintf(w, "  %v\n", res.Err)
		return
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintf(w, "  %s %s: %s\n", d.InstancePath, d.Keyword, d.Message)
	}
}

func (tr *TextRenderer) Summary(w io.Writer, results []schema.Result) error {
	valid, invalid := tally(results)
	line := fmt.Sprintf("%d valid, %d invalid", valid, invalid)
	if invalid > 0 {
		fmt.Fprintln(w, tr.paint(color.FgRed, line))
	} else {
		fmt.Fprintln(w, tr.paint(color.FgGreen, line))
	}
	return nil
}

func tally(results []schema.Result) (valid, invalid int) {
	for i := range results {
		if results[i].Valid {
			valid++
		} else {
			invalid++
		}
	}
	return valid, invalid
}
