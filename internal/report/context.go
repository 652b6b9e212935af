package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"github.com/dgtlntv/design-tokens-validator/internal/schema"
)

// fragmentLimit caps how much of an offending value is echoed back.
const fragmentLimit = 200

// ContextRenderer is the richer variant of the text renderer: alongside each
// diagnostic it shows the JSON fragment that failed, extracted from the
// original document source.
type ContextRenderer struct {
	UseColour bool
}

func (cr *ContextRenderer) paint(attr color.Attribute, s string) string {
	if !cr.UseColour {
		return s
	}
	return color.New(attr).Sprint(s)
}

func (cr *ContextRenderer) Result(w io.Writer, res *schema.Result) {
	if res.Valid {
		fmt.Fprintf(w, "%s %s\n", cr.paint(color.FgGreen, "✓"), res.Path)
		return
	}

	fmt.Fprintf(w, "%s %s\n", cr.paint(color.FgRed, "✗"), res.Path)

	if res.Err != nil {
		fmt.Fprintf(w, "  %v\n", res.Err)
		return
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintf(w, "  %s %s: %s\n", cr.paint(color.FgYellow, d.InstancePath), d.Keyword, d.Message)
		if frag := fragmentAt(res.Source, d.InstancePath); frag != "" {
			for _, line := range strings.Split(frag, "\n") {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
	}
}

func (cr *ContextRenderer) Summary(w io.Writer, results []schema.Result) error {
	valid, invalid := tally(results)
	line := fmt.Sprintf("%d valid, %d invalid", valid, invalid)
	if invalid > 0 {
		fmt.Fprintln(w, cr.paint(color.FgRed, line))
	} else {
		fmt.Fprintln(w, cr.paint(color.FgGreen, line))
	}
	return nil
}

// fragmentAt extracts the raw JSON value at the given instance pointer from
// the document source. Returns "" when the pointer names the document root or
// the value cannot be located.
func fragmentAt(src []byte, pointer string) string {
	if len(src) == 0 || pointer == "" || pointer == "/" {
		return ""
	}

	v := gjson.GetBytes(src, gjsonPath(pointer))
	if !v.Exists() {
		return ""
	}

	raw := v.Raw
	if len(raw) > fragmentLimit {
		raw = raw[:fragmentLimit] + "…"
	}
	return raw
}

// gjsonPath converts a JSON Pointer to a gjson path expression.
func gjsonPath(pointer string) string {
	segments := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, seg := range segments {
		seg = strings.ReplaceAll(seg, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")
		seg = strings.ReplaceAll(seg, "\\", "\\\\")
		seg = strings.ReplaceAll(seg, ".", "\\.")
		segments[i] = seg
	}
	return strings.Join(segments, ".")
}
