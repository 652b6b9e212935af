package validator

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NewSanthoshCompiler returns a concrete implementation of Compiler.
// Using the santhosh-tekuri/jsonschema/v6 package.
func NewSanthoshCompiler() Compiler {
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	return &santhoshCompiler{c: c, added: make(map[string]bool)}
}

// UnmarshalJSON parses JSON using the engine's decoder, which preserves
// number precision. Both schemas and target documents go through this so the
// engine sees the representation it expects.
func UnmarshalJSON(r io.Reader) (JSONDocument, error) {
	return jsonschema.UnmarshalJSON(r)
}

// santhoshValidator wraps jsonschema.Schema to implement Validator.
type santhoshValidator struct {
	v *jsonschema.Schema
}

// Validate adapts jsonschema.Schema.Validate to match the Validator interface.
func (sv *santhoshValidator) Validate(doc JSONDocument) error {
	return sv.v.Validate(doc)
}

// santhoshCompiler wraps jsonschema.Compiler to implement Compiler.
type santhoshCompiler struct {
	mu    sync.Mutex
	c     *jsonschema.Compiler
	added map[string]bool
}

func (s *santhoshCompiler) AddSchema(id string, schemaData JSONSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.c.AddResource(id, schemaData); err != nil {
		return err
	}
	s.added[id] = true
	return nil
}

func (s *santhoshCompiler) HasSchema(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.added[id]
}

func (s *santhoshCompiler) Compile(id string) (Validator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.c.Compile(id)
	if err != nil {
		return nil, err
	}
	return &santhoshValidator{v: v}, nil
}

func (s *santhoshCompiler) SupportedSchemaVersions() []Draft {
	return []Draft{
		Draft4,
		Draft6,
		Draft7,
		Draft2019_09,
		Draft2020_12,
	}
}

var diagPrinter = message.NewPrinter(language.English)

// Diagnostics flattens a validation error into one entry per leaf cause.
// The engine collects every failure in a document, so one call yields the
// complete list rather than just the first.
func Diagnostics(err error) []Diagnostic {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Diagnostic{{InstancePath: "/", Message: err.Error()}}
	}

	var out []Diagnostic
	collectCauses(ve, &out)
	return out
}

func collectCauses(ve *jsonschema.ValidationError, out *[]Diagnostic) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Diagnostic{
			InstancePath: instancePointer(ve.InstanceLocation),
			Keyword:      failingKeyword(ve.ErrorKind),
			Message:      ve.ErrorKind.LocalizedString(diagPrinter),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectCauses(cause, out)
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// instancePointer renders the instance location as a JSON Pointer.
func instancePointer(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(seg))
	}
	return b.String()
}

// failingKeyword returns the last element of the error kind's keyword path.
func failingKeyword(kind jsonschema.ErrorKind) string {
	path := kind.KeywordPath()
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}
