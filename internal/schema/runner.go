package schema

import (
	"bytes"
	"log/slog"
	"path/filepath"

	"github.com/dgtlntv/design-tokens-validator/internal/fsh"
	"github.com/dgtlntv/design-tokens-validator/internal/validator"
)

// Result is the outcome of validating a single target document.
type Result struct {
	// Path identifies the target file.
	Path string
	// Valid reports whether the document satisfied the schema.
	Valid bool
	// Diagnostics holds one entry per schema violation when the document
	// parsed but failed validation.
	Diagnostics []validator.Diagnostic
	// Err is set when the target could not be read or parsed as JSON.
	Err error
	// Source is the raw document, kept for context-aware renderers.
	Source []byte
}

// Runner orchestrates one validation run: it loads and links the root schema
// for a kind, compiles it once, then applies it to each target in sequence.
type Runner struct {
	loader   *Loader
	compiler validator.Compiler
	reader   fsh.FileReader
	logger   *slog.Logger
}

// NewRunner creates a Runner. The compiler must be fresh: a runner registers
// schemas with it and compiles exactly one root per kind.
func NewRunner(loader *Loader, compiler validator.Compiler, reader fsh.FileReader, logger *slog.Logger) *Runner {
	if reader == nil {
		reader = fsh.NewFileReader()
	}
	return &Runner{
		loader:   loader,
		compiler: compiler,
		reader:   reader,
		logger:   logger,
	}
}

// Compile loads the root schema for the kind, registers every transitively
// referenced schema and compiles the root into a reusable validator.
// Any failure here is fatal for the run: there is no meaningful partial
// result without a compiled schema.
func (r *Runner) Compile(kind Kind) (validator.Validator, error) {
	doc, path, err := r.loader.Load(kind.RootSchemaFile(), r.loader.RootDir())
	if err != nil {
		return nil, err
	}

	id := RegistrationID(doc, "file://"+filepath.ToSlash(path))
	if !r.compiler.HasSchema(id) {
		if aErr := r.compiler.AddSchema(id, doc); aErr != nil {
			return nil, &SchemaCompileError{ID: id, Wrapped: aErr}
		}
	}

	resolver := NewRefResolver(r.loader, r.compiler)
	if rErr := resolver.Register(doc, filepath.Dir(path)); rErr != nil {
		return nil, rErr
	}

	v, cErr := r.compiler.Compile(id)
	if cErr != nil {
		return nil, &SchemaCompileError{ID: id, Wrapped: cErr}
	}

	r.logger.Debug("schema compiled", "kind", kind, "id", id)
	return v, nil
}

// Run validates each target in order. emit, if non-nil, is called with each
// result as the file is evaluated so callers can report progressively rather
// than batching at the end. It returns all results and whether every target
// was valid.
func (r *Runner) Run(v validator.Validator, targets []string, emit func(*Result)) ([]Result, bool) {
	results := make([]Result, 0, len(targets))
	allValid := true

	for _, target := range targets {
		res := r.validateTarget(v, target)
		if !res.Valid {
			allValid = false
		}
		if emit != nil {
			emit(&res)
		}
		results = append(results, res)
	}

	return results, allValid
}

// validateTarget reads, parses and evaluates a single document. Read and
// parse failures are recorded on the result rather than returned: one
// malformed input must not prevent evaluating the rest of the batch.
func (r *Runner) validateTarget(v validator.Validator, path string) Result {
	res := Result{Path: path}

	raw, err := r.reader.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Source = raw

	doc, err := validator.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		res.Err = &DocumentParseError{Path: path, Wrapped: err}
		return res
	}

	if vErr := v.Validate(doc); vErr != nil {
		res.Diagnostics = validator.Diagnostics(vErr)
		return res
	}

	res.Valid = true
	return res
}
