package schema

import (
	"path/filepath"
	"strings"

	"github.com/dgtlntv/design-tokens-validator/internal/validator"
)

// RefResolver registers every schema transitively reachable through external
// $ref pointers with the compiler, so the root schema can compile without
// touching the network.
type RefResolver struct {
	loader   *Loader
	compiler validator.Compiler
}

// NewRefResolver creates a RefResolver backed by the given loader and compiler.
func NewRefResolver(loader *Loader, compiler validator.Compiler) *RefResolver {
	return &RefResolver{loader: loader, compiler: compiler}
}

// Register walks doc depth-first and registers every external reference it
// finds, recursing into each referenced schema in turn. baseDir is the
// directory doc was loaded from; relative references resolve against the file
// that contains them, not the root schema's directory.
func (r *RefResolver) Register(doc Document, baseDir string) error {
	switch v := doc.(type) {
	case map[string]interface{}:
		for key, val := range v {
			if key == "$ref" {
				if ref, ok := val.(string); ok && !isInternalRef(ref) {
					if err := r.registerExternal(ref, baseDir); err != nil {
						return err
					}
					continue
				}
			}
			if err := r.Register(val, baseDir); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, item := range v {
			if err := r.Register(item, baseDir); err != nil {
				return err
			}
		}
	}
	return nil
}

// isInternalRef reports whether ref points inside the document that contains
// it. Only refs starting with '#' are internal; combined refs such as
// "other.json#/$defs/x" name another file and are treated as external.
func isInternalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// registerExternal loads the schema file named by ref, registers it with the
// compiler and recurses into it. Schemas already in the loader cache are
// skipped, which both terminates reference cycles and avoids registering the
// same schema twice.
func (r *RefResolver) registerExternal(ref, baseDir string) error {
	file, _, _ := strings.Cut(ref, "#")
	if r.loader.Cached(r.loader.Resolve(file, baseDir)) {
		return nil
	}

	doc, p, err := r.loader.Load(file, baseDir)
	if err != nil {
		return err
	}

	id := RegistrationID(doc, ref)
	if !r.compiler.HasSchema(id) {
		if aErr := r.compiler.AddSchema(id, doc); aErr != nil {
			return &SchemaCompileError{ID: id, Wrapped: aErr}
		}
	}

	return r.Register(doc, filepath.Dir(p))
}

// RegistrationID returns the identifier a schema is registered under: the
// schema's own declared $id when present, else the fallback string (the
// literal $ref used to reach it, or a file URL for the root schema).
func RegistrationID(doc Document, fallback string) string {
	if m, ok := doc.(map[string]interface{}); ok {
		if id, ok := m["$id"].(string); ok && id != "" {
			return id
		}
	}
	return fallback
}
