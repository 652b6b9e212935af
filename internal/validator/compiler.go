// Package validator provides interfaces and types for JSON Schema validation.
package validator

// Draft represents a JSON Schema draft version.
type Draft string

const (
	// Draft4 represents JSON Schema Draft 4.
	Draft4 Draft = "http://json-schema.org/draft-04/schema#"
	// Draft6 represents JSON Schema Draft 6.
	Draft6 Draft = "http://json-schema.org/draft-06/schema#"
	// Draft7 represents JSON Schema Draft 7.
	Draft7 Draft = "http://json-schema.org/draft-07/schema#"
	// Draft2019_09 represents JSON Schema Draft 2019-09.
	Draft2019_09 Draft = "https://json-schema.org/draft/2019-09/schema"
	// Draft2020_12 represents JSON Schema Draft 2020-12.
	Draft2020_12 Draft = "https://json-schema.org/draft/2020-12/schema"
)

// A JSONDocument is a valid parsed JSON Document - i.e. the result of UnmarshalJSON().
type JSONDocument interface{}

// A JSONSchema is a valid parsed JSON Document representing a JSON Schema.
// Note that a Compiler must compile the JSONSchema before use which will identify any JSON Schema issues.
type JSONSchema JSONDocument

// Diagnostic is one reason a document failed validation.
type Diagnostic struct {
	// InstancePath is a JSON Pointer into the document ("/" for the root).
	InstancePath string `json:"instancePath"`
	// Keyword is the schema keyword that failed.
	Keyword string `json:"keyword,omitempty"`
	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

// Validator represents something which can be used to validate a JSON document.
type Validator interface {
	// Validate validates a JSON document.
	Validate(v JSONDocument) error
}

// Compiler defines a JSON Schema compiler. Because JSON schemas can, and often
// do, reference other schemas via the $ref keyword, a Compiler first must
// register all the JSON Schemas that it will need to compile.
type Compiler interface {
	// AddSchema registers a JSONSchema with the compiler under the given identifier.
	// Schemas referenced by the one being compiled must be added first.
	AddSchema(id string, data JSONSchema) error

	// HasSchema reports whether a schema has already been registered under the
	// given identifier. Used to guard against duplicate registration.
	HasSchema(id string) bool

	// Compile creates a Validator from the JSONSchema previously added with the given ID.
	// An error is produced if the JSONSchema cannot be compiled.
	Compile(id string) (Validator, error)

	// SupportedSchemaVersions returns a slice of Draft representing the supported schema versions.
	SupportedSchemaVersions() []Draft
}
