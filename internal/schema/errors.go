package schema

import (
	"fmt"
)

type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown validation kind %q - valid kinds are: %s, %s (or %s)",
		e.Kind, KindTokens, KindResolver, kindResolverAlias)
}

type SchemaNotFoundError struct {
	Path    string
	Wrapped error
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema not found: %s: %v", e.Path, e.Wrapped)
}

func (e *SchemaNotFoundError) Unwrap() error {
	return e.Wrapped
}

type SchemaParseError struct {
	Path    string
	Wrapped error
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("schema %s is not valid JSON: %v", e.Path, e.Wrapped)
}

func (e *SchemaParseError) Unwrap() error {
	return e.Wrapped
}

type SchemaCompileError struct {
	ID      string
	Wrapped error
}

func (e *SchemaCompileError) Error() string {
	return fmt.Sprintf("schema %s is not a valid JSON Schema: %v", e.ID, e.Wrapped)
}

func (e *SchemaCompileError) Unwrap() error {
	return e.Wrapped
}

type DocumentParseError struct {
	Path    string
	Wrapped error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("%s is not valid JSON: %v", e.Path, e.Wrapped)
}

func (e *DocumentParseError) Unwrap() error {
	return e.Wrapped
}

type SchemaRootError struct {
	Path string
	Err  error
}

func (e *SchemaRootError) Error() string {
	return fmt.Sprintf("schema directory could not be used. Path: %s, Error: %v", e.Path, e.Err)
}

type SchemaRootNotFolderError struct {
	Path string
}

func (e *SchemaRootNotFolderError) Error() string {
	return fmt.Sprintf("schema directory could not be used. Path: %s is not a directory", e.Path)
}
