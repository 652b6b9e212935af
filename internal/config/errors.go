package config

import (
	"fmt"
)

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("config file is not valid YAML: %v", e.Wrapped)
}

func (e *InvalidYAMLError) Unwrap() error {
	return e.Wrapped
}

type InvalidOutputError struct {
	Value string
}

func (e *InvalidOutputError) Error() string {
	return fmt.Sprintf("invalid output format %q - valid formats are: text, context, json", e.Value)
}
