package fsh

import (
	"os"
)

// FileReader reads whole files from disk. The schema loader goes through this
// interface so tests can count or fail individual reads.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileReader reads files with os.ReadFile.
type OSFileReader struct{}

// NewFileReader creates a new OSFileReader.
func NewFileReader() *OSFileReader {
	return &OSFileReader{}
}

// ReadFile returns the contents of the file at path.
func (r *OSFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
