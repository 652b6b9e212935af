package schema

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dgtlntv/design-tokens-validator/internal/fsh"
	"github.com/dgtlntv/design-tokens-validator/internal/validator"
)

// shippedSchemasDir points at the schema set shipped with the repository.
var shippedSchemasDir = filepath.Join("..", "..", "schemas")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// countingReader wraps the OS reader and counts reads per path.
type countingReader struct {
	inner fsh.FileReader

	mu    sync.Mutex
	reads map[string]int
}

func newCountingReader() *countingReader {
	return &countingReader{
		inner: fsh.NewFileReader(),
		reads: make(map[string]int),
	}
}

func (r *countingReader) ReadFile(path string) ([]byte, error) {
	r.mu.Lock()
	r.reads[path]++
	r.mu.Unlock()
	return r.inner.ReadFile(path)
}

func (r *countingReader) Reads(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads[path]
}

func (r *countingReader) TotalReads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.reads {
		total += n
	}
	return total
}

// mockCompiler records registrations without compiling anything.
type mockCompiler struct {
	mu    sync.Mutex
	added []string

	addErr     error
	compileErr error
}

func (m *mockCompiler) AddSchema(id string, _ validator.JSONSchema) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, id)
	return nil
}

func (m *mockCompiler) HasSchema(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.added {
		if a == id {
			return true
		}
	}
	return false
}

func (m *mockCompiler) Compile(_ string) (validator.Validator, error) {
	if m.compileErr != nil {
		return nil, m.compileErr
	}
	return &mockValidator{}, nil
}

func (m *mockCompiler) SupportedSchemaVersions() []validator.Draft {
	return []validator.Draft{validator.Draft2020_12}
}

func (m *mockCompiler) addedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.added...)
}

type mockValidator struct {
	err error
}

func (v *mockValidator) Validate(_ validator.JSONDocument) error {
	return v.err
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
