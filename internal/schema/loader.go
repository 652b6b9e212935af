package schema

import (
	"bytes"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dgtlntv/design-tokens-validator/internal/fsh"
	"github.com/dgtlntv/design-tokens-validator/internal/validator"
)

// Document is a parsed JSON Schema document. It is owned by the loader's
// cache once loaded and never mutated after parse.
type Document = validator.JSONSchema

// Loader resolves schema identifiers to parsed documents. Each distinct
// filesystem path is read from disk at most once per loader lifetime.
type Loader struct {
	rootDir string
	reader  fsh.FileReader

	mu        sync.RWMutex
	cache     map[string]Document
	loadGroup singleflight.Group // Prevents duplicate loads
}

// NewLoader creates a Loader with an empty cache. rootDir is the schema root
// directory against which remote and relative identifiers are resolved.
// If reader is nil, the OS filesystem is used.
func NewLoader(rootDir string, reader fsh.FileReader) *Loader {
	if reader == nil {
		reader = fsh.NewFileReader()
	}
	return &Loader{
		rootDir: rootDir,
		reader:  reader,
		cache:   make(map[string]Document),
	}
}

// RootDir returns the schema root directory.
func (l *Loader) RootDir() string {
	return l.rootDir
}

// Resolve maps a schema identifier to a filesystem path. Remote identifiers
// are never fetched over the network: the final path segment of the URL is
// looked up inside the schema root directory instead. Absolute paths are used
// as-is, anything else resolves relative to baseDir (the schema root when
// baseDir is empty).
func (l *Loader) Resolve(id, baseDir string) string {
	if strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") {
		return filepath.Join(l.rootDir, urlBasename(id))
	}
	if strings.HasPrefix(id, "/") {
		return id
	}
	if baseDir == "" {
		baseDir = l.rootDir
	}
	return filepath.Join(baseDir, filepath.FromSlash(id))
}

// urlBasename extracts the final path segment of a URL identifier.
func urlBasename(id string) string {
	u, err := url.Parse(id)
	if err != nil {
		return path.Base(id)
	}
	return path.Base(u.Path)
}

// Load returns the parsed schema document for the given identifier, along
// with the filesystem path it resolved to. Concurrent loads of the same path
// are collapsed into a single disk read.
func (l *Loader) Load(id, baseDir string) (Document, string, error) {
	p := l.Resolve(id, baseDir)

	l.mu.RLock()
	if doc, ok := l.cache[p]; ok {
		l.mu.RUnlock()
		return doc, p, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.loadGroup.Do(p, func() (interface{}, error) {
		// Double-check cache after acquiring singleflight
		l.mu.RLock()
		if doc, ok := l.cache[p]; ok {
			l.mu.RUnlock()
			return doc, nil
		}
		l.mu.RUnlock()

		raw, rErr := l.reader.ReadFile(p)
		if rErr != nil {
			return nil, &SchemaNotFoundError{Path: p, Wrapped: rErr}
		}

		doc, uErr := validator.UnmarshalJSON(bytes.NewReader(raw))
		if uErr != nil {
			return nil, &SchemaParseError{Path: p, Wrapped: uErr}
		}

		l.mu.Lock()
		l.cache[p] = doc
		l.mu.Unlock()

		return doc, nil
	})
	if err != nil {
		return nil, p, err
	}

	return v, p, nil
}

// Cached reports whether the given resolved path has already been loaded.
func (l *Loader) Cached(path string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[path]
	return ok
}
