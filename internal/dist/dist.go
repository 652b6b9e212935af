// Package dist assembles the distributable layout: the shipped schemas, the
// vendored specification documents and the packaged skill and agent
// manifests, copied into a clean dist directory.
package dist

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Layout maps source directories (relative to the repo root) to the suffixes
// of files they contribute to the distribution.
var layout = []struct {
	dir      string
	suffixes []string
}{
	{dir: "schemas", suffixes: []string{".json"}},
	{dir: "spec", suffixes: []string{".md"}},
	{dir: "skills", suffixes: []string{".md"}},
	{dir: "agents", suffixes: []string{".md"}},
}

// Builder copies distribution artifacts from a source root into a dist
// directory, cleaning it first.
type Builder struct {
	rootDir string
	distDir string
	logger  *slog.Logger
}

// NewBuilder creates a Builder. rootDir is the directory containing the
// schemas/, spec/, skills/ and agents/ trees; distDir is where the layout is
// assembled.
func NewBuilder(rootDir, distDir string, logger *slog.Logger) *Builder {
	return &Builder{
		rootDir: rootDir,
		distDir: distDir,
		logger:  logger,
	}
}

// Build cleans the dist directory and copies every artifact into it.
// It returns the number of files copied.
func (b *Builder) Build(ctx context.Context) (int, error) {
	if err := b.ensureDistDir(); err != nil {
		return 0, err
	}

	var count int
	for _, entry := range layout {
		n, err := b.copyTree(ctx, entry.dir, entry.suffixes)
		if err != nil {
			return count, err
		}
		count += n
	}

	b.logger.Debug("distribution built", "dir", b.distDir, "files", count)
	return count, nil
}

// copyTree copies all files below rootDir/name with one of the given
// suffixes into distDir/name, preserving relative paths. A missing source
// tree is not an error: the layout tolerates repos without agents, say.
func (b *Builder) copyTree(ctx context.Context, name string, suffixes []string) (int, error) {
	srcRoot := filepath.Join(b.rootDir, name)
	if _, err := os.Stat(srcRoot); os.IsNotExist(err) {
		return 0, nil
	}

	var count int
	err := filepath.Walk(srcRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if cErr := ctx.Err(); cErr != nil {
			return cErr
		}
		if info.IsDir() || !hasAnySuffix(path, suffixes) {
			return nil
		}

		rel, rErr := filepath.Rel(srcRoot, path)
		if rErr != nil {
			return rErr
		}

		dst := filepath.Join(b.distDir, name, rel)
		if cErr := copyFile(path, dst); cErr != nil {
			return fmt.Errorf("failed to copy %s: %w", path, cErr)
		}
		count++
		return nil
	})
	return count, err
}

// ensureDistDir prepares a clean distribution directory.
func (b *Builder) ensureDistDir() error {
	if err := os.RemoveAll(b.distDir); err != nil {
		return fmt.Errorf("failed to clean dist directory: %w", err)
	}
	for _, entry := range layout {
		if err := os.MkdirAll(filepath.Join(b.distDir, entry.dir), 0o755); err != nil {
			return fmt.Errorf("failed to create dist subdirectory %s: %w", entry.dir, err)
		}
	}
	return nil
}

func hasAnySuffix(path string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
