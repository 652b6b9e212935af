package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dgtlntv/design-tokens-validator/internal/dist"
	"github.com/dgtlntv/design-tokens-validator/internal/fsh"
	"github.com/dgtlntv/design-tokens-validator/internal/report"
	"github.com/dgtlntv/design-tokens-validator/internal/schema"
	"github.com/dgtlntv/design-tokens-validator/internal/skills"
	"github.com/dgtlntv/design-tokens-validator/internal/validator"
)

// ErrValidationFailed signals that at least one document failed validation.
// The per-file diagnostics have already been printed when it is returned.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOptions carries the per-invocation knobs for a validation run.
type ValidateOptions struct {
	// Output selects the diagnostic renderer; empty means the configured default.
	Output string
	// UseColour enables coloured console markers.
	UseColour bool
}

// Manager defines the business logic for design token validation operations.
type Manager interface {
	Validate(ctx context.Context, kind schema.Kind, targets []string, opts ValidateOptions) (bool, error)
	WatchValidation(ctx context.Context, kind schema.Kind, targets []string, opts ValidateOptions,
		readyChan chan<- struct{}) error
	BuildDist(ctx context.Context) (int, error)
	Skills() ([]skills.Skill, error)
	Agents() ([]skills.Agent, error)
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Validate(ctx context.Context, kind schema.Kind, targets []string,
	opts ValidateOptions,
) (bool, error) {
	return l.check().Validate(ctx, kind, targets, opts)
}

func (l *LazyManager) WatchValidation(ctx context.Context, kind schema.Kind, targets []string,
	opts ValidateOptions, readyChan chan<- struct{},
) error {
	return l.check().WatchValidation(ctx, kind, targets, opts, readyChan)
}

func (l *LazyManager) BuildDist(ctx context.Context) (int, error) {
	return l.check().BuildDist(ctx)
}

func (l *LazyManager) Skills() ([]skills.Skill, error) {
	return l.check().Skills()
}

func (l *LazyManager) Agents() ([]skills.Agent, error) {
	return l.check().Agents()
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger        *slog.Logger
	schemaDir     string
	workDir       string
	defaultOutput string
	reader        fsh.FileReader
	discovery     *skills.Discovery
	builder       *dist.Builder
	stdout        io.Writer
}

// NewCLIManager wires up a CLIManager. workDir is where target discovery
// starts; defaultOutput is the renderer used when a command does not select
// one explicitly.
func NewCLIManager(
	logger *slog.Logger,
	schemaDir string,
	workDir string,
	defaultOutput string,
	reader fsh.FileReader,
	discovery *skills.Discovery,
	builder *dist.Builder,
	stdout io.Writer,
) *CLIManager {
	return &CLIManager{
		logger:        logger,
		schemaDir:     schemaDir,
		workDir:       workDir,
		defaultOutput: defaultOutput,
		reader:        reader,
		discovery:     discovery,
		builder:       builder,
		stdout:        stdout,
	}
}

// Validate runs one validation batch for the kind. With no explicit targets,
// files are discovered by the kind's glob pattern below the working
// directory. It returns whether every target was valid; schema-side failures
// come back as errors since no meaningful result exists without a compiled
// schema.
func (m *CLIManager) Validate(_ context.Context, kind schema.Kind, targets []string,
	opts ValidateOptions,
) (bool, error) {
	output := opts.Output
	if output == "" {
		output = m.defaultOutput
	}
	renderer, err := report.New(output, opts.UseColour)
	if err != nil {
		return false, err
	}

	if len(targets) == 0 {
		targets, err = schema.DiscoverTargets(m.workDir, kind)
		if err != nil {
			return false, err
		}
		if len(targets) == 0 {
			m.logger.Warn("no files matched", "pattern", kind.Pattern(), "dir", m.workDir)
		}
	}

	// A fresh loader and compiler per run: schemas on disk may have changed
	// between watch-mode reruns, and a compiler compiles one root only.
	loader := schema.NewLoader(m.schemaDir, m.reader)
	runner := schema.NewRunner(loader, validator.NewSanthoshCompiler(), m.reader, m.logger)

	v, err := runner.Compile(kind)
	if err != nil {
		return false, err
	}

	results, allValid := runner.Run(v, targets, func(res *schema.Result) {
		renderer.Result(m.stdout, res)
	})

	if sErr := renderer.Summary(m.stdout, results); sErr != nil {
		return allValid, sErr
	}

	return allValid, nil
}

// WatchValidation runs an initial validation batch, then watches the schema
// root and the working directory, rerunning the batch whenever a JSON file
// changes. It blocks until the context is cancelled.
func (m *CLIManager) WatchValidation(ctx context.Context, kind schema.Kind, targets []string,
	opts ValidateOptions, readyChan chan<- struct{},
) error {
	run := func() {
		ok, err := m.Validate(ctx, kind, targets, opts)
		switch {
		case err != nil:
			m.logger.Error("validation run failed", "error", err)
		case !ok:
			m.logger.Debug("validation found invalid documents")
		}
	}

	run()

	watcher := schema.NewWatcher(m.logger, m.schemaDir, m.workDir)
	if readyChan != nil {
		go func() {
			<-watcher.Ready
			close(readyChan)
		}()
	}

	return watcher.Watch(ctx, func(path string) {
		m.logger.Info("change detected", "path", path)
		run()
	})
}

// BuildDist assembles the distributable layout.
func (m *CLIManager) BuildDist(ctx context.Context) (int, error) {
	return m.builder.Build(ctx)
}

// Skills returns the packaged skills.
func (m *CLIManager) Skills() ([]skills.Skill, error) {
	return m.discovery.Skills()
}

// Agents returns the packaged agent manifests.
func (m *CLIManager) Agents() ([]skills.Agent, error) {
	return m.discovery.Agents()
}
