package dataset

import (
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/researchos/dataset-builder/config"
	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/level"
	"github.com/researchos/dataset-builder/logger"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build and query events.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// WithVerbosity sets the CLI verbosity used to gate per-row and dump logging.
func WithVerbosity(verbosity int) Option {
	return func(b *Builder) {
		b.verbosity = verbosity
	}
}

// WithStateHook registers fn to be called after every state transition.
func WithStateHook(fn func(State)) Option {
	return func(b *Builder) {
		b.hooks = append(b.hooks, fn)
	}
}

// Builder runs the construction pipeline for one dataset:
// ingest → flatten → expand → validate. A Builder builds once; it owns the
// identity registry used during ingestion, so builders never interfere with
// each other. A Builder itself is not safe for concurrent use.
type Builder struct {
	cfg       *config.Config
	hierarchy *level.Hierarchy
	logger    *zap.SugaredLogger
	verbosity int
	hooks     []func(State)

	state   State
	mapping *Mapping
}

// NewBuilder validates cfg and prepares a build.
func NewBuilder(cfg *config.Config, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, err := cfg.Hierarchy()
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:       cfg,
		hierarchy: h,
		state:     StateUnbuilt,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logger.ComponentLogger("dataset")
	}
	return b, nil
}

// State returns the current lifecycle stage.
func (b *Builder) State() State {
	return b.state
}

// Hierarchy returns the level hierarchy the builder was configured with.
func (b *Builder) Hierarchy() *level.Hierarchy {
	return b.hierarchy
}

// Mapping returns the nested mapping produced by Build, or nil if the build
// did not get that far.
func (b *Builder) Mapping() *Mapping {
	return b.mapping
}

// Build runs the pipeline. On any failure the builder moves to StateFailed
// and no dataset is returned.
func (b *Builder) Build() (*Dataset, error) {
	if b.state != StateUnbuilt {
		return nil, errors.AssertionFailedf("dataset builder already used (state %s)", b.state)
	}

	start := time.Now()
	ds, err := b.build()
	if err != nil {
		b.transition(StateFailed)
		b.logger.Warnw("Dataset build failed",
			logger.FieldError, err.Error(),
			logger.FieldErrorType, errors.Classify(err),
		)
		return nil, err
	}

	ds.stats.Duration = time.Since(start)
	b.logger.Infow("Dataset built",
		logger.FieldNodes, ds.stats.Nodes,
		logger.FieldRoots, ds.stats.Roots,
		logger.FieldDurationMS, ds.stats.Duration.Milliseconds(),
	)
	return ds, nil
}

func (b *Builder) build() (*Dataset, error) {
	path := b.cfg.DataObjectsTablePath
	if err := checkSource(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSourceNotFound, "open %s: %v", path, err)
	}
	defer f.Close()

	b.transition(StateIngesting)
	raw, err := Ingest(f, b.hierarchy, IngestOptions{
		HeaderRows: b.cfg.NumHeaderRows,
		Delimiter:  b.cfg.DelimiterRune(),
		LazyQuotes: b.cfg.LazyQuotes,
		Logger:     logger.ChildLogger(b.logger.Named("ingest"), logger.FieldFile, path),
		Verbosity:  b.verbosity,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "ingest %s", path)
	}
	b.transition(StateRawGraphReady)

	b.mapping = Flatten(raw.Graph)
	b.transition(StateFlattened)
	if logger.ShouldLogAll(b.verbosity) {
		if dump, err := json.Marshal(b.mapping); err == nil {
			b.logger.Debugw("Nested mapping", "mapping", string(dump))
		}
	}

	tree, err := Expand(b.mapping, b.hierarchy)
	if err != nil {
		return nil, err
	}
	b.transition(StateExpanded)

	if err := ValidateTree(tree, b.hierarchy); err != nil {
		return nil, err
	}
	b.transition(StateValidated)

	ds := newDataset(b.cfg, b.hierarchy, newTree(tree), b.logger)
	ds.stats.Rows = raw.Rows
	ds.stats.SkippedRows = raw.Skipped
	ds.stats.RawNodes = raw.Graph.Len()
	ds.stats.RawEdges = raw.Graph.EdgeCount()
	b.transition(StateQueryable)
	return ds, nil
}

func (b *Builder) transition(to State) {
	b.logger.Debugw("Build state", logger.FieldState, to.String(), "from", b.state.String())
	b.state = to
	for _, fn := range b.hooks {
		fn(to)
	}
}

func checkSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WithHint(
			errors.Wrapf(errors.ErrSourceNotFound, "data objects table %s", path),
			"check data_objects_table_path in the dataset config",
		)
	}
	if info.IsDir() {
		return errors.Wrapf(errors.ErrSourceNotFound, "data objects table %s is a directory", path)
	}
	return nil
}

// Build constructs a queryable dataset from cfg.
func Build(cfg *config.Config, opts ...Option) (*Dataset, error) {
	b, err := NewBuilder(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// BuildFromFile loads a dataset config file and builds the dataset.
func BuildFromFile(configPath string, opts ...Option) (*Dataset, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	return Build(cfg, opts...)
}

// BuildFromMap builds a dataset from an in-memory config mapping.
func BuildFromMap(m map[string]interface{}, opts ...Option) (*Dataset, error) {
	cfg, err := config.FromMap(m)
	if err != nil {
		return nil, err
	}
	return Build(cfg, opts...)
}
