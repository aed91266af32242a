package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nerrad567/itho-discovery/internal/catalog"
	"github.com/nerrad567/itho-discovery/internal/discovery"
	"github.com/nerrad567/itho-discovery/internal/infrastructure/config"
	"github.com/nerrad567/itho-discovery/internal/infrastructure/database"
	"github.com/nerrad567/itho-discovery/internal/mdbtools"
)

// Logger defines the logging interface for the pipeline.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Extractor is the extraction boundary the pipeline drives. Satisfied by
// *mdbtools.Adapter; narrowed to an interface so tests can substitute a
// canned extraction.
type Extractor interface {
	Schema(ctx context.Context) (string, error)
	Tables(ctx context.Context) ([]string, error)
	ExportTable(ctx context.Context, table string) (string, error)
	Close() error
}

// Pipeline runs the full conversion: extract the legacy export, rebuild it
// in the relational store, load the versioned catalog, and synthesize
// sensor descriptors on demand.
//
// A Pipeline is single-use and strictly sequential: construct, Run once,
// query, Close. Nothing runs concurrently; the store connection has exactly
// one caller at a time.
type Pipeline struct {
	cfg       *config.Config
	logger    Logger
	extractor Extractor

	store   *database.Store
	catalog *catalog.Catalog
	synth   *discovery.Synthesizer
}

// New creates a Pipeline for the given legacy export file.
//
// Tool availability and input readability are checked here, before any
// work starts: a missing mdbtools binary or unreadable input fails fast
// with mdbtools.ErrToolNotFound or mdbtools.ErrInputFile.
func New(cfg *config.Config, inputPath string, logger Logger) (*Pipeline, error) {
	adapter, err := mdbtools.New(cfg.MDBTools, inputPath)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		adapter.SetLogger(logger)
	}
	return NewWithExtractor(cfg, adapter, logger), nil
}

// NewWithExtractor creates a Pipeline driving the given extractor.
func NewWithExtractor(cfg *config.Config, extractor Extractor, logger Logger) *Pipeline {
	if logger == nil {
		logger = noopLogger{}
	}

	device := discovery.Device{
		ID:                  cfg.Device.ID,
		StateTopic:          cfg.Device.StatusTopic(),
		AvailabilityTopic:   cfg.Device.AvailabilityTopic(),
		PayloadAvailable:    config.PayloadAvailable,
		PayloadNotAvailable: config.PayloadNotAvailable,
	}

	return &Pipeline{
		cfg:       cfg,
		logger:    logger,
		extractor: extractor,
		synth:     discovery.NewSynthesizer(device, discovery.DefaultRegistry()),
	}
}

// Run executes the conversion end to end.
//
// Steps, in order: export the schema and apply it in one commit, enumerate
// tables, export every table and apply all inserts in a second commit,
// then load the versioned catalog. Any failure aborts the run; there is no
// partial catalog.
func (p *Pipeline) Run(ctx context.Context) error {
	store, err := database.Open(ctx)
	if err != nil {
		return err
	}
	p.store = store

	schema, err := p.extractor.Schema(ctx)
	if err != nil {
		return err
	}
	if err := store.Apply(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	tables, err := p.extractor.Tables(ctx)
	if err != nil {
		return err
	}
	p.logger.Info("enumerated export tables", "count", len(tables))

	scripts := make([]string, 0, len(tables))
	for _, table := range tables {
		script, err := p.extractor.ExportTable(ctx, table)
		if err != nil {
			return err
		}
		scripts = append(scripts, script)
	}
	if err := store.Apply(ctx, scripts...); err != nil {
		return fmt.Errorf("applying table exports: %w", err)
	}

	loader := catalog.NewLoader(store, p.logger, p.cfg.Loader.CarryOverTables)
	c, err := loader.Load(ctx, tables)
	if err != nil {
		return err
	}
	p.catalog = c

	p.logger.Info("catalog loaded", "versions", len(c.Versions))
	return nil
}

// Versions returns the discovered firmware versions, ascending. Empty
// before Run.
func (p *Pipeline) Versions() []int {
	if p.catalog == nil {
		return nil
	}
	return p.catalog.Versions
}

// Parameters returns the ordered parameter sequence for a version.
func (p *Pipeline) Parameters(version int) ([]catalog.Parameter, error) {
	if err := p.checkVersion(version); err != nil {
		return nil, err
	}
	return p.catalog.Parameters[version], nil
}

// Datalabels returns the ordered datalabel sequence for a version.
func (p *Pipeline) Datalabels(version int) ([]catalog.Datalabel, error) {
	if err := p.checkVersion(version); err != nil {
		return nil, err
	}
	return p.catalog.Datalabels[version], nil
}

// Sensors synthesizes the sensor discovery descriptors for a version's
// datalabels, preserving catalog order.
func (p *Pipeline) Sensors(version int) ([]discovery.Sensor, error) {
	datalabels, err := p.Datalabels(version)
	if err != nil {
		return nil, err
	}
	return p.synth.Sensors(datalabels)
}

func (p *Pipeline) checkVersion(version int) error {
	if p.catalog != nil {
		for _, v := range p.catalog.Versions {
			if v == version {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownVersion, version)
}

// Close releases the extractor's working directory and the store. Both are
// attempted regardless of individual failures.
func (p *Pipeline) Close() error {
	var errs []error
	if err := p.extractor.Close(); err != nil {
		errs = append(errs, err)
	}
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			errs = append(errs, err)
		}
		p.store = nil
	}
	return errors.Join(errs...)
}
