// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diagnosis turns a free-text coronary angiography report into a
// normalized diagnosis sentence. ComposeDiagnosis is the zero-configuration
// entry point; an Engine exposes the findings and accepts configuration.
package diagnosis

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/angioreport/internal/catalog"
	"github.com/pdiddy/angioreport/internal/compose"
	"github.com/pdiddy/angioreport/internal/extract"
	"github.com/pdiddy/angioreport/pkg/types"
)

// Engine couples an extractor and a composer. It is immutable and safe for
// concurrent use.
type Engine struct {
	extractor *extract.Extractor
	composer  *compose.Composer
}

type options struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
}

// Option configures New.
type Option func(*options)

// WithLogger routes extractor debug tracing to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCatalog uses cat instead of the embedded catalog or the one named by
// cfg.Extraction.CatalogPath.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *options) { o.catalog = cat }
}

// New builds an Engine from cfg.
func New(cfg types.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cat := o.catalog
	if cat == nil {
		cat = catalog.Default()
		if cfg.Extraction.CatalogPath != "" {
			loaded, err := catalog.LoadFile(cfg.Extraction.CatalogPath)
			if err != nil {
				return nil, err
			}
			cat = loaded
		}
	}

	book, err := compose.For(cfg.Output.Language)
	if err != nil {
		return nil, fmt.Errorf("configuring composer: %w", err)
	}

	return &Engine{
		extractor: extract.New(cat, cfg.Extraction, extract.WithLogger(o.logger)),
		composer:  compose.New(cat, book),
	}, nil
}

// Diagnose extracts findings from reportText and composes the diagnosis.
// Blank input yields the prompt sentence and no findings.
func (e *Engine) Diagnose(reportText string) types.Result {
	if strings.TrimSpace(reportText) == "" {
		return types.Result{
			Diagnosis: e.composer.Prompt(),
			Findings:  []types.Finding{},
		}
	}

	findings := e.extractor.Extract(reportText)
	if findings == nil {
		findings = []types.Finding{}
	}
	cl := e.composer.Classify(findings, reportText)
	return types.Result{
		Diagnosis:      e.composer.Render(findings, cl),
		Findings:       findings,
		Classification: cl,
	}
}

// ComposeDiagnosis returns only the diagnosis sentence.
func (e *Engine) ComposeDiagnosis(reportText string) string {
	return e.Diagnose(reportText).Diagnosis
}

var defaultEngine = mustDefault()

func mustDefault() *Engine {
	e, err := New(types.DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default engine: %v", err))
	}
	return e
}

// ComposeDiagnosis converts a report into a diagnosis sentence using the
// embedded catalog and the Russian phrasebook. It never fails.
func ComposeDiagnosis(reportText string) string {
	return defaultEngine.ComposeDiagnosis(reportText)
}
