// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract identifies per-artery findings within the free text of a
// coronary angiography report. Each non-empty line is one unit of context:
// arteries are located on the line, and occlusion, stenosis percent, stent and
// restenosis language is attributed to them by proximity.
package extract

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/angioreport/internal/catalog"
	"github.com/pdiddy/angioreport/internal/scan"
	"github.com/pdiddy/angioreport/pkg/types"
)

// Extractor turns report text into findings. It holds no per-report state
// and is safe for concurrent use.
type Extractor struct {
	catalog *catalog.Catalog
	cfg     types.ExtractionConfig
	logger  *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for debug tracing of line decisions.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Extractor over cat. A nil catalog selects the embedded one.
func New(cat *catalog.Catalog, cfg types.ExtractionConfig, opts ...Option) *Extractor {
	if cat == nil {
		cat = catalog.Default()
	}
	e := &Extractor{
		catalog: cat,
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// line is one trimmed, non-empty report line with its search surface.
type line struct {
	no      int
	text    string
	surface scan.Surface
}

// splitLines breaks text into non-empty trimmed lines, keeping 1-based line
// numbers from the original text.
func splitLines(text string) []line {
	var lines []line
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, line{
			no:      i + 1,
			text:    trimmed,
			surface: scan.Normalize(trimmed),
		})
	}
	return lines
}

// Extract returns the findings for text in canonical anatomical order. The
// first line that names an artery defines its finding; see
// types.ExtractionConfig.MergeRepeatMentions for the alternative.
func (e *Extractor) Extract(text string) []types.Finding {
	var findings []types.Finding
	recorded := make(map[types.ArteryID]int)

	for _, ln := range splitLines(text) {
		ms := e.mentions(ln.surface)
		if len(ms.arteries) == 0 {
			continue
		}

		percents := ln.surface.Percents()
		lex := e.catalog.Lexicon()
		stent := ln.surface.ContainsAny(lex.Stent)
		restenosis := restenosisStatus(ln.surface, lex)

		var fresh []int
		for _, id := range ms.arteries {
			occluded := e.occluded(ln.surface, ms, id)

			if idx, seen := recorded[id]; seen {
				if e.cfg.MergeRepeatMentions {
					findings[idx].Occlusion = findings[idx].Occlusion || occluded
					findings[idx].HasStent = findings[idx].HasStent || stent
				}
				e.logger.Debug("repeat mention", "artery", id, "line", ln.no, "merged", e.cfg.MergeRepeatMentions)
				continue
			}

			artery, _ := e.catalog.Artery(id)
			f := types.Finding{
				Artery:     artery,
				Occlusion:  occluded,
				HasStent:   stent,
				Restenosis: restenosis,
				Source:     types.Provenance{Line: ln.no, Text: ln.text},
			}
			if v, ok := e.percentFor(ln.surface, ms, id, percents); ok {
				f.Percent = types.Percent(v)
			}

			recorded[id] = len(findings)
			fresh = append(fresh, len(findings))
			findings = append(findings, f)
		}

		if e.cfg.PositionalFallback {
			e.pairByPosition(findings, fresh, ms, percents)
		}

		for _, idx := range fresh {
			f := findings[idx]
			e.logger.Debug("finding",
				"artery", f.Artery.ID,
				"line", ln.no,
				"occlusion", f.Occlusion,
				"percent", percentAttr(f.Percent),
				"stent", f.HasStent,
				"restenosis", f.Restenosis.String(),
			)
		}
	}

	catalog.SortFindings(findings)
	return findings
}

// restenosisStatus classifies restenosis language on the line. Negated
// phrases win over the bare keyword, which they contain.
func restenosisStatus(s scan.Surface, lex types.Lexicon) types.Restenosis {
	switch {
	case s.ContainsAny(lex.NoRestenosis):
		return types.RestenosisAbsent
	case s.ContainsAny(lex.Restenosis):
		return types.RestenosisPresent
	default:
		return types.RestenosisUnspecified
	}
}

// pairByPosition is the lowest-priority percent heuristic. When a line has as
// many percent tokens as arteries and a non-occluded artery is still without
// a percent, the line is read as a parallel list: every non-occluded artery
// first named on this line takes the token with its positional index, which
// replaces any windowed match so that no token is used twice.
func (e *Extractor) pairByPosition(findings []types.Finding, fresh []int, ms lineMentions, percents []scan.Percent) {
	if len(percents) == 0 || len(percents) != len(ms.arteries) {
		return
	}
	missing := false
	for _, idx := range fresh {
		if f := findings[idx]; f.Percent == nil && !f.Occlusion {
			missing = true
		}
	}
	if !missing {
		return
	}

	position := make(map[types.ArteryID]int, len(ms.arteries))
	for pos, id := range ms.byPosition() {
		position[id] = pos
	}
	for _, idx := range fresh {
		f := &findings[idx]
		if f.Occlusion {
			continue
		}
		v := percents[position[f.Artery.ID]].Value
		f.Percent = types.Percent(v)
		e.logger.Debug("positional percent", "artery", f.Artery.ID, "percent", v)
	}
}

func percentAttr(p *int) any {
	if p == nil {
		return "none"
	}
	return *p
}
