// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose renders a findings collection as a single diagnosis
// sentence. Composition is a pure function of the findings, the raw report
// text and the phrasebook.
package compose

import (
	"fmt"
	"strings"

	"github.com/pdiddy/angioreport/internal/catalog"
	"github.com/pdiddy/angioreport/internal/scan"
	"github.com/pdiddy/angioreport/pkg/types"
)

// Composer renders diagnoses in one language.
type Composer struct {
	catalog *catalog.Catalog
	book    Phrasebook
}

// New creates a Composer. A nil catalog selects the embedded one.
func New(cat *catalog.Catalog, book Phrasebook) *Composer {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Composer{catalog: cat, book: book}
}

// Prompt returns the sentence shown for empty input.
func (c *Composer) Prompt() string {
	return c.book.Prompt
}

// Classify computes the whole-report verdict. When at least one artery was
// found, the atherosclerosis signal is also raised by plaque, calcification
// or irregularity language anywhere in raw. A report without findings is
// intact whatever its wording.
func (c *Composer) Classify(findings []types.Finding, raw string) types.Classification {
	var cl types.Classification
	for _, f := range findings {
		if f.Significant() {
			cl.Significant = true
		}
		if f.Occlusion || f.HasPercent() {
			cl.Atherosclerotic = true
		}
		if f.HasStent {
			cl.Stented = true
		}
	}
	if len(findings) > 0 && !cl.Atherosclerotic && scan.Normalize(raw).ContainsAny(c.catalog.Lexicon().Atherosclerosis) {
		cl.Atherosclerotic = true
	}
	return cl
}

// Compose returns the diagnosis for findings, which must already be in
// canonical order.
func (c *Composer) Compose(findings []types.Finding, raw string) string {
	return c.Render(findings, c.Classify(findings, raw))
}

// Render builds the sentence for a precomputed classification.
func (c *Composer) Render(findings []types.Finding, cl types.Classification) string {
	switch {
	case cl.Significant:
		var parts []string
		for _, f := range findings {
			if clause := c.significantClause(f); clause != "" {
				parts = append(parts, clause)
			}
		}
		return sentence(c.book.Atherosclerosis, parts)

	case cl.Atherosclerotic || cl.Stented:
		var parts []string
		for _, f := range findings {
			if f.HasStent {
				parts = append(parts, c.stentClause(f))
			}
		}
		return sentence(c.book.NonStenosing, parts)

	default:
		return c.book.Intact
	}
}

// significantClause describes one finding in a report with significant
// lesions. Occlusion outranks any percent; sub-threshold findings without a
// stent contribute nothing.
func (c *Composer) significantClause(f types.Finding) string {
	name := c.book.arteryName(f.Artery)

	var desc string
	switch {
	case f.Occlusion:
		desc = fmt.Sprintf(c.book.Occlusion, name)
	case f.Percent != nil && *f.Percent >= types.SignificantPercent:
		desc = fmt.Sprintf(c.book.Stenosis, name, *f.Percent)
	case f.HasStent:
		return c.stentClause(f)
	default:
		return ""
	}

	if f.HasStent {
		desc += ", " + fmt.Sprintf(c.book.StentSuffix, c.book.restenosis(f.Restenosis))
	}
	return desc
}

func (c *Composer) stentClause(f types.Finding) string {
	return fmt.Sprintf(c.book.Stent, c.book.arteryName(f.Artery), c.book.restenosis(f.Restenosis))
}

// sentence joins the header and clauses: "Header. A. B."
func sentence(header string, parts []string) string {
	if len(parts) == 0 {
		return header
	}
	return header + " " + strings.Join(parts, ". ") + "."
}
