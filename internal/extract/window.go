// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sort"
	"strings"

	"github.com/pdiddy/angioreport/internal/catalog"
	"github.com/pdiddy/angioreport/internal/scan"
	"github.com/pdiddy/angioreport/pkg/types"
)

// mention is one located reference to an artery on a line.
type mention struct {
	artery types.ArteryID
	span   scan.Span
	kind   catalog.AliasKind
}

// lineMentions holds the arteries of one line in discovery order and every
// span that refers to them.
type lineMentions struct {
	arteries []types.ArteryID
	all      []mention
}

// of returns the mentions of id: abbreviations first, then full names, each
// group in line order.
func (m lineMentions) of(id types.ArteryID) []mention {
	var out []mention
	for _, x := range m.all {
		if x.artery == id {
			out = append(out, x)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].kind != out[j].kind {
			return out[i].kind < out[j].kind
		}
		return out[i].span.Start < out[j].span.Start
	})
	return out
}

// byPosition returns the line's arteries ordered by their first mention.
func (m lineMentions) byPosition() []types.ArteryID {
	first := make(map[types.ArteryID]int, len(m.arteries))
	for _, x := range m.all {
		if s, ok := first[x.artery]; !ok || x.span.Start < s {
			first[x.artery] = x.span.Start
		}
	}
	out := append([]types.ArteryID(nil), m.arteries...)
	sort.SliceStable(out, func(i, j int) bool {
		return first[out[i]] < first[out[j]]
	})
	return out
}

// blocked reports whether the token belongs to another artery. A token after
// the mention of id is blocked by another artery's mention between them; a
// token before it is blocked by any other artery named earlier on the line.
func (m lineMentions) blocked(id types.ArteryID, at, token scan.Span) bool {
	for _, x := range m.all {
		if x.artery == id {
			continue
		}
		if token.Start >= at.End && x.span.Start >= at.End && x.span.End <= token.Start {
			return true
		}
		if token.End <= at.Start && x.span.End <= at.Start {
			return true
		}
	}
	return false
}

// mentions locates every artery on the surface. Abbreviations are tried
// longest first as whole words, then full names as substrings; a match that
// overlaps an already claimed span is ignored.
func (e *Extractor) mentions(s scan.Surface) lineMentions {
	var ms lineMentions
	seen := make(map[types.ArteryID]bool)

	try := func(aliases []catalog.Alias, find func(string) []scan.Span) {
		for _, a := range aliases {
			for _, sp := range find(a.Term) {
				if ms.claimed(sp) {
					continue
				}
				ms.all = append(ms.all, mention{artery: a.Artery, span: sp, kind: a.Kind})
				if !seen[a.Artery] {
					seen[a.Artery] = true
					ms.arteries = append(ms.arteries, a.Artery)
				}
			}
		}
	}

	try(e.catalog.Abbreviations(), s.Words)
	try(e.catalog.Names(), s.Find)
	return ms
}

func (m lineMentions) claimed(sp scan.Span) bool {
	for _, x := range m.all {
		if x.span.Overlaps(sp) {
			return true
		}
	}
	return false
}

// occluded reports occlusion language within the occlusion window of any
// mention of id. Keywords inside a negated phrase ("без окклюзий",
// "окклюзий нет") are ignored. Without a locatable mention any remaining
// occlusion keyword on the line counts.
func (e *Extractor) occluded(s scan.Surface, ms lineMentions, id types.ArteryID) bool {
	lex := e.catalog.Lexicon()
	negated := s.FindAll(lex.NoOcclusion)

	var keywords []scan.Span
	for _, k := range s.FindAll(lex.Occlusion) {
		if !overlapsAny(k, negated) {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) == 0 {
		return false
	}
	own := ms.of(id)
	if len(own) == 0 {
		return true
	}

	w := scan.Window{Before: e.cfg.OcclusionWindow, After: e.cfg.OcclusionWindow}
	for _, m := range own {
		win := w.Around(m.span, s.Len())
		for _, k := range keywords {
			if k.Overlaps(win) && !ms.keywordBlocked(s, id, m.span, k) {
				return true
			}
		}
	}
	return false
}

// keywordBlocked is blocked for occlusion keywords. A keyword that heads a
// list of arteries joined by "и" or commas ("окклюзия ОА и ПКА") applies to
// every artery in the list.
func (m lineMentions) keywordBlocked(s scan.Surface, id types.ArteryID, at, kw scan.Span) bool {
	if kw.Start >= at.End {
		return m.blocked(id, at, kw)
	}
	if kw.End > at.Start {
		return false
	}
	between := false
	for _, x := range m.all {
		if x.artery == id {
			continue
		}
		if x.span.End <= kw.Start {
			return true
		}
		if x.span.Start >= kw.End && x.span.End <= at.Start {
			between = true
		}
	}
	return between && !m.listed(s, kw.End, at.Start)
}

// listed reports whether the surface between from (inside the keyword's
// word) and to holds nothing but artery mentions and the conjunction "и".
func (m lineMentions) listed(s scan.Surface, from, to int) bool {
	var inside []scan.Span
	for _, x := range m.all {
		if x.span.Start >= from && x.span.End <= to {
			inside = append(inside, x.span)
		}
	}
	sort.Slice(inside, func(i, j int) bool { return inside[i].Start < inside[j].Start })

	pos := from
	for _, sp := range append(inside, scan.Span{Start: to, End: to}) {
		gap := s.Slice(scan.Span{Start: pos, End: sp.Start})
		if pos == from {
			// rest of the keyword's own word
			if i := strings.IndexByte(gap, ' '); i >= 0 {
				gap = gap[i:]
			} else {
				gap = ""
			}
		}
		for _, word := range strings.Fields(gap) {
			if word != "и" {
				return false
			}
		}
		pos = sp.End
	}
	return true
}

func overlapsAny(sp scan.Span, spans []scan.Span) bool {
	for _, o := range spans {
		if sp.Overlaps(o) {
			return true
		}
	}
	return false
}

// percentFor finds the stenosis percent for id. For each mention (abbreviation
// mentions before full-name ones) the first token after the mention inside
// the window wins, else the nearest token before it. Tokens on the far side
// of another artery's mention are skipped.
func (e *Extractor) percentFor(s scan.Surface, ms lineMentions, id types.ArteryID, percents []scan.Percent) (int, bool) {
	if len(percents) == 0 {
		return 0, false
	}
	w := scan.Window{Before: e.cfg.PercentBefore, After: e.cfg.PercentAfter}

	for _, m := range ms.of(id) {
		win := w.Around(m.span, s.Len())

		for _, p := range percents {
			if p.Span.Start < m.span.End || !win.Contains(p.Span) {
				continue
			}
			if ms.blocked(id, m.span, p.Span) {
				continue
			}
			return p.Value, true
		}

		for i := len(percents) - 1; i >= 0; i-- {
			p := percents[i]
			if p.Span.End > m.span.Start || !win.Contains(p.Span) {
				continue
			}
			if ms.blocked(id, m.span, p.Span) {
				continue
			}
			return p.Value, true
		}
	}
	return 0, false
}
