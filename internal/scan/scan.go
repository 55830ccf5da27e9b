// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan turns a report line into a normalized search surface and
// locates terms, percent tokens and context windows on it. All positions are
// rune offsets into the surface, never into the raw line.
package scan

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Span is a half-open rune range [Start, End) on a Surface.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether the two spans share at least one rune.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Contains reports whether o lies entirely inside s.
func (s Span) Contains(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Window describes how far a context search reaches on either side of a
// mention.
type Window struct {
	Before int
	After  int
}

// Around returns the window centred on sp, clamped to [0, limit].
func (w Window) Around(sp Span, limit int) Span {
	start := sp.Start - w.Before
	if start < 0 {
		start = 0
	}
	end := sp.End + w.After
	if end > limit {
		end = limit
	}
	return Span{Start: start, End: end}
}

// Percent is a "<number>%" token found on a surface.
type Percent struct {
	Value int
	Span  Span
}

// Surface is a normalized line: lower-cased Russian text with punctuation
// replaced by single spaces. '%' and a decimal separator between two digits
// survive normalization.
type Surface struct {
	runes []rune
}

// Normalize builds the search surface for s.
func Normalize(s string) Surface {
	return Surface{runes: []rune(Fold(s))}
}

// Fold applies the surface normalization to s and returns it as a string.
// Catalog terms go through Fold so that they compare equal to surface text.
func Fold(s string) string {
	s = norm.NFC.String(s)
	// A Caser keeps state between calls and must not be shared.
	s = cases.Lower(language.Russian).String(s)

	in := []rune(s)
	out := make([]rune, 0, len(in))
	pendingSpace := false
	for i, r := range in {
		switch {
		case r == 'ё':
			r = 'е'
		case unicode.Is(unicode.Mn, r):
			// stress marks and other combining leftovers
			continue
		case r == '%':
		case (r == '.' || r == ',') && i > 0 && i+1 < len(in) && isDigit(in[i-1]) && isDigit(in[i+1]):
			r = '.'
		case unicode.IsLetter(r) || unicode.IsDigit(r):
		default:
			pendingSpace = true
			continue
		}
		if pendingSpace && len(out) > 0 {
			out = append(out, ' ')
		}
		pendingSpace = false
		out = append(out, r)
	}
	return string(out)
}

// String returns the surface text.
func (s Surface) String() string {
	return string(s.runes)
}

// Len returns the surface length in runes.
func (s Surface) Len() int {
	return len(s.runes)
}

// Slice returns the text under sp.
func (s Surface) Slice(sp Span) string {
	return string(s.runes[sp.Start:sp.End])
}

// Find returns every occurrence of the folded term as a substring.
func (s Surface) Find(term string) []Span {
	return s.find([]rune(term), false)
}

// Words returns every whole-word occurrence of the folded term: the match
// must not be preceded or followed by a letter or digit.
func (s Surface) Words(term string) []Span {
	return s.find([]rune(term), true)
}

// Contains reports whether the folded term occurs anywhere on the surface.
func (s Surface) Contains(term string) bool {
	return term != "" && strings.Contains(string(s.runes), term)
}

// ContainsAny reports whether any of the folded terms occurs on the surface.
func (s Surface) ContainsAny(terms []string) bool {
	for _, t := range terms {
		if s.Contains(t) {
			return true
		}
	}
	return false
}

// FindAll returns the occurrences of every term, in surface order.
func (s Surface) FindAll(terms []string) []Span {
	var spans []Span
	for _, t := range terms {
		spans = append(spans, s.Find(t)...)
	}
	sortSpans(spans)
	return spans
}

func (s Surface) find(term []rune, wholeWord bool) []Span {
	n, m := len(s.runes), len(term)
	if m == 0 || m > n {
		return nil
	}
	var spans []Span
	for i := 0; i+m <= n; i++ {
		if !s.matchAt(i, term) {
			continue
		}
		end := i + m
		if wholeWord {
			if i > 0 && isWordRune(s.runes[i-1]) {
				continue
			}
			if end < n && isWordRune(s.runes[end]) {
				continue
			}
		}
		spans = append(spans, Span{Start: i, End: end})
		i = end - 1
	}
	return spans
}

func (s Surface) matchAt(i int, term []rune) bool {
	for j, r := range term {
		if s.runes[i+j] != r {
			return false
		}
	}
	return true
}

// Percents returns the "<number>%" tokens on the surface in order. A space
// between the number and the sign is allowed; the number must not be glued
// to a preceding letter. Decimal values are rounded, values above 100 are
// dropped.
func (s Surface) Percents() []Percent {
	var out []Percent
	n := len(s.runes)
	for i := 0; i < n; i++ {
		if !isDigit(s.runes[i]) {
			continue
		}
		if i > 0 && (isDigit(s.runes[i-1]) || s.runes[i-1] == '.' || unicode.IsLetter(s.runes[i-1])) {
			continue
		}
		j := i
		for j < n && isDigit(s.runes[j]) {
			j++
		}
		if j+1 < n && s.runes[j] == '.' && isDigit(s.runes[j+1]) {
			j++
			for j < n && isDigit(s.runes[j]) {
				j++
			}
		}
		k := j
		for k < n && s.runes[k] == ' ' {
			k++
		}
		if k >= n || s.runes[k] != '%' {
			i = j - 1
			continue
		}
		if v, ok := parsePercent(string(s.runes[i:j])); ok {
			out = append(out, Percent{Value: v, Span: Span{Start: i, End: k + 1}})
		}
		i = k
	}
	return out
}

func parsePercent(num string) (int, bool) {
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	v := int(math.Round(f))
	if v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func sortSpans(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
}
