// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog holds the coronary artery reference table and the keyword
// lexicon used by the extractor. The default catalog is embedded and parsed
// once at process start; a replacement can be loaded from a YAML file and is
// validated against an embedded JSON Schema before use. A Catalog is never
// mutated after construction and is safe for concurrent use.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/angioreport/internal/scan"
	"github.com/pdiddy/angioreport/pkg/types"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

//go:embed catalog.schema.json
var schemaJSON []byte

const schemaURL = "catalog.schema.json"

var (
	catalogSchema  = mustCompileSchema()
	defaultCatalog = mustParse(embeddedCatalog)
)

// AliasKind tells how an alias is matched.
type AliasKind int

const (
	// KindAbbreviation aliases match as whole words.
	KindAbbreviation AliasKind = iota
	// KindName aliases (nominative or genitive full names) match as substrings.
	KindName
)

// Alias is a folded search term that denotes one artery.
type Alias struct {
	Term   string
	Artery types.ArteryID
	Kind   AliasKind
}

// Catalog is the immutable artery table.
type Catalog struct {
	arteries      []types.Artery
	byID          map[types.ArteryID]int
	abbreviations []Alias
	names         []Alias
	lexicon       types.Lexicon
}

// file is the on-disk layout of a catalog.
type file struct {
	Arteries []types.Artery `yaml:"arteries"`
	Lexicon  types.Lexicon  `yaml:"lexicon"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultCatalog
}

// LoadFile reads, validates and parses a catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse validates YAML catalog data against the schema and builds a Catalog.
func Parse(data []byte) (*Catalog, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return build(f)
}

func validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing catalog: %w", err)
	}
	// Round-trip through JSON so the validator sees the value types it expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting catalog for validation: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("converting catalog for validation: %w", err)
	}
	if err := catalogSchema.Validate(v); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}

func build(f file) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[types.ArteryID]int, len(f.Arteries)),
	}

	owner := make(map[string]types.ArteryID)
	claim := func(term string, id types.ArteryID, kind AliasKind) error {
		folded := scan.Fold(term)
		if folded == "" {
			return fmt.Errorf("artery %s: alias %q is empty after normalization", id, term)
		}
		if prev, ok := owner[folded]; ok {
			if prev != id {
				return fmt.Errorf("alias %q refers to both %s and %s", term, prev, id)
			}
			return nil
		}
		owner[folded] = id
		alias := Alias{Term: folded, Artery: id, Kind: kind}
		if kind == KindAbbreviation {
			c.abbreviations = append(c.abbreviations, alias)
		} else {
			c.names = append(c.names, alias)
		}
		return nil
	}

	for _, a := range f.Arteries {
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate artery id %q", a.ID)
		}
		c.byID[a.ID] = len(c.arteries)
		c.arteries = append(c.arteries, a)

		for _, abbr := range a.Abbreviations {
			if err := claim(abbr, a.ID, KindAbbreviation); err != nil {
				return nil, err
			}
		}
		for _, name := range []string{a.Name, a.Genitive} {
			if err := claim(name, a.ID, KindName); err != nil {
				return nil, err
			}
		}
	}

	sortLongestFirst(c.abbreviations)
	sortLongestFirst(c.names)

	c.lexicon = types.Lexicon{
		Occlusion:       foldAll(f.Lexicon.Occlusion),
		NoOcclusion:     foldAll(f.Lexicon.NoOcclusion),
		Stent:           foldAll(f.Lexicon.Stent),
		Restenosis:      foldAll(f.Lexicon.Restenosis),
		NoRestenosis:    foldAll(f.Lexicon.NoRestenosis),
		Atherosclerosis: foldAll(f.Lexicon.Atherosclerosis),
	}
	return c, nil
}

// sortLongestFirst orders aliases by descending rune length so that a longer
// alias claims its span before a shorter one nested in it.
func sortLongestFirst(aliases []Alias) {
	sort.SliceStable(aliases, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(aliases[i].Term), utf8.RuneCountInString(aliases[j].Term)
		if li != lj {
			return li > lj
		}
		return aliases[i].Term < aliases[j].Term
	})
}

func foldAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if f := scan.Fold(t); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Artery returns the entry for id.
func (c *Catalog) Artery(id types.ArteryID) (types.Artery, bool) {
	i, ok := c.byID[id]
	if !ok {
		return types.Artery{}, false
	}
	return c.arteries[i], true
}

// Arteries returns all entries in canonical order.
func (c *Catalog) Arteries() []types.Artery {
	out := make([]types.Artery, len(c.arteries))
	copy(out, c.arteries)
	sort.SliceStable(out, func(i, j int) bool {
		return Rank(out[i]) < Rank(out[j])
	})
	return out
}

// Abbreviations returns the whole-word aliases, longest first.
func (c *Catalog) Abbreviations() []Alias {
	return c.abbreviations
}

// Names returns the full-name aliases, longest first.
func (c *Catalog) Names() []Alias {
	return c.names
}

// Lexicon returns the folded keyword roots.
func (c *Catalog) Lexicon() types.Lexicon {
	return c.lexicon
}

// Rank returns the sort key of an artery: its order, or math.MaxInt when
// unranked.
func Rank(a types.Artery) int {
	if a.Order <= 0 {
		return math.MaxInt
	}
	return a.Order
}

// SortFindings orders findings canonically; unranked arteries keep their
// relative order at the end.
func SortFindings(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return Rank(findings[i].Artery) < Rank(findings[j].Artery)
	})
}

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("loading catalog schema: %v", err))
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("compiling catalog schema: %v", err))
	}
	return schema
}

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}
