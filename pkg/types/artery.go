// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ArteryID identifies a coronary artery in the catalog.
type ArteryID string

// Canonical arteries in anatomical order.
const (
	LeftMain           ArteryID = "left_main"
	AnteriorDescending ArteryID = "anterior_descending"
	Diagonal           ArteryID = "diagonal"
	Circumflex         ArteryID = "circumflex"
	ObtuseMarginal     ArteryID = "obtuse_marginal"
	RightCoronary      ArteryID = "right_coronary"
	PosteriorDesc      ArteryID = "posterior_descending"
	LeftVentricular    ArteryID = "left_ventricular"
	Intermediate       ArteryID = "intermediate"
)

// Artery is one catalog entry.
type Artery struct {
	// ID is the stable identifier used to key findings.
	ID ArteryID `json:"id" yaml:"id"`

	// Name is the full descriptive name in the nominative case
	// (e.g. "передняя нисходящая артерия").
	Name string `json:"name" yaml:"name"`

	// Genitive is the inflected form embedded in diagnosis sentences
	// (e.g. "передней нисходящей артерии").
	Genitive string `json:"genitive" yaml:"genitive"`

	// English is the name used by the English phrasebook.
	English string `json:"english" yaml:"english"`

	// Abbreviations are the short forms that refer to this artery.
	Abbreviations []string `json:"abbreviations,omitempty" yaml:"abbreviations,omitempty"`

	// Order is the 1-based anatomical rank. Zero means unranked; unranked
	// arteries sort after all ranked ones.
	Order int `json:"order" yaml:"order"`
}

// Lexicon holds the keyword roots the extractor looks for. All entries are
// matched as substrings of the normalized line.
type Lexicon struct {
	Occlusion       []string `json:"occlusion" yaml:"occlusion"`
	NoOcclusion     []string `json:"no_occlusion,omitempty" yaml:"no_occlusion,omitempty"`
	Stent           []string `json:"stent" yaml:"stent"`
	Restenosis      []string `json:"restenosis" yaml:"restenosis"`
	NoRestenosis    []string `json:"no_restenosis" yaml:"no_restenosis"`
	Atherosclerosis []string `json:"atherosclerosis" yaml:"atherosclerosis"`
}
