// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ExtractionConfig holds the tunables of the finding extractor.
type ExtractionConfig struct {
	// OcclusionWindow is the number of runes on either side of an artery
	// mention searched for occlusion language (default 30).
	OcclusionWindow int `json:"occlusion_window" yaml:"occlusion_window" mapstructure:"occlusion_window"`

	// PercentBefore is the number of runes before an artery mention searched
	// for a percent token (default 30).
	PercentBefore int `json:"percent_before" yaml:"percent_before" mapstructure:"percent_before"`

	// PercentAfter is the number of runes after an artery mention searched
	// for a percent token (default 50).
	PercentAfter int `json:"percent_after" yaml:"percent_after" mapstructure:"percent_after"`

	// MergeRepeatMentions OR-s occlusion and stent flags from later lines into
	// the finding recorded by the first line. Off by default: the first line
	// that names an artery is the only one considered for it.
	MergeRepeatMentions bool `json:"merge_repeat_mentions" yaml:"merge_repeat_mentions" mapstructure:"merge_repeat_mentions"`

	// PositionalFallback pairs arteries and percent tokens by index when the
	// windowed search found nothing and the counts on the line are equal.
	PositionalFallback bool `json:"positional_fallback" yaml:"positional_fallback" mapstructure:"positional_fallback"`

	// CatalogPath optionally points at a YAML catalog that replaces the
	// embedded one.
	CatalogPath string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty" mapstructure:"catalog_path"`
}

// Language selects the phrasebook used to render a diagnosis.
type Language string

const (
	LanguageRussian Language = "ru"
	LanguageEnglish Language = "en"
)

// OutputFormat selects how the CLI prints a result.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Language Language     `json:"language" yaml:"language" mapstructure:"language"`
	Format   OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Extraction: ExtractionConfig{
			OcclusionWindow:    30,
			PercentBefore:      30,
			PercentAfter:       50,
			PositionalFallback: true,
		},
		Output: OutputConfig{
			Language: LanguageRussian,
			Format:   FormatText,
		},
	}
}

// Validate checks enumerated values and window sizes.
func (c Config) Validate() error {
	switch c.Output.Language {
	case LanguageRussian, LanguageEnglish:
	default:
		return fmt.Errorf("unsupported language %q: use ru or en", c.Output.Language)
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", c.Output.Format)
	}
	e := c.Extraction
	if e.OcclusionWindow < 0 || e.PercentBefore < 0 || e.PercentAfter < 0 {
		return fmt.Errorf("window sizes must be non-negative (occlusion=%d, before=%d, after=%d)",
			e.OcclusionWindow, e.PercentBefore, e.PercentAfter)
	}
	return nil
}
