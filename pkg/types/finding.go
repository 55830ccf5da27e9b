// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// SignificantPercent is the stenosis degree at which a finding becomes
// hemodynamically significant.
const SignificantPercent = 50

// Restenosis is the restenosis status reported for a stented segment.
type Restenosis int

const (
	RestenosisUnspecified Restenosis = iota
	RestenosisAbsent
	RestenosisPresent
)

func (r Restenosis) String() string {
	switch r {
	case RestenosisAbsent:
		return "absent"
	case RestenosisPresent:
		return "present"
	default:
		return "unspecified"
	}
}

// MarshalText lets JSON and YAML encoders emit the status by name.
func (r Restenosis) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a status name produced by MarshalText.
func (r *Restenosis) UnmarshalText(text []byte) error {
	switch string(text) {
	case "absent":
		*r = RestenosisAbsent
	case "present":
		*r = RestenosisPresent
	case "unspecified", "":
		*r = RestenosisUnspecified
	default:
		return fmt.Errorf("unknown restenosis status %q", string(text))
	}
	return nil
}

// Provenance records where a finding came from.
type Provenance struct {
	// Line is the 1-based line number in the original report.
	Line int `json:"line" yaml:"line"`

	// Text is the trimmed source line.
	Text string `json:"text" yaml:"text"`
}

// Finding is the per-artery extraction record. A report yields at most one
// Finding per ArteryID.
type Finding struct {
	Artery     Artery     `json:"artery" yaml:"artery"`
	Occlusion  bool       `json:"occlusion" yaml:"occlusion"`
	Percent    *int       `json:"percent,omitempty" yaml:"percent,omitempty"`
	HasStent   bool       `json:"has_stent" yaml:"has_stent"`
	Restenosis Restenosis `json:"restenosis" yaml:"restenosis"`
	Source     Provenance `json:"source" yaml:"source"`
}

// HasPercent reports whether a stenosis percentage was associated.
func (f Finding) HasPercent() bool {
	return f.Percent != nil
}

// Significant reports whether the finding is an occlusion or a stenosis of
// at least SignificantPercent.
func (f Finding) Significant() bool {
	return f.Occlusion || (f.Percent != nil && *f.Percent >= SignificantPercent)
}

// Percent returns a pointer to v for use in Finding.Percent.
func Percent(v int) *int {
	return &v
}

// Classification is the whole-report verdict computed by the composer.
type Classification struct {
	Significant     bool `json:"significant" yaml:"significant"`
	Atherosclerotic bool `json:"atherosclerotic" yaml:"atherosclerotic"`
	Stented         bool `json:"stented" yaml:"stented"`
}

// Result bundles the diagnosis sentence with the data that produced it.
type Result struct {
	Diagnosis      string         `json:"diagnosis" yaml:"diagnosis"`
	Findings       []Finding      `json:"findings" yaml:"findings"`
	Classification Classification `json:"classification" yaml:"classification"`
}

// String returns the diagnosis sentence.
func (r Result) String() string {
	return r.Diagnosis
}
