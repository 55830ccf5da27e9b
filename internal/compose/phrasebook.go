// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"fmt"

	"github.com/pdiddy/angioreport/pkg/types"
)

// Phrasebook holds the fixed sentences and clause templates of one output
// language.
type Phrasebook struct {
	Prompt          string
	Intact          string
	Atherosclerosis string
	NonStenosing    string

	// Occlusion, Stenosis and Stent take the artery name as first argument;
	// Stenosis adds the percent, Stent adds the restenosis phrase.
	Occlusion string
	Stenosis  string
	Stent     string

	// StentSuffix is appended with ", " after a significant clause and
	// takes the restenosis phrase.
	StentSuffix string

	RestenosisAbsent      string
	RestenosisPresent     string
	RestenosisUnspecified string

	// name picks the artery form embedded in clauses.
	name func(types.Artery) string
}

// Russian is the default phrasebook.
var Russian = Phrasebook{
	Prompt:                "Введите заключение коронарографии.",
	Intact:                "Интактные коронарные артерии.",
	Atherosclerosis:       "Атеросклероз коронарных артерий.",
	NonStenosing:          "Нестенозирующий атеросклероз коронарных артерий.",
	Occlusion:             "Окклюзия %s",
	Stenosis:              "Стеноз %s %d%%",
	Stent:                 "Стент %s %s",
	StentSuffix:           "стент %s",
	RestenosisAbsent:      "без рестеноза",
	RestenosisPresent:     "с рестенозом",
	RestenosisUnspecified: "(состояние не уточнено)",
	name: func(a types.Artery) string {
		if a.Genitive != "" {
			return a.Genitive
		}
		return a.Name
	},
}

// English renders the same diagnosis for readers without Russian.
var English = Phrasebook{
	Prompt:                "Enter the coronary angiography report.",
	Intact:                "Intact coronary arteries.",
	Atherosclerosis:       "Atherosclerosis of coronary arteries.",
	NonStenosing:          "Non-stenosing atherosclerosis of coronary arteries.",
	Occlusion:             "Occlusion of the %s",
	Stenosis:              "Stenosis of the %s %d%%",
	Stent:                 "Stent of the %s %s",
	StentSuffix:           "stent %s",
	RestenosisAbsent:      "without restenosis",
	RestenosisPresent:     "with restenosis",
	RestenosisUnspecified: "(status unspecified)",
	name: func(a types.Artery) string {
		if a.English != "" {
			return a.English
		}
		return a.Name
	},
}

// For returns the phrasebook of lang.
func For(lang types.Language) (Phrasebook, error) {
	switch lang {
	case types.LanguageRussian, "":
		return Russian, nil
	case types.LanguageEnglish:
		return English, nil
	default:
		return Phrasebook{}, fmt.Errorf("no phrasebook for language %q", lang)
	}
}

func (p Phrasebook) restenosis(r types.Restenosis) string {
	switch r {
	case types.RestenosisAbsent:
		return p.RestenosisAbsent
	case types.RestenosisPresent:
		return p.RestenosisPresent
	default:
		return p.RestenosisUnspecified
	}
}

func (p Phrasebook) arteryName(a types.Artery) string {
	if p.name == nil {
		return a.Name
	}
	return p.name(a)
}
