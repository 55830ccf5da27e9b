// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package diagnosis

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/angioreport/pkg/types"
)

func TestComposeDiagnosisScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "Введите заключение коронарографии.",
		},
		{
			name: "whitespace only",
			in:   " \n\t ",
			want: "Введите заключение коронарографии.",
		},
		{
			name: "significant stenosis",
			in:   "ПНА: стеноз 80%",
			want: "Атеросклероз коронарных артерий. Стеноз передней нисходящей артерии 80%.",
		},
		{
			name: "occlusion",
			in:   "ОА: окклюзия",
			want: "Атеросклероз коронарных артерий. Окклюзия огибающей артерии.",
		},
		{
			name: "irregular contours without significant stenosis",
			in:   "ПНА: неровность контуров, без значимых стенозов",
			want: "Нестенозирующий атеросклероз коронарных артерий.",
		},
		{
			name: "no arteries",
			in:   "Коронарография без особенностей",
			want: "Интактные коронарные артерии.",
		},
		{
			name: "atherosclerosis wording without any artery",
			in:   "Кальциноз коронарных артерий",
			want: "Интактные коронарные артерии.",
		},
		{
			name: "negated occlusion",
			in:   "ПКА: стенозов и окклюзий нет",
			want: "Интактные коронарные артерии.",
		},
		{
			name: "occlusion of a list of arteries",
			in:   "Окклюзия ОА и ПКА",
			want: "Атеросклероз коронарных артерий. Окклюзия огибающей артерии. Окклюзия правой коронарной артерии.",
		},
		{
			name: "parallel list of percents",
			in:   "ПНА и ОА: стенозы 70% и 50%",
			want: "Атеросклероз коронарных артерий. Стеноз передней нисходящей артерии 70%. Стеноз огибающей артерии 50%.",
		},
		{
			name: "canonical order regardless of line order",
			in:   "ПКА: стеноз 70%\nПНА: стеноз 60%",
			want: "Атеросклероз коронарных артерий. Стеноз передней нисходящей артерии 60%. Стеноз правой коронарной артерии 70%.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeDiagnosis(tt.in))
		})
	}
}

func TestDiagnoseResult(t *testing.T) {
	e, err := New(types.DefaultConfig())
	require.NoError(t, err)

	res := e.Diagnose("ОА: окклюзия\nПНА: стеноз 80%")
	require.Len(t, res.Findings, 2)
	assert.Equal(t, types.AnteriorDescending, res.Findings[0].Artery.ID)
	assert.Equal(t, 2, res.Findings[0].Source.Line)
	assert.Equal(t, types.Circumflex, res.Findings[1].Artery.ID)
	assert.True(t, res.Classification.Significant)
	assert.Equal(t, res.Diagnosis, res.String())

	blank := e.Diagnose("")
	assert.NotNil(t, blank.Findings)
	assert.Empty(t, blank.Findings)

	none := e.Diagnose("Коронарография без особенностей")
	assert.NotNil(t, none.Findings)
	assert.Equal(t, types.Classification{}, none.Classification)
}

func TestNewEnglish(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Output.Language = types.LanguageEnglish
	e, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "Atherosclerosis of coronary arteries. Stenosis of the left anterior descending artery 80%.",
		e.ComposeDiagnosis("ПНА: стеноз 80%"))
	assert.Equal(t, "Enter the coronary angiography report.", e.ComposeDiagnosis(""))
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Output.Language = "fr"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = types.DefaultConfig()
	cfg.Extraction.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestNewCustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `arteries:
  - id: septal
    order: 1
    name: септальная ветвь
    genitive: септальной ветви
    abbreviations: [СВ]
lexicon:
  occlusion: [окклюз]
  stent: [стент]
  restenosis: [рестеноз]
  no_restenosis: [без рестеноз]
  atherosclerosis: [бляшк]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg := types.DefaultConfig()
	cfg.Extraction.CatalogPath = path
	e, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "Атеросклероз коронарных артерий. Стеноз септальной ветви 70%.", e.ComposeDiagnosis("СВ 70%"))
	assert.Equal(t, "Интактные коронарные артерии.", e.ComposeDiagnosis("ПНА 70%"))
}

func TestComposeDiagnosisTotal(t *testing.T) {
	inputs := []string{
		"%%%",
		"100500%",
		"ПНА",
		"ПНА ПНА ПНА 1% 2% 3%",
		"\x00\xff\xfe",
		strings.Repeat("ОА окклюзия 99% стент ", 500),
		"ПНА: -5%",
		"🙂 ПКА 🙂 80 %",
	}
	for _, in := range inputs {
		out := ComposeDiagnosis(in)
		assert.NotEmpty(t, out, "input %q", in)
		assert.True(t, strings.HasSuffix(out, "."), "input %q gave %q", in, out)
	}
}

func TestComposeDiagnosisConcurrent(t *testing.T) {
	want := ComposeDiagnosis("ПНА: стеноз 80%\nОА: окклюзия")

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := ComposeDiagnosis("ПНА: стеноз 80%\nОА: окклюзия"); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent result %q, want %q", got, want)
	}
}

func TestGoldenReports(t *testing.T) {
	reports, err := filepath.Glob(filepath.Join("testdata", "*.txt"))
	require.NoError(t, err)
	require.NotEmpty(t, reports)

	for _, path := range reports {
		name := strings.TrimSuffix(filepath.Base(path), ".txt")
		t.Run(name, func(t *testing.T) {
			in, err := os.ReadFile(path)
			require.NoError(t, err)
			want, err := os.ReadFile(strings.TrimSuffix(path, ".txt") + ".golden")
			require.NoError(t, err)

			assert.Equal(t, strings.TrimSpace(string(want)), ComposeDiagnosis(string(in)))
		})
	}
}
