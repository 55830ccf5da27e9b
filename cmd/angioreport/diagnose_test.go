// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/angioreport/internal/catalog"
	"github.com/pdiddy/angioreport/pkg/diagnosis"
	"github.com/pdiddy/angioreport/pkg/types"
)

func sampleResult(t *testing.T) types.Result {
	t.Helper()
	e, err := diagnosis.New(types.DefaultConfig())
	require.NoError(t, err)
	return e.Diagnose("ПНА: стеноз 80%, стент без рестеноза")
}

func TestWriteResultText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, sampleResult(t), types.FormatText))
	assert.Equal(t, "Атеросклероз коронарных артерий. Стеноз передней нисходящей артерии 80%, стент без рестеноза.\n", buf.String())
}

func TestWriteResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, sampleResult(t), types.FormatJSON))

	var got types.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Findings, 1)
	assert.Equal(t, types.AnteriorDescending, got.Findings[0].Artery.ID)
	assert.Equal(t, types.RestenosisAbsent, got.Findings[0].Restenosis)
	assert.True(t, got.Classification.Significant)
}

func TestWriteResultYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, sampleResult(t), types.FormatYAML))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Contains(t, got, "diagnosis")
	assert.Contains(t, buf.String(), "restenosis: absent")
}

func TestWriteResultUnknownFormat(t *testing.T) {
	assert.Error(t, writeResult(&bytes.Buffer{}, types.Result{}, "xml"))
}

func newReadCmd(stdin string) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("text", "", "")
	cmd.SetIn(strings.NewReader(stdin))
	return cmd
}

func TestReadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("ОА: окклюзия"), 0o644))

	got, err := readReport(newReadCmd(""), []string{path})
	require.NoError(t, err)
	assert.Equal(t, "ОА: окклюзия", got)

	got, err = readReport(newReadCmd("ПКА 70%"), nil)
	require.NoError(t, err)
	assert.Equal(t, "ПКА 70%", got)

	got, err = readReport(newReadCmd("ПКА 70%"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "ПКА 70%", got)

	cmd := newReadCmd("ignored")
	require.NoError(t, cmd.Flags().Set("text", "ПНА 80%"))
	got, err = readReport(cmd, []string{path})
	require.NoError(t, err)
	assert.Equal(t, "ПНА 80%", got)

	_, err = readReport(newReadCmd(""), []string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestFormatCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatCatalog(&buf, catalog.Default().Arteries(), false))
	out := buf.String()
	assert.Contains(t, out, "anterior_descending")
	assert.Contains(t, out, "ПНА, ПМЖВ, ПМЖА")
	assert.True(t, strings.HasSuffix(out, "9 arteries\n"))

	buf.Reset()
	require.NoError(t, formatCatalog(&buf, catalog.Default().Arteries(), true))
	var arteries []types.Artery
	require.NoError(t, json.Unmarshal(buf.Bytes(), &arteries))
	assert.Len(t, arteries, 9)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	assert.True(t, strings.HasPrefix(buf.String(), "angioreport dev ("), buf.String())
	assert.Contains(t, buf.String(), "9 arteries")
}
