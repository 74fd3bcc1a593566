package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
)

func TestListTargets(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listTargets(&out, config.Default()))

	text := out.String()
	assert.Contains(t, text, "TARGET")
	assert.Contains(t, text, "3D-Baski-Parcalar.xlsx")
	assert.Contains(t, text, "N11_Yukleme_Final.xlsx (XLSX)")
	assert.Contains(t, text, "Idefix_Urun_Listesi_Hazir.csv (CSV)")
}

func TestRunProcess_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	cfg = config.Default()
	cfg.Source.Path = filepath.Join(dir, "missing.xlsx")
	summaryDir = dir
	defer func() { summaryDir = "" }()

	var out bytes.Buffer
	err := runProcess(&out, []string{"n11", "amazon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 target(s) failed")

	text := out.String()
	assert.Contains(t, text, "✗ n11")
	assert.Contains(t, text, "✗ amazon")
	assert.Contains(t, text, "Summary:")

	matches, err := filepath.Glob(filepath.Join(dir, "processing_summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
