package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingOptionalFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	require.NoError(t, err)

	assert.Equal(t, "Ürünler", cfg.Source.Sheet)
	assert.Equal(t, "Barkod", cfg.Source.RequiredColumn)
	assert.Equal(t, []string{TargetHepsiburada, TargetIdefix, TargetN11, TargetPazarama}, cfg.TargetNames())

	n11 := cfg.Targets[TargetN11]
	assert.Equal(t, "1000662", n11.Constant("category_id", ""))
	assert.Equal(t, MatchAll, n11.HeaderMatch)
	assert.Equal(t, FormatXLSX, n11.OutputFormat)

	hb := cfg.Targets[TargetHepsiburada]
	assert.Equal(t, 2, hb.TemplateHeaderRow)
	assert.Equal(t, 2, hb.PreambleRows)
	assert.Equal(t, "Hivhestin", hb.BrandCorrections["hivhestın"])

	idefix := cfg.Targets[TargetIdefix]
	assert.Equal(t, FormatCSV, idefix.OutputFormat)
	assert.Equal(t, []string{"latin1", "utf-8"}, idefix.TemplateEncodings)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), false)
	assert.Error(t, err)
}

func TestLoad_FileOverridesMergeWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marketconv.yaml")
	yamlText := `
source:
  path: export.xlsx
delivery_dir: /tmp/deliver
targets:
  n11:
    output_path: out/{target}.xlsx
    constants:
      category_id: "42"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlText), 0o644))

	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, "export.xlsx", cfg.Source.Path)
	assert.Equal(t, "/tmp/deliver", cfg.DeliveryDir)

	n11 := cfg.Targets[TargetN11]
	assert.Equal(t, "out/{target}.xlsx", n11.OutputPath)
	assert.Equal(t, "42", n11.Constant("category_id", ""))
	assert.Equal(t, "TRY", n11.Constant("currency", ""), "unset constants keep their defaults")
	assert.Equal(t, "N11 Ürün Yükleme", n11.OutputSheet)
}

func TestLoad_BrandCorrectionKeysAreLowerCased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marketconv.yaml")
	yamlText := `
targets:
  idefix:
    brand_corrections:
      "ACME Tasarım ": "Acme Tasarım"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlText), 0o644))

	cfg, err := Load(path, false)
	require.NoError(t, err)

	corrections := cfg.Targets[TargetIdefix].BrandCorrections
	assert.Equal(t, "Acme Tasarım", corrections["acme tasarım"])
	assert.NotContains(t, corrections, "ACME Tasarım ")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MARKETCONV_SOURCE", "env.xlsx")
	t.Setenv("MARKETCONV_LOG_LEVEL", "debug")
	t.Setenv("MARKETCONV_HEADER_SCAN_ROWS", "7")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	require.NoError(t, err)

	assert.Equal(t, "env.xlsx", cfg.Source.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7, cfg.Source.HeaderScanRows)
}

func TestLoad_InvalidHeaderMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets:\n  n11:\n    header_match: some\n"), 0o644))

	_, err := Load(path, false)
	assert.ErrorContains(t, err, "header_match")
}

func TestSourcePathFor(t *testing.T) {
	cfg := Default()
	cfg.Targets[TargetIdefix].SourcePath = "idefix.xlsx"

	assert.Equal(t, "idefix.xlsx", cfg.SourcePathFor(TargetIdefix))
	assert.Equal(t, cfg.Source.Path, cfg.SourcePathFor(TargetN11))
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "marketconv.example.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, "exports/{target}_{date}.xlsx", cfg.Targets[TargetPazarama].OutputPath)
	assert.Equal(t, "Tekli", cfg.Targets[TargetPazarama].Constant("size_option", ""))
	require.Len(t, cfg.Targets[TargetN11].TransformationRules, 1)
	assert.Equal(t, "truncate", cfg.Targets[TargetN11].TransformationRules[0].Actions[0].Type)
}
