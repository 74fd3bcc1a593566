// =============================================================================
// Marketplace Export Converter - Configuration Module
// =============================================================================
//
// This module loads and manages the converter configuration. One YAML file
// describes the shared source export and every marketplace target.
//
// CONFIGURATION SOURCES (later wins):
//   1. Built-in defaults (file names, sheet names and constants the
//      marketplace uploads have always used)
//   2. The YAML file (--config, default "marketconv.yaml"; optional)
//   3. Environment variables (optionally loaded from .env)
//
// EXAMPLE:
//   source:
//     path: "Ürünleriniz.xlsx"
//     sheet: "Ürünler"
//   delivery_dir: "/mnt/shared/uploads"
//   targets:
//     n11:
//       output_path: "N11_Yukleme.xlsx"
//       constants:
//         category_id: "1000662"
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// Output formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Header match modes.
const (
	// MatchAny accepts a row that contains at least one marker token.
	MatchAny = "any"

	// MatchAll accepts a row only when every marker token is present.
	MatchAll = "all"
)

// Target names.
const (
	TargetHepsiburada = "hepsiburada"
	TargetN11         = "n11"
	TargetPazarama    = "pazarama"
	TargetIdefix      = "idefix"
)

// DefaultConfigFile is the path used when --config is not given.
const DefaultConfigFile = "marketconv.yaml"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the complete converter configuration.
type Config struct {
	// Env selects the logger flavour: "development" or "production".
	Env string `yaml:"env"`

	// LogLevel controls verbosity: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// Source describes the marketplace export every target reads.
	Source SourceConfig `yaml:"source"`

	// DeliveryDir, when set, receives a copy of every written output file.
	// Delivery is best effort: failures are logged, never fatal.
	DeliveryDir string `yaml:"delivery_dir"`

	// DeliveryTimestampSubdirs files deliveries under YYYY/MM/DD below
	// DeliveryDir.
	DeliveryTimestampSubdirs bool `yaml:"delivery_timestamp_subdirs"`

	// Targets holds the per-marketplace settings, keyed by target name.
	Targets map[string]*TargetConfig `yaml:"targets"`
}

// SourceConfig describes the input spreadsheet.
type SourceConfig struct {
	// Path is the export workbook (or a .csv export).
	Path string `yaml:"path"`

	// Sheet is the worksheet holding the product table.
	Sheet string `yaml:"sheet"`

	// HeaderScanRows limits how many leading rows are searched for the
	// header line.
	HeaderScanRows int `yaml:"header_scan_rows"`

	// RequiredColumn is the key column; rows where it is blank are dropped.
	RequiredColumn string `yaml:"required_column"`
}

// =============================================================================
// TARGET CONFIGURATION STRUCTURE
// =============================================================================

// TargetConfig holds the settings of one marketplace target.
type TargetConfig struct {
	// SourcePath overrides Source.Path for this target.
	SourcePath string `yaml:"source_path,omitempty"`

	// HeaderMarkers are the tokens that identify the source header row.
	HeaderMarkers []string `yaml:"header_markers"`

	// HeaderMatch is MatchAny or MatchAll.
	HeaderMatch string `yaml:"header_match"`

	// TemplatePath is the marketplace template. Empty when the target's
	// schema is built in.
	TemplatePath string `yaml:"template_path,omitempty"`

	// TemplateSheet is the template worksheet (XLSX templates).
	TemplateSheet string `yaml:"template_sheet,omitempty"`

	// TemplateHeaderRow is the 0-based row holding the template column names.
	TemplateHeaderRow int `yaml:"template_header_row"`

	// PreambleRows is how many leading template rows are copied verbatim
	// above the output header.
	PreambleRows int `yaml:"preamble_rows"`

	// TemplateDelimiter separates fields of a CSV template.
	TemplateDelimiter string `yaml:"template_delimiter,omitempty"`

	// TemplateEncodings are tried in order when decoding a CSV template.
	TemplateEncodings []string `yaml:"template_encodings,omitempty"`

	// OutputPath is the generated file. Supports {target}, {timestamp},
	// {date} and {uuid} placeholders.
	OutputPath string `yaml:"output_path"`

	// OutputSheet is the worksheet name of XLSX output.
	OutputSheet string `yaml:"output_sheet,omitempty"`

	// OutputFormat is FormatXLSX or FormatCSV.
	OutputFormat string `yaml:"output_format"`

	// OutputDelimiter separates fields of CSV output.
	OutputDelimiter string `yaml:"output_delimiter,omitempty"`

	// Constants are the fixed values of this marketplace (category id,
	// currency, brand, ...). Keys are defined by the target's field table.
	Constants map[string]string `yaml:"constants,omitempty"`

	// BrandCorrections maps a lower-cased brand spelling to its fix.
	BrandCorrections map[string]string `yaml:"brand_corrections,omitempty"`

	// TransformationRules are applied to output columns after mapping.
	TransformationRules []TransformationRule `yaml:"transformation_rules,omitempty"`
}

// Constant returns a configured constant or fallback when unset.
func (t *TargetConfig) Constant(key, fallback string) string {
	if v, ok := t.Constants[key]; ok {
		return v
	}
	return fallback
}

// =============================================================================
// TRANSFORMATION RULE STRUCTURE
// =============================================================================

// TransformationRule applies actions to one output column.
type TransformationRule struct {
	// Column is the target column name.
	Column string `yaml:"column"`

	// Actions are applied in order.
	Actions []TransformationAction `yaml:"actions"`
}

// TransformationAction is a single step of a TransformationRule.
type TransformationAction struct {
	// Type is one of:
	//   - "trim", "uppercase", "lowercase"
	//   - "prepend_string", "append_string"  (Value)
	//   - "replace", "regex_replace"         (Find, Value)
	//   - "lookup"                           (LookupTable)
	//   - "if_empty_use_default"             (Value)
	//   - "truncate"                         (Value = max runes)
	Type string `yaml:"type"`

	Value       string            `yaml:"value,omitempty"`
	Find        string            `yaml:"find,omitempty"`
	LookupTable map[string]string `yaml:"lookup_table,omitempty"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Targets: map[string]*TargetConfig{}}
	applyDefaults(cfg)
	return cfg
}

// defaultTargets returns the built-in target settings.
func defaultTargets() map[string]*TargetConfig {
	return map[string]*TargetConfig{
		TargetHepsiburada: {
			HeaderMarkers:     []string{"Partner ID", "Barkod", "Model Kodu"},
			HeaderMatch:       MatchAny,
			TemplatePath:      "3D-Baski-Parcalar.xlsx",
			TemplateSheet:     "3D Baskı Parçalar",
			TemplateHeaderRow: 2,
			PreambleRows:      2,
			OutputPath:        "hepsiburada_urunler_unique_skus.xlsx",
			OutputFormat:      FormatXLSX,
			Constants: map[string]string{
				"material":        "PLA",
				"warranty_months": "0",
			},
			BrandCorrections: map[string]string{"hivhestın": "Hivhestin"},
		},
		TargetN11: {
			HeaderMarkers: []string{"Barkod", "Model Kodu"},
			HeaderMatch:   MatchAll,
			OutputPath:    "N11_Yukleme_Final.xlsx",
			OutputSheet:   "N11 Ürün Yükleme",
			OutputFormat:  FormatXLSX,
			Constants: map[string]string{
				"category_id":       "1000662",
				"brand":             "HIVHESTİN",
				"currency":          "TRY",
				"prep_time":         "3",
				"delivery_template": "Varsayılan",
				"default_color":     "Diğer",
				"default_vat":       "20",
			},
		},
		TargetPazarama: {
			HeaderMarkers: []string{"Barkod", "Model Kodu"},
			HeaderMatch:   MatchAll,
			OutputPath:    "Pazarama_Yukleme_Final.xlsx",
			OutputSheet:   "Ürün Listesi",
			OutputFormat:  FormatXLSX,
			Constants: map[string]string{
				"category_id":  "ac9982d3-3e82-4efc-86fe-6792bb3931ee",
				"brand":        "HIVHESTİN",
				"currency":     "TRY",
				"color_choice": "Çok Renkli",
				"material":     "Plastik",
				"size_option":  "Tekli",
				"default_vat":  "20",
			},
		},
		TargetIdefix: {
			HeaderMarkers:     []string{"Partner ID", "Barkod", "Model Kodu"},
			HeaderMatch:       MatchAny,
			TemplatePath:      "dekoratif-aksesuarlar-17411-20260102232441(Ürünlerinizi Burada Listeleyin).csv",
			TemplateDelimiter: ";",
			TemplateEncodings: []string{"latin1", "utf-8"},
			OutputPath:        "Idefix_Urun_Listesi_Hazir.csv",
			OutputFormat:      FormatCSV,
			OutputDelimiter:   ";",
		},
	}
}

// applyDefaults fills every unset option.
func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Source.Path == "" {
		cfg.Source.Path = "Ürünleriniz.xlsx"
	}
	if cfg.Source.Sheet == "" {
		cfg.Source.Sheet = "Ürünler"
	}
	if cfg.Source.HeaderScanRows == 0 {
		cfg.Source.HeaderScanRows = 50
	}
	if cfg.Source.RequiredColumn == "" {
		cfg.Source.RequiredColumn = "Barkod"
	}

	if cfg.Targets == nil {
		cfg.Targets = map[string]*TargetConfig{}
	}
	for name, def := range defaultTargets() {
		t, ok := cfg.Targets[name]
		if !ok || t == nil {
			cfg.Targets[name] = def
			continue
		}
		mergeTarget(t, def)
	}
}

// mergeTarget copies defaults into the unset fields of t. Constants and brand
// corrections are merged key by key.
func mergeTarget(t, def *TargetConfig) {
	if len(t.HeaderMarkers) == 0 {
		t.HeaderMarkers = def.HeaderMarkers
	}
	if t.HeaderMatch == "" {
		t.HeaderMatch = def.HeaderMatch
	}
	if t.TemplatePath == "" {
		t.TemplatePath = def.TemplatePath
	}
	if t.TemplateSheet == "" {
		t.TemplateSheet = def.TemplateSheet
	}
	if t.TemplateHeaderRow == 0 {
		t.TemplateHeaderRow = def.TemplateHeaderRow
	}
	if t.PreambleRows == 0 {
		t.PreambleRows = def.PreambleRows
	}
	if t.TemplateDelimiter == "" {
		t.TemplateDelimiter = def.TemplateDelimiter
	}
	if len(t.TemplateEncodings) == 0 {
		t.TemplateEncodings = def.TemplateEncodings
	}
	if t.OutputPath == "" {
		t.OutputPath = def.OutputPath
	}
	if t.OutputSheet == "" {
		t.OutputSheet = def.OutputSheet
	}
	if t.OutputFormat == "" {
		t.OutputFormat = def.OutputFormat
	}
	if t.OutputDelimiter == "" {
		t.OutputDelimiter = def.OutputDelimiter
	}

	if t.Constants == nil {
		t.Constants = map[string]string{}
	}
	for k, v := range def.Constants {
		if _, ok := t.Constants[k]; !ok {
			t.Constants[k] = v
		}
	}

	// Lookups lower-case the brand, so keys are stored lower-cased.
	corrections := make(map[string]string, len(t.BrandCorrections)+len(def.BrandCorrections))
	for k, v := range t.BrandCorrections {
		corrections[strings.ToLower(strings.TrimSpace(k))] = v
	}
	t.BrandCorrections = corrections
	for k, v := range def.BrandCorrections {
		if _, ok := t.BrandCorrections[k]; !ok {
			t.BrandCorrections[k] = v
		}
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration file at path, applies defaults and
// environment overrides, and validates the result.
//
// PARAMETERS:
//   - path: The YAML file. When it does not exist and optional is true, the
//     built-in defaults are used.
//   - optional: Whether a missing file is acceptable.
//
// RETURNS:
//   - The loaded configuration.
//   - An error if the file cannot be read or parsed, or is invalid.
func Load(path string, optional bool) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && optional:
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(cfg)
	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnv applies environment overrides.
func applyEnv(cfg *Config) {
	if v := os.Getenv("MARKETCONV_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("MARKETCONV_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MARKETCONV_SOURCE"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("MARKETCONV_DELIVERY_DIR"); v != "" {
		cfg.DeliveryDir = v
	}
	if v := os.Getenv("MARKETCONV_HEADER_SCAN_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Source.HeaderScanRows = n
		}
	}
}

// validate checks the loaded configuration.
func validate(cfg *Config) error {
	if cfg.Source.HeaderScanRows < 1 {
		return fmt.Errorf("source.header_scan_rows must be at least 1")
	}

	for _, name := range cfg.TargetNames() {
		t := cfg.Targets[name]

		if len(t.HeaderMarkers) == 0 {
			return fmt.Errorf("target %s: header_markers must not be empty", name)
		}
		if t.HeaderMatch != MatchAny && t.HeaderMatch != MatchAll {
			return fmt.Errorf("target %s: header_match must be %q or %q", name, MatchAny, MatchAll)
		}
		if t.OutputFormat != FormatXLSX && t.OutputFormat != FormatCSV {
			return fmt.Errorf("target %s: output_format must be %q or %q", name, FormatXLSX, FormatCSV)
		}
		if t.OutputPath == "" {
			return fmt.Errorf("target %s: output_path must be set", name)
		}
		if t.TemplateHeaderRow < 0 || t.PreambleRows < 0 {
			return fmt.Errorf("target %s: template rows must not be negative", name)
		}
		if t.PreambleRows > t.TemplateHeaderRow && t.TemplateHeaderRow > 0 {
			return fmt.Errorf("target %s: preamble_rows (%d) overlaps template_header_row (%d)", name, t.PreambleRows, t.TemplateHeaderRow)
		}
	}

	return nil
}

// TargetNames returns the configured target names in sorted order.
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourcePathFor returns the source file a target reads.
func (c *Config) SourcePathFor(name string) string {
	if t, ok := c.Targets[name]; ok && t.SourcePath != "" {
		return t.SourcePath
	}
	return c.Source.Path
}
