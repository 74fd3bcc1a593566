// =============================================================================
// Marketplace Export Converter - Target Registry
// =============================================================================
//
// A target is one marketplace upload format: a field table plus either a
// built-in column list or a template the columns are read from.
//
//   | Target      | Schema                  | Output |
//   |-------------|-------------------------|--------|
//   | hepsiburada | XLSX template (+2 rows) | XLSX   |
//   | idefix      | CSV template            | CSV    |
//   | n11         | built in                | XLSX   |
//   | pazarama    | built in                | XLSX   |
//
// Adding a marketplace means adding a builder to the registry below.
//
// =============================================================================

package targets

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/mapping"
	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

// Target is a marketplace format ready for a conversion run.
type Target struct {
	// Name is the registry key.
	Name string

	// Table is the field table of the target.
	Table *mapping.Table

	// Columns is the built-in schema. Nil when the schema comes from a
	// template.
	Columns []string
}

// HasBuiltinSchema reports whether the target declares its own columns.
func (t *Target) HasBuiltinSchema() bool {
	return len(t.Columns) > 0
}

// builder creates a target from its configuration.
type builder func(cfg *config.TargetConfig) *Target

var registry = map[string]builder{
	config.TargetHepsiburada: Hepsiburada,
	config.TargetN11:         N11,
	config.TargetPazarama:    Pazarama,
	config.TargetIdefix:      Idefix,
}

// Names returns the registered target names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns the named target configured by cfg.
//
// RETURNS:
//   - The target.
//   - An error wrapping types.ErrUnknownTarget for an unregistered name.
func Build(name string, cfg *config.TargetConfig) (*Target, error) {
	b, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", types.ErrUnknownTarget, name, strings.Join(Names(), ", "))
	}
	if cfg == nil {
		cfg = &config.TargetConfig{}
	}
	return b(cfg), nil
}

// images returns fields copying source images 1..n into columns named by
// target(i).
func images(n int, target func(i int) string) []mapping.Field {
	fields := make([]mapping.Field, 0, n)
	for i := 1; i <= n; i++ {
		fields = append(fields, mapping.Field{Column: target(i), Resolve: mapping.Text(ColImage(i))})
	}
	return fields
}

// blanks returns fields that are always left empty.
func blanks(columns ...string) []mapping.Field {
	fields := make([]mapping.Field, len(columns))
	for i, c := range columns {
		fields[i] = mapping.Field{Column: c, Resolve: mapping.Constant("")}
	}
	return fields
}

// numberConstant reads a numeric constant, falling back to def.
func numberConstant(cfg *config.TargetConfig, key string, def float64) float64 {
	if f, err := strconv.ParseFloat(strings.TrimSpace(cfg.Constant(key, "")), 64); err == nil {
		return f
	}
	return def
}
