// =============================================================================
// Marketplace Export Converter - Row Mapper
// =============================================================================
//
// The Row Mapper turns source rows into output rows by walking a declared
// field table. Every marketplace is the same mapper with a different table:
//
//   Table "n11"
//     "Stok Kodu"  <- UniqueSKU("Model Kodu")
//     "Marka"      <- Constant("HIVHESTİN")
//     "Stok"       <- IntOr("Ürün Stok Adedi", 0)
//     ...
//
// PIPELINE PER ROW:
//   1. Start from an OutputRow with every schema column empty
//   2. Resolve each bound field against the source row
//   3. Apply the configured transformation rules
//
// SKU counter state is created per Map call and threaded through every
// RowContext of that call. Two runs never share suffix counts.
//
// =============================================================================

package mapping

import (
	"fmt"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/dimension"
	"github.com/ginjaninja78/marketplace-export-converter/internal/normalize"
	"github.com/ginjaninja78/marketplace-export-converter/internal/sku"
	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

// =============================================================================
// FIELD TABLE
// =============================================================================

// Resolver computes one output cell from the row context.
type Resolver func(ctx *RowContext) types.Cell

// Field binds a target column to the resolver that fills it.
type Field struct {
	// Column is the target column name as the marketplace spells it.
	Column string

	// Resolve computes the cell.
	Resolve Resolver
}

// Table is the declared field table of one target.
type Table struct {
	// Name identifies the target in messages.
	Name string

	// Fields are resolved in order. When two fields bind to the same
	// column, the first one wins.
	Fields []Field
}

// Columns returns the field column names in table order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Column
	}
	return cols
}

// =============================================================================
// ROW CONTEXT
// =============================================================================

// RowContext is what a Resolver sees while one row is mapped.
type RowContext struct {
	// Row is the source row being mapped.
	Row types.SourceRow

	// SKUs is the run-scoped allocator shared by every row of the run.
	SKUs *sku.Allocator

	dims map[string]dimension.Dimensions
}

// NewRowContext creates the context of one row.
func NewRowContext(row types.SourceRow, skus *sku.Allocator) *RowContext {
	return &RowContext{Row: row, SKUs: skus}
}

// Text returns the cleaned text of a source column.
func (c *RowContext) Text(column string) string {
	return normalize.CleanText(c.Row.Value(column))
}

// Dimensions returns the parsed size of a source column. The parse is
// cached so the three axis fields read the same result.
func (c *RowContext) Dimensions(column string) dimension.Dimensions {
	if d, ok := c.dims[column]; ok {
		return d
	}
	if c.dims == nil {
		c.dims = make(map[string]dimension.Dimensions, 1)
	}
	d := dimension.Parse(c.Row.Value(column))
	c.dims[column] = d
	return d
}

// =============================================================================
// MAPPER
// =============================================================================

// binding is a field resolved to the schema column it fills.
type binding struct {
	column  string
	resolve Resolver
}

// Mapper maps source rows onto one target schema.
type Mapper struct {
	schema      *types.Schema
	bindings    []binding
	unbound     []string
	transformer *Transformer
}

// New binds table to schema and prepares the transformation rules.
//
// PARAMETERS:
//   - table: The target's field table.
//   - schema: The output schema (built in, or read from a template).
//   - rules: Post-mapping transformation rules; may be nil.
//
// RETURNS:
//   - The mapper.
//   - An error if a rule is invalid.
func New(table *Table, schema *types.Schema, rules []config.TransformationRule) (*Mapper, error) {
	transformer, err := NewTransformer(rules)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", table.Name, err)
	}

	m := &Mapper{schema: schema, transformer: transformer}

	columns := schema.Columns()
	taken := make(map[string]bool, len(table.Fields))
	for _, f := range table.Fields {
		column, ok := MatchColumn(f.Column, columns)
		if !ok || taken[column] {
			if !ok {
				m.unbound = append(m.unbound, f.Column)
			}
			continue
		}
		taken[column] = true
		m.bindings = append(m.bindings, binding{column: column, resolve: f.Resolve})
	}

	return m, nil
}

// Unbound returns the table fields that match no schema column. Their
// values are never written.
func (m *Mapper) Unbound() []string {
	return m.unbound
}

// Map converts rows into output rows. A fresh SKU allocator is used per
// call, so repeated calls give the same result.
func (m *Mapper) Map(rows []types.SourceRow) []types.OutputRow {
	skus := sku.NewAllocator()
	out := make([]types.OutputRow, 0, len(rows))

	for _, row := range rows {
		out = append(out, m.MapRow(NewRowContext(row, skus)))
	}

	return out
}

// MapRow converts the row of ctx into one output row.
func (m *Mapper) MapRow(ctx *RowContext) types.OutputRow {
	out := types.NewOutputRow(m.schema)

	for _, b := range m.bindings {
		out.Set(b.column, b.resolve(ctx))
	}

	m.transformer.Apply(out)
	return out
}
