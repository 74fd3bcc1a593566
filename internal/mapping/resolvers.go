package mapping

import (
	"strings"

	"github.com/ginjaninja78/marketplace-export-converter/internal/normalize"
	"github.com/ginjaninja78/marketplace-export-converter/internal/sku"
	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

// textCell turns cleaned text into a cell; "" stays an empty cell.
func textCell(s string) types.Cell {
	if s == "" {
		return types.Empty
	}
	return types.Text(s)
}

// Constant fills the column with a fixed text value.
func Constant(value string) Resolver {
	cell := textCell(value)
	return func(*RowContext) types.Cell { return cell }
}

// ConstantNumber fills the column with a fixed number. A value that does
// not parse is written as text.
func ConstantNumber(value string, kind normalize.NumberKind) Resolver {
	cell := normalize.CoerceNumber(value, kind)
	if cell.IsEmpty() {
		cell = textCell(strings.TrimSpace(value))
	}
	return func(*RowContext) types.Cell { return cell }
}

// Text copies a source column, cleaned.
func Text(column string) Resolver {
	return func(ctx *RowContext) types.Cell {
		return textCell(ctx.Text(column))
	}
}

// TextOr copies a source column, or fallback when it is blank.
func TextOr(column, fallback string) Resolver {
	return FirstText(Text(column), Constant(fallback))
}

// FirstText returns the first non-empty result of resolvers.
func FirstText(resolvers ...Resolver) Resolver {
	return func(ctx *RowContext) types.Cell {
		for _, r := range resolvers {
			if cell := r(ctx); !cell.IsEmpty() {
				return cell
			}
		}
		return types.Empty
	}
}

// Number parses a source column; unparseable input leaves the cell empty.
func Number(column string, kind normalize.NumberKind) Resolver {
	return func(ctx *RowContext) types.Cell {
		return normalize.CoerceNumber(ctx.Row.Value(column), kind)
	}
}

// NumberOr parses a source column; unparseable input yields fallback.
func NumberOr(column string, kind normalize.NumberKind, fallback float64) Resolver {
	return func(ctx *RowContext) types.Cell {
		return normalize.CoerceNumberOr(ctx.Row.Value(column), kind, fallback)
	}
}

// UniqueSKU allocates a disambiguated SKU from a source column. Repeats of
// the same code within a run get "-1", "-2", ... suffixes.
func UniqueSKU(column string) Resolver {
	return func(ctx *RowContext) types.Cell {
		return textCell(ctx.SKUs.Allocate(ctx.Text(column)))
	}
}

// VariantGroup derives the variant group id from the original code in a
// source column, never from the allocated SKU.
func VariantGroup(column string) Resolver {
	return func(ctx *RowContext) types.Cell {
		return textCell(sku.DeriveGroup(ctx.Text(column)))
	}
}

// Axis selects one axis of a parsed size.
type Axis int

const (
	// Length is the first part of the size.
	Length Axis = iota

	// Width is the second part of the size.
	Width

	// Height is the third part, or the only one for a single value.
	Height
)

// Dimension fills the column with one axis of the size in a source column.
func Dimension(column string, axis Axis) Resolver {
	return func(ctx *RowContext) types.Cell {
		d := ctx.Dimensions(column)
		switch axis {
		case Length:
			return textCell(d.Length)
		case Width:
			return textCell(d.Width)
		default:
			return textCell(d.Height)
		}
	}
}

// CorrectBrand applies corrections (keyed by lower-cased spelling) to a
// brand name.
func CorrectBrand(brand string, corrections map[string]string) string {
	if fixed, ok := corrections[strings.ToLower(brand)]; ok {
		return fixed
	}
	return brand
}

// Brand copies the brand column with corrections applied.
func Brand(column string, corrections map[string]string) Resolver {
	return func(ctx *RowContext) types.Cell {
		return textCell(CorrectBrand(ctx.Text(column), corrections))
	}
}

// DisplayName joins the corrected brand and the product name with a space.
func DisplayName(brandColumn, nameColumn string, corrections map[string]string) Resolver {
	return func(ctx *RowContext) types.Cell {
		brand := CorrectBrand(ctx.Text(brandColumn), corrections)
		name := ctx.Text(nameColumn)
		return textCell(strings.TrimSpace(brand + " " + name))
	}
}
