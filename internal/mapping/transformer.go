// =============================================================================
// Marketplace Export Converter - Transformation Engine
// =============================================================================
//
// Transformation rules adjust mapped values before they are written. They are
// configured per target in YAML and run after the field table, so a rule
// sees the value the marketplace would otherwise receive.
//
// EXAMPLE:
//   transformation_rules:
//     - column: "Ürün Adı"
//       actions:
//         - type: truncate
//           value: "100"
//     - column: "Renk"
//       actions:
//         - type: lookup
//           lookup_table: {"Siyah": "Black"}
//
// A numeric cell keeps its number type unless an action changes its text.
//
// =============================================================================

package mapping

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

// Action types.
const (
	ActionTrim              = "trim"
	ActionUppercase         = "uppercase"
	ActionLowercase         = "lowercase"
	ActionPrependString     = "prepend_string"
	ActionAppendString      = "append_string"
	ActionReplace           = "replace"
	ActionRegexReplace      = "regex_replace"
	ActionLookup            = "lookup"
	ActionIfEmptyUseDefault = "if_empty_use_default"
	ActionTruncate          = "truncate"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// step is a validated action.
type step struct {
	action config.TransformationAction
	re     *regexp.Regexp
	limit  int
}

// Transformer applies transformation rules to output rows.
type Transformer struct {
	rules map[string][]step
	order []string
}

// NewTransformer validates rules and prepares them for use.
//
// RETURNS:
//   - The transformer. A nil or empty rule list yields a no-op transformer.
//   - An error naming the first invalid action (unknown type, bad regex,
//     bad truncate length).
func NewTransformer(rules []config.TransformationRule) (*Transformer, error) {
	t := &Transformer{rules: make(map[string][]step)}

	for _, rule := range rules {
		if rule.Column == "" {
			return nil, fmt.Errorf("transformation rule without column")
		}
		if _, seen := t.rules[rule.Column]; !seen {
			t.order = append(t.order, rule.Column)
		}

		for _, action := range rule.Actions {
			s, err := compile(action)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", rule.Column, err)
			}
			t.rules[rule.Column] = append(t.rules[rule.Column], s)
		}
	}

	return t, nil
}

// compile checks one action.
func compile(action config.TransformationAction) (step, error) {
	s := step{action: action}

	switch action.Type {
	case ActionTrim, ActionUppercase, ActionLowercase,
		ActionPrependString, ActionAppendString, ActionReplace,
		ActionLookup, ActionIfEmptyUseDefault:
	case ActionRegexReplace:
		re, err := regexp.Compile(action.Find)
		if err != nil {
			return s, fmt.Errorf("invalid regex pattern: %w", err)
		}
		s.re = re
	case ActionTruncate:
		n, err := strconv.Atoi(strings.TrimSpace(action.Value))
		if err != nil || n < 0 {
			return s, fmt.Errorf("truncate needs a non-negative length, got %q", action.Value)
		}
		s.limit = n
	default:
		return s, fmt.Errorf("unknown transformation %q", action.Type)
	}

	return s, nil
}

// Apply runs the rules on row in place. Rule columns are matched like field
// columns; rules for columns the row does not have are ignored.
func (t *Transformer) Apply(row types.OutputRow) {
	if len(t.order) == 0 {
		return
	}
	columns := row.Columns()

	for _, name := range t.order {
		column, ok := MatchColumn(name, columns)
		if !ok {
			continue
		}

		text := row.Get(column).String()
		result := text
		for _, s := range t.rules[name] {
			result = s.apply(result)
		}

		if result == text {
			continue
		}
		row.Set(column, types.Text(result))
	}
}

// =============================================================================
// TRANSFORMATION FUNCTIONS
// =============================================================================

// apply runs one action on value.
func (s step) apply(value string) string {
	a := s.action

	switch a.Type {
	case ActionTrim:
		return strings.TrimSpace(value)

	case ActionUppercase:
		return strings.ToUpper(value)

	case ActionLowercase:
		return strings.ToLower(value)

	case ActionPrependString:
		// "123" + prepend "HB-" -> "HB-123"
		return a.Value + value

	case ActionAppendString:
		return value + a.Value

	case ActionReplace:
		if a.Find == "" {
			return value
		}
		return strings.ReplaceAll(value, a.Find, a.Value)

	case ActionRegexReplace:
		return s.re.ReplaceAllString(value, a.Value)

	case ActionLookup:
		if replacement, ok := a.LookupTable[value]; ok {
			return replacement
		}
		return value

	case ActionIfEmptyUseDefault:
		if strings.TrimSpace(value) == "" {
			return a.Value
		}
		return value

	case ActionTruncate:
		// Counts runes, so Turkish letters are never split.
		runes := []rune(value)
		if len(runes) > s.limit {
			return string(runes[:s.limit])
		}
		return value
	}

	return value
}
