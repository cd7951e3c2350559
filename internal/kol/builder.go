// AngelaMos | 2026
// builder.go

package kol

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyUpdate rejects a partial update with no fields. Surfaced to the
// client as a 400, never a server error.
var ErrEmptyUpdate = errors.New("No data provided for update")

// UpdateDirective is a fully assembled partial-update instruction: the
// expression text plus the placeholder bindings that keep attribute names
// with spaces, slashes, and percent signs out of the expression itself.
type UpdateDirective struct {
	ID         string
	Expression string
	Names      map[string]string
	Values     map[string]any
}

// UpdateBuilder turns a sparse field map into an UpdateDirective. Every
// field is validated against the rule set and string values pass through the
// sanitizer; the builder never assumes the sanitizer is a no-op.
type UpdateBuilder struct {
	rules    RuleSet
	sanitize func(string) string
}

func NewUpdateBuilder(rules RuleSet, sanitize func(string) string) *UpdateBuilder {
	return &UpdateBuilder{rules: rules, sanitize: sanitize}
}

var placeholderStripper = strings.NewReplacer(" ", "", "/", "", "%", "")

// PlaceholderKey derives the expression-safe key for an attribute name by
// removing spaces, slashes, and percent signs:
// "Photo Cost / Kols" -> "PhotoCostKols", "ER%" -> "ER".
func PlaceholderKey(field string) string {
	return placeholderStripper.Replace(field)
}

// Build assembles the directive for a single-record partial update.
//
// Fields are visited in the rule set's declaration order, so the same sparse
// map always produces byte-identical expression text and the first rule
// violation in that order is the one reported. Any failure aborts the whole
// build; no partial directive is ever returned.
func (b *UpdateBuilder) Build(
	id string,
	fields map[string]any,
) (*UpdateDirective, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	clauses := make([]string, 0, len(fields))
	names := make(map[string]string, len(fields))
	values := make(map[string]any, len(fields))
	keyOwner := make(map[string]string, len(fields))

	visit := func(field string, value any) error {
		normalized, err := b.rules.Validate(field, value)
		if err != nil {
			return fmt.Errorf("Invalid data for %s: %w", field, err)
		}

		if s, ok := normalized.(string); ok {
			normalized = b.sanitize(s)
		}

		key := PlaceholderKey(field)
		if owner, taken := keyOwner[key]; taken {
			return fieldErrorf(
				field,
				"Invalid data for %s: placeholder %q already bound to %q",
				field, key, owner,
			)
		}
		keyOwner[key] = field

		namePlaceholder := "#" + key
		valuePlaceholder := ":" + key

		clauses = append(
			clauses,
			namePlaceholder+" = "+valuePlaceholder,
		)
		names[namePlaceholder] = field
		values[valuePlaceholder] = normalized
		return nil
	}

	for _, field := range b.rules.Order() {
		value, present := fields[field]
		if !present {
			continue
		}
		if err := visit(field, value); err != nil {
			return nil, err
		}
	}

	// Unknown fields have no rule; report the first one deterministically.
	var unknown []string
	for field := range fields {
		if !b.rules.Has(field) {
			unknown = append(unknown, field)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fieldErrorf(
			unknown[0],
			"Invalid data for %s: %q is not allowed",
			unknown[0], unknown[0],
		)
	}

	return &UpdateDirective{
		ID:         id,
		Expression: "set " + strings.Join(clauses, ", "),
		Names:      names,
		Values:     values,
	}, nil
}
