// AngelaMos | 2026
// rules.go

package kol

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Kind is the declared value type of a record field.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindStringArray
)

// Rule is one field's validation contract. Pattern checks run against the
// trimmed value; PatternSrc is the literal quoted back in error messages.
type Rule struct {
	Kind       Kind
	Pattern    *regexp.Regexp
	PatternSrc string
	URI        bool
}

// FieldRule pairs an attribute name with its rule; slices of FieldRule keep
// the declaration order that drives validation sequencing.
type FieldRule struct {
	Name string
	Rule Rule
}

// RuleSet is a static field-name → rule mapping with a fixed order.
type RuleSet struct {
	order []string
	rules map[string]Rule
}

func NewRuleSet(fields []FieldRule) RuleSet {
	rs := RuleSet{
		order: make([]string, 0, len(fields)),
		rules: make(map[string]Rule, len(fields)),
	}
	for _, f := range fields {
		rs.order = append(rs.order, f.Name)
		rs.rules[f.Name] = f.Rule
	}
	return rs
}

var (
	digitsPattern  = regexp.MustCompile(`^[0-9]+$`)
	decimalPattern = regexp.MustCompile(`^[0-9.]+$`)
)

// DefaultRules is the record schema: every field required, checked in this
// declaration order.
func DefaultRules() RuleSet {
	return NewRuleSet([]FieldRule{
		{Name: FieldName, Rule: Rule{Kind: KindString}},
		{Name: FieldPlatform, Rule: Rule{Kind: KindString}},
		{Name: FieldSex, Rule: Rule{Kind: KindString}},
		{Name: FieldCategories, Rule: Rule{Kind: KindStringArray}},
		{Name: FieldTel, Rule: Rule{
			Kind:       KindString,
			Pattern:    digitsPattern,
			PatternSrc: "/^[0-9]+$/",
		}},
		{Name: FieldLink, Rule: Rule{Kind: KindString, URI: true}},
		{Name: FieldFollowers, Rule: Rule{
			Kind:       KindString,
			Pattern:    digitsPattern,
			PatternSrc: "/^[0-9]+$/",
		}},
		{Name: FieldPhotoCost, Rule: Rule{Kind: KindNumber}},
		{Name: FieldVideoCost, Rule: Rule{Kind: KindNumber}},
		{Name: FieldER, Rule: Rule{
			Kind:       KindString,
			Pattern:    decimalPattern,
			PatternSrc: "/^[0-9.]+$/",
		}},
	})
}

// FieldError reports a single field's rule violation. The message is the
// client-facing text.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func fieldErrorf(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (rs RuleSet) Order() []string {
	return rs.order
}

func (rs RuleSet) Has(field string) bool {
	_, ok := rs.rules[field]
	return ok
}

// Validate checks value against the named field's rule and returns the
// normalized (trimmed) value on success.
func (rs RuleSet) Validate(field string, value any) (any, error) {
	rule, ok := rs.rules[field]
	if !ok {
		return nil, fieldErrorf(field, "%q is not allowed", field)
	}

	if value == nil {
		return nil, fieldErrorf(field, "%q is required", field)
	}

	switch rule.Kind {
	case KindString:
		return rs.validateString(field, rule, value)
	case KindNumber:
		return rs.validateNumber(field, value)
	case KindStringArray:
		return rs.validateStringArray(field, value)
	default:
		return nil, fieldErrorf(field, "%q has no usable rule", field)
	}
}

func (rs RuleSet) validateString(
	field string,
	rule Rule,
	value any,
) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fieldErrorf(field, "%q must be a string", field)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fieldErrorf(field, "%q is not allowed to be empty", field)
	}

	if rule.Pattern != nil && !rule.Pattern.MatchString(s) {
		return nil, fieldErrorf(
			field,
			"%q with value %q fails to match the required pattern: %s",
			field, s, rule.PatternSrc,
		)
	}

	if rule.URI {
		u, err := url.Parse(s)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, fieldErrorf(field, "%q must be a valid uri", field)
		}
	}

	return s, nil
}

func (rs RuleSet) validateNumber(field string, value any) (any, error) {
	switch n := value.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return nil, fieldErrorf(field, "%q must be a number", field)
	}
}

func (rs RuleSet) validateStringArray(field string, value any) (any, error) {
	items, ok := value.([]any)
	if !ok {
		if ss, isStrings := value.([]string); isStrings {
			items = make([]any, len(ss))
			for i, s := range ss {
				items[i] = s
			}
		} else {
			return nil, fieldErrorf(field, "%q must be an array", field)
		}
	}

	normalized := make([]any, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fieldErrorf(
				field,
				"%q[%d] must be a string",
				field, i,
			)
		}
		normalized = append(normalized, strings.TrimSpace(s))
	}

	return normalized, nil
}

// ValidateRecord checks a full payload: every declared field present and
// valid, in declaration order, then unknown keys rejected. The returned map
// holds normalized values.
func (rs RuleSet) ValidateRecord(
	fields map[string]any,
) (map[string]any, error) {
	out := make(map[string]any, len(rs.order))

	for _, name := range rs.order {
		value, present := fields[name]
		if !present {
			return nil, fieldErrorf(name, "%q is required", name)
		}

		normalized, err := rs.Validate(name, value)
		if err != nil {
			return nil, err
		}
		out[name] = normalized
	}

	var unknown []string
	for name := range fields {
		if !rs.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fieldErrorf(unknown[0], "%q is not allowed", unknown[0])
	}

	return out, nil
}
