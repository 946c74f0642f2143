package csvimport

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldType is the expected type of a cell
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
)

// FieldRule describes one column
type FieldRule struct {
	Column     string
	Type       FieldType
	Required   bool
	MaxLength  int
	MinValue   *decimal.Decimal
	MaxValue   *decimal.Decimal
	CustomFunc func(value string) error
}

// FieldRuleBuilder builds a FieldRule fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field starts a rule for a column; columns are matched in lower case
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{Column: strings.ToLower(column), Type: TypeString}}
}

// Required marks the column as mandatory
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int expects a whole number
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal expects a decimal number
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// MaxLength caps the length in characters
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// MinValue sets the inclusive lower bound of a number
func (b *FieldRuleBuilder) MinValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &v
	return b
}

// MaxValue sets the inclusive upper bound of a number
func (b *FieldRuleBuilder) MaxValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MaxValue = &v
	return b
}

// Custom adds a check run after the built-in ones
func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.CustomFunc = fn
	return b
}

// Build returns the rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator checks rows against a set of rules and collects row errors
type FieldValidator struct {
	rules      []FieldRule
	uniqueKeys []string
	seen       map[string]int // composite key -> first row
	errors     *ErrorCollection
}

// NewFieldValidator creates a new field validator
func NewFieldValidator(rules []FieldRule, maxErrors int) *FieldValidator {
	return &FieldValidator{
		rules:  rules,
		seen:   make(map[string]int),
		errors: NewErrorCollection(maxErrors),
	}
}

// UniqueBy rejects rows repeating the combined value of columns, ignoring case
func (v *FieldValidator) UniqueBy(columns ...string) *FieldValidator {
	v.uniqueKeys = columns
	return v
}

// RequiredColumns lists the columns a file must have
func (v *FieldValidator) RequiredColumns() []string {
	var cols []string
	for _, r := range v.rules {
		if r.Required {
			cols = append(cols, r.Column)
		}
	}
	return cols
}

// ValidateRow reports whether every cell of row passes its rule
func (v *FieldValidator) ValidateRow(row *Row) bool {
	valid := true
	for _, rule := range v.rules {
		if err := checkCell(rule, row.Get(rule.Column)); err != nil {
			err.Row = row.LineNumber
			v.errors.Add(*err)
			valid = false
		}
	}
	if valid && len(v.uniqueKeys) > 0 {
		parts := make([]string, len(v.uniqueKeys))
		for i, col := range v.uniqueKeys {
			parts[i] = strings.ToLower(row.Get(col))
		}
		key := strings.Join(parts, "\x00")
		if first, dup := v.seen[key]; dup {
			v.errors.Add(RowError{
				Row:     row.LineNumber,
				Code:    ErrCodeDuplicate,
				Message: fmt.Sprintf("same %s as row %d", strings.Join(v.uniqueKeys, "/"), first),
			})
			return false
		}
		v.seen[key] = row.LineNumber
	}
	return valid
}

func checkCell(rule FieldRule, value string) *RowError {
	fail := func(code, msg string) *RowError {
		return &RowError{Column: rule.Column, Code: code, Message: msg, Value: value}
	}

	if value == "" {
		if rule.Required {
			return fail(ErrCodeRequired, "value is required")
		}
		return nil
	}
	if rule.MaxLength > 0 && utf8.RuneCountInString(value) > rule.MaxLength {
		return fail(ErrCodeTooLong, fmt.Sprintf("must be at most %d characters", rule.MaxLength))
	}

	switch rule.Type {
	case TypeInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fail(ErrCodeInvalidType, "must be a whole number")
		}
		if msg := outOfRange(decimal.NewFromInt(n), rule); msg != "" {
			return fail(ErrCodeInvalidRange, msg)
		}
	case TypeDecimal:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fail(ErrCodeInvalidType, "must be a number")
		}
		if msg := outOfRange(d, rule); msg != "" {
			return fail(ErrCodeInvalidRange, msg)
		}
	}

	if rule.CustomFunc != nil {
		if err := rule.CustomFunc(value); err != nil {
			return fail(ErrCodeValidation, err.Error())
		}
	}
	return nil
}

func outOfRange(d decimal.Decimal, rule FieldRule) string {
	if rule.MinValue != nil && d.LessThan(*rule.MinValue) {
		return "must be at least " + rule.MinValue.String()
	}
	if rule.MaxValue != nil && d.GreaterThan(*rule.MaxValue) {
		return "must be at most " + rule.MaxValue.String()
	}
	return ""
}

// Errors returns the collected row errors
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}
