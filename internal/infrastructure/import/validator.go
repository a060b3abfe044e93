package csvimport

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// FieldType represents the expected type of a column
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "integer"
	TypeDecimal FieldType = "decimal"
)

// FieldRule describes how one column is validated
type FieldRule struct {
	Column   string
	Required bool
	Type     FieldType
	MinValue *decimal.Decimal
	Unique   bool
}

// FieldRuleBuilder builds a FieldRule
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field starts a rule for a column
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{Column: column, Type: TypeString}}
}

// Required marks the column as required
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int expects an integer
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal expects a decimal number
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// NonNegative rejects values below zero
func (b *FieldRuleBuilder) NonNegative() *FieldRuleBuilder {
	zero := decimal.Zero
	b.rule.MinValue = &zero
	return b
}

// Unique rejects a value seen in an earlier row of the same file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Build returns the rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator validates rows against a set of rules
type FieldValidator struct {
	rules       []FieldRule
	uniqueCheck map[string]map[string]int // column -> value -> first row
	errors      *ErrorCollection
}

// NewFieldValidator creates a new field validator. Rules run in the given order.
func NewFieldValidator(rules []FieldRule, maxErrors int) *FieldValidator {
	return &FieldValidator{
		rules:       rules,
		uniqueCheck: make(map[string]map[string]int),
		errors:      NewErrorCollection(maxErrors),
	}
}

// ValidateRow validates all fields in a row and reports whether it passed
func (v *FieldValidator) ValidateRow(row *Row) bool {
	ok := true

	for _, rule := range v.rules {
		value := row.Get(rule.Column)

		if value == "" {
			if rule.Required {
				v.errors.Add(NewRowError(row.LineNumber, rule.Column, ErrCodeImportRequiredField,
					fmt.Sprintf("field '%s' is required", rule.Column)))
				ok = false
			}
			continue
		}

		if err := validateType(value, rule); err != nil {
			v.errors.Add(NewRowError(row.LineNumber, rule.Column, ErrCodeImportInvalidType,
				fmt.Sprintf("expected %s", rule.Type)).WithValue(value))
			ok = false
			continue
		}

		if rule.MinValue != nil {
			if d, _ := decimal.NewFromString(value); d.LessThan(*rule.MinValue) {
				v.errors.Add(NewRowError(row.LineNumber, rule.Column, ErrCodeImportInvalidRange,
					fmt.Sprintf("value must be at least %s", rule.MinValue.String())).WithValue(value))
				ok = false
			}
		}

		if rule.Unique {
			seen := v.uniqueCheck[rule.Column]
			if seen == nil {
				seen = make(map[string]int)
				v.uniqueCheck[rule.Column] = seen
			}
			if first, dup := seen[value]; dup {
				v.errors.Add(NewRowError(row.LineNumber, rule.Column, ErrCodeImportDuplicateInFile,
					fmt.Sprintf("duplicate value '%s' (first seen in row %d)", value, first)).WithValue(value))
				ok = false
			} else {
				seen[value] = row.LineNumber
			}
		}
	}

	return ok
}

func validateType(value string, rule FieldRule) error {
	switch rule.Type {
	case TypeInt:
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	case TypeDecimal:
		_, err := decimal.NewFromString(value)
		return err
	}
	return nil
}

// Errors returns the error collection
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}
