package session

import (
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

// Field is a single configurable value with a validator chain. Its validity
// flag always reflects the last validation of the current value; it is
// recomputed synchronously on every accepted SetValue and never left stale.
type Field struct {
	id          string
	typ         schema.FieldType
	label       string
	placeholder string
	help        string
	required    bool
	def         any
	enum        []string
	validators  []Validator

	value   any
	valid   bool
	message string
}

func newField(fs schema.FieldSchema, registry *RuleRegistry) (*Field, error) {
	validators, err := compileRules(fs, registry)
	if err != nil {
		return nil, err
	}

	def, err := normalizeValue(fs.ID, fs.Type, fs.Default)
	if err != nil {
		return nil, err
	}

	f := &Field{
		id:          fs.ID,
		typ:         fs.Type,
		label:       fs.Label,
		placeholder: fs.Placeholder,
		help:        fs.Help,
		required:    fs.Required,
		def:         def,
		enum:        append([]string(nil), fs.Enum...),
		validators:  validators,
	}
	f.value = def
	f.revalidate()
	return f, nil
}

func (f *Field) ID() string             { return f.id }
func (f *Field) Type() schema.FieldType { return f.typ }
func (f *Field) Label() string          { return f.label }
func (f *Field) Placeholder() string    { return f.placeholder }
func (f *Field) Help() string           { return f.help }
func (f *Field) Required() bool         { return f.required }
func (f *Field) Enum() []string         { return append([]string(nil), f.enum...) }

// Value returns the current value. Numbers are always float64.
func (f *Field) Value() any { return f.value }

// Valid reports the result of the last validator run against the current
// value.
func (f *Field) Valid() bool { return f.valid }

// Message returns the validation failure message, empty when the field is
// valid.
func (f *Field) Message() string { return f.message }

// SetValue accepts a value of the field's declared type, stores it, and
// re-runs the validator chain. On a type mismatch it returns
// *InvalidTypeError and the prior value is retained untouched.
func (f *Field) SetValue(v any) error {
	normalized, err := normalizeValue(f.id, f.typ, v)
	if err != nil {
		return err
	}
	f.value = normalized
	f.revalidate()
	return nil
}

// Reset restores the field to its declared default and recomputes validity.
func (f *Field) Reset() {
	f.value = f.def
	f.revalidate()
}

func (f *Field) revalidate() {
	if isEmpty(f.value) {
		if f.required {
			f.valid = false
			f.message = "value is required"
		} else {
			f.valid = true
			f.message = ""
		}
		return
	}

	for _, validate := range f.validators {
		if err := validate(f.value); err != nil {
			f.valid = false
			f.message = err.Error()
			return
		}
	}
	f.valid = true
	f.message = ""
}

// normalizeValue type-checks v against the declared field type. Integers are
// widened to float64 so numeric comparisons have one representation. A nil
// value is accepted for every type and means "unset".
func normalizeValue(fieldID string, typ schema.FieldType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch typ {
	case schema.FieldTypeString, schema.FieldTypeEnum:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case schema.FieldTypeNumber:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case schema.FieldTypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}

	return nil, &InvalidTypeError{FieldID: fieldID, Want: typ, Got: v}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}
