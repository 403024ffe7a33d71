package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	errSessionIDMissing = errors.New("schema: session id is required")
	errNoSections       = errors.New("schema: at least one section is required")
)

var knownShapes = map[Shape]struct{}{
	ShapeLinear: {},
	ShapeFree:   {},
}

var knownFieldTypes = map[FieldType]struct{}{
	FieldTypeString: {},
	FieldTypeNumber: {},
	FieldTypeBool:   {},
	FieldTypeEnum:   {},
}

// Validate checks a session document for structural problems: missing ids,
// duplicate section or field identifiers, unknown shapes and field types,
// enum declarations without options, malformed rule parameters, and action
// requirements referencing sections that do not exist. It returns the first
// problem found.
func Validate(doc SessionSchema) error {
	if doc.ID == "" {
		return errSessionIDMissing
	}
	if len(doc.Sections) == 0 {
		return errNoSections
	}
	if _, ok := knownShapes[doc.Shape]; !ok {
		return fmt.Errorf("schema: unknown shape %q", doc.Shape)
	}

	sectionIDs := make(map[string]struct{}, len(doc.Sections))
	fieldIDs := make(map[string]struct{})
	for _, sec := range doc.Sections {
		if sec.ID == "" {
			return fmt.Errorf("schema: section with empty id (title %q)", sec.Title)
		}
		if _, dup := sectionIDs[sec.ID]; dup {
			return fmt.Errorf("schema: duplicate section id %q", sec.ID)
		}
		sectionIDs[sec.ID] = struct{}{}

		for _, field := range sec.Fields {
			if err := validateField(sec.ID, field, fieldIDs); err != nil {
				return err
			}
		}
	}

	if err := validateRequires("create", doc.Create, sectionIDs); err != nil {
		return err
	}
	return validateRequires("compare", doc.Compare, sectionIDs)
}

func validateField(sectionID string, field FieldSchema, seen map[string]struct{}) error {
	if field.ID == "" {
		return fmt.Errorf("schema: section %q contains a field with empty id", sectionID)
	}
	if _, dup := seen[field.ID]; dup {
		return fmt.Errorf("schema: duplicate field id %q", field.ID)
	}
	seen[field.ID] = struct{}{}

	if _, ok := knownFieldTypes[field.Type]; !ok {
		return fmt.Errorf("schema: field %q has unknown type %q", field.ID, field.Type)
	}

	if field.Type == FieldTypeEnum {
		if len(field.Enum) == 0 {
			return fmt.Errorf("schema: enum field %q declares no options", field.ID)
		}
		if field.Default != nil {
			def, ok := field.Default.(string)
			if !ok || !containsOption(field.Enum, def) {
				return fmt.Errorf("schema: enum field %q default %v is not an option", field.ID, field.Default)
			}
		}
	}

	for _, rule := range field.Rules {
		if err := validateRule(field, rule); err != nil {
			return err
		}
	}
	return nil
}

func validateRule(field FieldSchema, rule Rule) error {
	switch rule.Kind {
	case RuleMin, RuleMax:
		if field.Type != FieldTypeNumber {
			return fmt.Errorf("schema: rule %q on non-number field %q", rule.Kind, field.ID)
		}
		if _, err := strconv.ParseFloat(rule.Params["value"], 64); err != nil {
			return fmt.Errorf("schema: rule %q on field %q has invalid value: %w", rule.Kind, field.ID, err)
		}
	case RuleMinLength, RuleMaxLength:
		if field.Type != FieldTypeString {
			return fmt.Errorf("schema: rule %q on non-string field %q", rule.Kind, field.ID)
		}
		if _, err := strconv.Atoi(rule.Params["value"]); err != nil {
			return fmt.Errorf("schema: rule %q on field %q has invalid value: %w", rule.Kind, field.ID, err)
		}
	case RulePattern:
		if field.Type != FieldTypeString {
			return fmt.Errorf("schema: rule %q on non-string field %q", rule.Kind, field.ID)
		}
		if _, err := regexp.Compile(rule.Params["pattern"]); err != nil {
			return fmt.Errorf("schema: rule %q on field %q has invalid pattern: %w", rule.Kind, field.ID, err)
		}
	case "":
		return fmt.Errorf("schema: field %q declares a rule with empty kind", field.ID)
	default:
		// Named rule; existence is checked against the registry when the
		// session is built, since registries are caller-supplied.
	}
	return nil
}

func validateRequires(action string, spec ActionSchema, sections map[string]struct{}) error {
	for _, id := range spec.Requires {
		if _, ok := sections[id]; !ok {
			return fmt.Errorf("schema: %s action requires unknown section %q", action, id)
		}
	}
	return nil
}

func containsOption(options []string, v string) bool {
	for _, opt := range options {
		if opt == v {
			return true
		}
	}
	return false
}
