package session

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

// Validator inspects an already type-checked value and returns nil when it is
// acceptable. A non-nil error is a normal validation failure, not a fault:
// its message is surfaced to renderers next to the field.
type Validator func(value any) error

// RuleRegistry resolves named (non built-in) rule kinds to validators so
// schema documents can reference domain checks such as "abs-path".
type RuleRegistry struct {
	mu    sync.RWMutex
	rules map[string]Validator
}

// NewRuleRegistry creates an empty registry instance.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{rules: make(map[string]Validator)}
}

// Register adds a named validator. Duplicate names return an error.
func (r *RuleRegistry) Register(name string, v Validator) error {
	if name == "" {
		return fmt.Errorf("session: rule name is required")
	}
	if v == nil {
		return fmt.Errorf("session: rule %q has nil validator", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[name]; exists {
		return fmt.Errorf("session: rule %q already registered", name)
	}
	r.rules[name] = v
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *RuleRegistry) MustRegister(name string, v Validator) {
	if err := r.Register(name, v); err != nil {
		panic(err)
	}
}

// Names returns the registered rule names in sorted order.
func (r *RuleRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *RuleRegistry) resolve(name string) (Validator, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.rules[name]
	return v, ok
}

// compileRules turns a field's declared rules into a validator chain. The
// enum membership check is appended implicitly for enum fields.
func compileRules(field schema.FieldSchema, registry *RuleRegistry) ([]Validator, error) {
	var out []Validator

	for _, rule := range field.Rules {
		v, err := compileRule(field, rule, registry)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	if field.Type == schema.FieldTypeEnum {
		options := append([]string(nil), field.Enum...)
		out = append(out, func(value any) error {
			s, _ := value.(string)
			for _, opt := range options {
				if opt == s {
					return nil
				}
			}
			return fmt.Errorf("%q is not one of the allowed options", s)
		})
	}

	return out, nil
}

func compileRule(field schema.FieldSchema, rule schema.Rule, registry *RuleRegistry) (Validator, error) {
	switch rule.Kind {
	case schema.RuleMin:
		limit, err := strconv.ParseFloat(rule.Params["value"], 64)
		if err != nil {
			return nil, fmt.Errorf("session: field %q min rule: %w", field.ID, err)
		}
		return func(value any) error {
			if n, ok := value.(float64); ok && n < limit {
				return fmt.Errorf("must be at least %v", limit)
			}
			return nil
		}, nil

	case schema.RuleMax:
		limit, err := strconv.ParseFloat(rule.Params["value"], 64)
		if err != nil {
			return nil, fmt.Errorf("session: field %q max rule: %w", field.ID, err)
		}
		return func(value any) error {
			if n, ok := value.(float64); ok && n > limit {
				return fmt.Errorf("must be at most %v", limit)
			}
			return nil
		}, nil

	case schema.RuleMinLength:
		limit, err := strconv.Atoi(rule.Params["value"])
		if err != nil {
			return nil, fmt.Errorf("session: field %q minLength rule: %w", field.ID, err)
		}
		return func(value any) error {
			if s, ok := value.(string); ok && len([]rune(s)) < limit {
				return fmt.Errorf("must be at least %d characters", limit)
			}
			return nil
		}, nil

	case schema.RuleMaxLength:
		limit, err := strconv.Atoi(rule.Params["value"])
		if err != nil {
			return nil, fmt.Errorf("session: field %q maxLength rule: %w", field.ID, err)
		}
		return func(value any) error {
			if s, ok := value.(string); ok && len([]rune(s)) > limit {
				return fmt.Errorf("must be at most %d characters", limit)
			}
			return nil
		}, nil

	case schema.RulePattern:
		re, err := regexp.Compile(rule.Params["pattern"])
		if err != nil {
			return nil, fmt.Errorf("session: field %q pattern rule: %w", field.ID, err)
		}
		return func(value any) error {
			if s, ok := value.(string); ok && !re.MatchString(s) {
				return fmt.Errorf("must match %s", re)
			}
			return nil
		}, nil

	default:
		if v, ok := registry.resolve(rule.Kind); ok {
			return v, nil
		}
		return nil, fmt.Errorf("session: field %q references unknown rule %q", field.ID, rule.Kind)
	}
}
