package schema

// Shape selects the navigation policy a session graph enforces.
type Shape string

const (
	// ShapeLinear gates forward movement on section completion (wizard flows).
	ShapeLinear Shape = "linear"
	// ShapeFree allows any section to be reached at any time (accordion,
	// sidebar and dashboard flows).
	ShapeFree Shape = "free"
)

// FieldType is the enum of value kinds a session field can hold.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeBool   FieldType = "bool"
	FieldTypeEnum   FieldType = "enum"
)

const (
	RuleMin       = "min"
	RuleMax       = "max"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
)

// Rule represents a single validation constraint applied to a field. Use the
// Rule* constants for the built-in numeric and string constraints; any other
// kind is resolved against the session's named-rule registry. Numeric bounds
// and length limits encode their threshold in Params["value"] while pattern
// rules keep the expression in Params["pattern"].
type Rule struct {
	Kind   string            `yaml:"kind" json:"kind"`
	Params map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
}

// FieldSchema declares a single configurable value inside a section.
type FieldSchema struct {
	ID          string    `yaml:"id" json:"id"`
	Type        FieldType `yaml:"type" json:"type"`
	Label       string    `yaml:"label,omitempty" json:"label,omitempty"`
	Required    bool      `yaml:"required,omitempty" json:"required,omitempty"`
	Default     any       `yaml:"default,omitempty" json:"default,omitempty"`
	Enum        []string  `yaml:"enum,omitempty" json:"enum,omitempty"`
	Placeholder string    `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Help        string    `yaml:"help,omitempty" json:"help,omitempty"`
	Rules       []Rule    `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// SectionSchema declares a named, ordered group of fields. Field order is
// significant: it drives tab and step order in every renderer.
type SectionSchema struct {
	ID       string        `yaml:"id" json:"id"`
	Title    string        `yaml:"title,omitempty" json:"title,omitempty"`
	Expanded bool          `yaml:"expanded,omitempty" json:"expanded,omitempty"`
	Fields   []FieldSchema `yaml:"fields" json:"fields"`
}

// ActionSchema scopes a downstream action to the sections it depends on. An
// empty Requires list means every section must be complete.
type ActionSchema struct {
	Requires []string `yaml:"requires,omitempty" json:"requires,omitempty"`
}

// SessionSchema is the full declarative description of a configuration
// session: its sections, their fields, the graph shape, and the section sets
// the create/compare actions depend on. It is supplied once at session start
// and never mutated afterwards.
type SessionSchema struct {
	ID       string          `yaml:"id" json:"id"`
	Title    string          `yaml:"title,omitempty" json:"title,omitempty"`
	Shape    Shape           `yaml:"shape" json:"shape"`
	Sections []SectionSchema `yaml:"sections" json:"sections"`
	Create   ActionSchema    `yaml:"create,omitempty" json:"create,omitempty"`
	Compare  ActionSchema    `yaml:"compare,omitempty" json:"compare,omitempty"`
}

// Section returns the section schema with the given id, if present.
func (s SessionSchema) Section(id string) (SectionSchema, bool) {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return SectionSchema{}, false
}

// SectionIDs returns the declared section order.
func (s SessionSchema) SectionIDs() []string {
	ids := make([]string, 0, len(s.Sections))
	for _, sec := range s.Sections {
		ids = append(ids, sec.ID)
	}
	return ids
}
