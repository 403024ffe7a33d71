// Package testsupport provides shared session-document fixtures so package
// tests do not each redeclare the same schema.
package testsupport

import (
	"testing"

	"github.com/VoBaNguyen/qaconf/pkg/schema"
	"github.com/VoBaNguyen/qaconf/pkg/session"
)

// WizardDoc returns a three-section linear document: basic and qa_types are
// required by the create action, paths is optional.
func WizardDoc() schema.SessionSchema {
	doc := schema.SessionSchema{
		ID:    "qa-package",
		Title: "QA Package Builder",
		Shape: schema.ShapeLinear,
		Sections: []schema.SectionSchema{
			{
				ID:    "basic",
				Title: "Basic Configuration",
				Fields: []schema.FieldSchema{
					{
						ID:       "techlib",
						Type:     schema.FieldTypeEnum,
						Label:    "Technology Library",
						Required: true,
						Enum:     []string{"gf12lpp", "gf22fdx", "gf28hpk"},
						Default:  "gf12lpp",
					},
					{
						ID:       "virtuoso_cmd",
						Type:     schema.FieldTypeString,
						Label:    "Virtuoso Command",
						Required: true,
						Rules: []schema.Rule{
							{Kind: schema.RuleMinLength, Params: map[string]string{"value": "3"}},
						},
					},
					{
						ID:      "log_level",
						Type:    schema.FieldTypeEnum,
						Label:   "Log Level",
						Enum:    []string{"DEBUG", "INFO", "WARNING", "ERROR"},
						Default: "INFO",
					},
				},
			},
			{
				ID:    "qa_types",
				Title: "QA Types",
				Fields: []schema.FieldSchema{
					{ID: "cdf", Type: schema.FieldTypeBool, Label: "CDF", Default: true},
					{ID: "drc", Type: schema.FieldTypeBool, Label: "DRC", Default: false},
					{
						ID:       "run_count",
						Type:     schema.FieldTypeNumber,
						Label:    "Run Count",
						Required: true,
						Rules: []schema.Rule{
							{Kind: schema.RuleMin, Params: map[string]string{"value": "1"}},
							{Kind: schema.RuleMax, Params: map[string]string{"value": "16"}},
						},
					},
				},
			},
			{
				ID:    "paths",
				Title: "Paths",
				Fields: []schema.FieldSchema{
					{ID: "output_dir", Type: schema.FieldTypeString, Label: "Output Directory"},
				},
			},
		},
		Create:  schema.ActionSchema{Requires: []string{"basic", "qa_types"}},
		Compare: schema.ActionSchema{Requires: []string{"basic"}},
	}
	return doc
}

// DashboardDoc returns WizardDoc reshaped for free navigation with every
// section initially expanded.
func DashboardDoc() schema.SessionSchema {
	doc := WizardDoc()
	doc.Shape = schema.ShapeFree
	for i := range doc.Sections {
		doc.Sections[i].Expanded = true
	}
	return doc
}

// NewSession builds a session from the supplied document, failing the test on
// error.
func NewSession(t *testing.T, doc schema.SessionSchema, opts ...session.Option) *session.Session {
	t.Helper()
	sess, err := session.New(doc, opts...)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return sess
}

// FillSection sets the fields a fixture section needs to become complete,
// using conventional valid values.
func FillSection(t *testing.T, sess *session.Session, sectionID string) {
	t.Helper()
	switch sectionID {
	case "basic":
		mustSet(t, sess, "virtuoso_cmd", "mvirtuoso -fdry gf")
	case "qa_types":
		mustSet(t, sess, "run_count", 4)
	case "paths":
		mustSet(t, sess, "output_dir", "/tmp/qa-packages")
	default:
		t.Fatalf("FillSection: unknown section %q", sectionID)
	}
}

func mustSet(t *testing.T, sess *session.Session, fieldID string, v any) {
	t.Helper()
	if err := sess.SetFieldValue(fieldID, v); err != nil {
		t.Fatalf("SetFieldValue(%s): %v", fieldID, err)
	}
}
