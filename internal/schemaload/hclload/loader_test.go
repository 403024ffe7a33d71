package hclload_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/VoBaNguyen/qaconf/internal/schemaload/hclload"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

const hclDoc = `
session "qa-package" {
  title = "QA Package Builder"
  shape = "linear"

  section "basic" {
    title    = "Basic Configuration"
    expanded = true

    field "techlib" {
      type     = "enum"
      label    = "Technology Library"
      required = true
      options  = ["gf12lpp", "gf22fdx"]
      default  = "gf12lpp"
    }

    field "run_count" {
      type     = "number"
      required = true
      default  = 4

      rule "min" {
        params = { value = "1" }
      }
      rule "max" {
        params = { value = "16" }
      }
    }

    field "cdf" {
      type    = "bool"
      default = true
    }
  }

  create {
    requires = ["basic"]
  }
}
`

func TestLoadHCL(t *testing.T) {
	doc, err := hclload.Load(context.Background(), schema.SourceFromBytes("test.hcl", []byte(hclDoc)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := schema.SessionSchema{
		ID:    "qa-package",
		Title: "QA Package Builder",
		Shape: schema.ShapeLinear,
		Sections: []schema.SectionSchema{
			{
				ID:       "basic",
				Title:    "Basic Configuration",
				Expanded: true,
				Fields: []schema.FieldSchema{
					{
						ID:       "techlib",
						Type:     schema.FieldTypeEnum,
						Label:    "Technology Library",
						Required: true,
						Enum:     []string{"gf12lpp", "gf22fdx"},
						Default:  "gf12lpp",
					},
					{
						ID:       "run_count",
						Type:     schema.FieldTypeNumber,
						Required: true,
						Default:  float64(4),
						Rules: []schema.Rule{
							{Kind: schema.RuleMin, Params: map[string]string{"value": "1"}},
							{Kind: schema.RuleMax, Params: map[string]string{"value": "16"}},
						},
					},
					{
						ID:      "cdf",
						Type:    schema.FieldTypeBool,
						Default: true,
					},
				},
			},
		},
		Create: schema.ActionSchema{Requires: []string{"basic"}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultsShapeToLinear(t *testing.T) {
	raw := `
session "s" {
  section "a" {
    field "f" { type = "string" }
  }
}
`
	doc, err := hclload.Load(context.Background(), schema.SourceFromBytes("test.hcl", []byte(raw)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Shape != schema.ShapeLinear {
		t.Fatalf("shape = %q, want linear default", doc.Shape)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{name: "no session block", raw: `# empty`, wantErr: "want exactly 1"},
		{
			name: "two session blocks",
			raw: `
session "a" {}
session "b" {}
`,
			wantErr: "want exactly 1",
		},
		{name: "broken syntax", raw: `session "a" {`, wantErr: "parse"},
		{
			name: "unsupported default type",
			raw: `
session "a" {
  section "s" {
    field "f" {
      type    = "string"
      default = ["not", "scalar"]
    }
  }
}
`,
			wantErr: "default",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := hclload.Load(context.Background(), schema.SourceFromBytes("bad.hcl", []byte(tc.raw)))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}
