// Package hclload decodes HCL session documents into the schema types. The
// block layout mirrors the YAML document:
//
//	session "qa-package" {
//	  title = "QA Package Builder"
//	  shape = "linear"
//
//	  section "basic" {
//	    title = "Basic Configuration"
//
//	    field "techlib" {
//	      type     = "enum"
//	      required = true
//	      options  = ["gf12lpp", "gf22fdx"]
//	      default  = "gf12lpp"
//	    }
//	  }
//
//	  create { requires = ["basic"] }
//	}
package hclload

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/VoBaNguyen/qaconf/internal/ctxlog"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

type hclDocument struct {
	Sessions []hclSession `hcl:"session,block"`
}

type hclSession struct {
	ID       string       `hcl:"id,label"`
	Title    string       `hcl:"title,optional"`
	Shape    string       `hcl:"shape,optional"`
	Sections []hclSection `hcl:"section,block"`
	Create   *hclAction   `hcl:"create,block"`
	Compare  *hclAction   `hcl:"compare,block"`
}

type hclSection struct {
	ID       string     `hcl:"id,label"`
	Title    string     `hcl:"title,optional"`
	Expanded bool       `hcl:"expanded,optional"`
	Fields   []hclField `hcl:"field,block"`
}

type hclField struct {
	ID          string    `hcl:"id,label"`
	Type        string    `hcl:"type"`
	Label       string    `hcl:"label,optional"`
	Required    bool      `hcl:"required,optional"`
	Default     cty.Value `hcl:"default,optional"`
	Options     []string  `hcl:"options,optional"`
	Placeholder string    `hcl:"placeholder,optional"`
	Help        string    `hcl:"help,optional"`
	Rules       []hclRule `hcl:"rule,block"`
}

type hclRule struct {
	Kind   string            `hcl:"kind,label"`
	Params map[string]string `hcl:"params,optional"`
}

type hclAction struct {
	Requires []string `hcl:"requires,optional"`
}

// Load parses the source as HCL and maps it onto a SessionSchema. Exactly one
// session block must be present.
func Load(ctx context.Context, src schema.Source) (schema.SessionSchema, error) {
	if src == nil {
		return schema.SessionSchema{}, fmt.Errorf("hclload: source is nil")
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("loading session document", "location", src.Location())

	data, err := src.Read(ctx)
	if err != nil {
		return schema.SessionSchema{}, fmt.Errorf("hclload: read %s: %w", src.Location(), err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, src.Location())
	if diags.HasErrors() {
		return schema.SessionSchema{}, fmt.Errorf("hclload: parse %s: %s", src.Location(), diags.Error())
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return schema.SessionSchema{}, fmt.Errorf("hclload: decode %s: %s", src.Location(), diags.Error())
	}
	if len(doc.Sessions) != 1 {
		return schema.SessionSchema{}, fmt.Errorf("hclload: %s declares %d session blocks, want exactly 1", src.Location(), len(doc.Sessions))
	}

	return mapSession(doc.Sessions[0])
}

func mapSession(in hclSession) (schema.SessionSchema, error) {
	out := schema.SessionSchema{
		ID:    in.ID,
		Title: in.Title,
		Shape: schema.Shape(in.Shape),
	}
	if in.Shape == "" {
		out.Shape = schema.ShapeLinear
	}

	for _, sec := range in.Sections {
		mapped, err := mapSection(sec)
		if err != nil {
			return schema.SessionSchema{}, err
		}
		out.Sections = append(out.Sections, mapped)
	}

	if in.Create != nil {
		out.Create = schema.ActionSchema{Requires: append([]string(nil), in.Create.Requires...)}
	}
	if in.Compare != nil {
		out.Compare = schema.ActionSchema{Requires: append([]string(nil), in.Compare.Requires...)}
	}
	return out, nil
}

func mapSection(in hclSection) (schema.SectionSchema, error) {
	out := schema.SectionSchema{
		ID:       in.ID,
		Title:    in.Title,
		Expanded: in.Expanded,
	}

	for _, f := range in.Fields {
		def, err := ctyToGo(f.Default)
		if err != nil {
			return schema.SectionSchema{}, fmt.Errorf("hclload: field %q default: %w", f.ID, err)
		}

		field := schema.FieldSchema{
			ID:          f.ID,
			Type:        schema.FieldType(f.Type),
			Label:       f.Label,
			Required:    f.Required,
			Default:     def,
			Enum:        append([]string(nil), f.Options...),
			Placeholder: f.Placeholder,
			Help:        f.Help,
		}
		for _, r := range f.Rules {
			params := make(map[string]string, len(r.Params))
			for k, v := range r.Params {
				params[k] = v
			}
			field.Rules = append(field.Rules, schema.Rule{Kind: r.Kind, Params: params})
		}
		out.Fields = append(out.Fields, field)
	}
	return out, nil
}

// ctyToGo converts the decoded default into the plain Go value the session
// layer expects: string, float64, bool, or nil when absent.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}

	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case cty.Bool:
		return v.True(), nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
	}
}
