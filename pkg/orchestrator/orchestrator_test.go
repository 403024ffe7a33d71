package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/VoBaNguyen/qaconf/pkg/orchestrator"
	"github.com/VoBaNguyen/qaconf/pkg/render"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
	"github.com/VoBaNguyen/qaconf/pkg/session"
	"github.com/VoBaNguyen/qaconf/pkg/testsupport"
)

const yamlDoc = `
id: qa-package
title: QA Package Builder
shape: linear
sections:
  - id: basic
    title: Basic Configuration
    fields:
      - id: techlib
        type: enum
        required: true
        enum: [gf12lpp, gf22fdx]
        default: gf12lpp
`

const hclDoc = `
session "qa-package" {
  title = "QA Package Builder"
  shape = "free"

  section "basic" {
    title = "Basic Configuration"

    field "techlib" {
      type     = "enum"
      required = true
      options  = ["gf12lpp", "gf22fdx"]
      default  = "gf12lpp"
    }
  }
}
`

func TestOpenFromYAMLSource(t *testing.T) {
	o := orchestrator.New()
	ctrl, err := o.Open(context.Background(), orchestrator.Request{
		Source: schema.SourceFromBytes("doc.yaml", []byte(yamlDoc)),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	view := ctrl.View(context.Background())
	if view.Title != "QA Package Builder" {
		t.Fatalf("title = %q", view.Title)
	}
	if len(view.Sections) != 1 || view.Sections[0].ID != "basic" {
		t.Fatalf("sections = %+v", view.Sections)
	}
}

func TestOpenFromHCLSource(t *testing.T) {
	o := orchestrator.New()
	ctrl, err := o.Open(context.Background(), orchestrator.Request{
		Source: schema.SourceFromBytes("doc.hcl", []byte(hclDoc)),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := ctrl.View(context.Background()).Shape; got != schema.ShapeFree {
		t.Fatalf("shape = %q, want free", got)
	}
}

func TestOpenFromDocumentBypassesLoader(t *testing.T) {
	doc := testsupport.WizardDoc()
	o := orchestrator.New()
	ctrl, err := o.Open(context.Background(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := len(ctrl.View(context.Background()).Sections); got != 3 {
		t.Fatalf("sections = %d, want 3", got)
	}
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	o := orchestrator.New()
	_, err := o.Open(context.Background(), orchestrator.Request{
		Source: schema.SourceFromBytes("doc.toml", []byte("id = 1")),
	})
	if err == nil || !strings.Contains(err.Error(), "no loader registered") {
		t.Fatalf("err = %v, want no loader registered", err)
	}
}

func TestOpenRejectsInvalidDocument(t *testing.T) {
	raw := `
id: broken
shape: linear
sections: []
`
	o := orchestrator.New()
	_, err := o.Open(context.Background(), orchestrator.Request{
		Source: schema.SourceFromBytes("doc.yaml", []byte(raw)),
	})
	if err == nil || !strings.Contains(err.Error(), "invalid document") {
		t.Fatalf("err = %v, want invalid document", err)
	}
}

func TestRenderSnapshotUsesDefaultTextRenderer(t *testing.T) {
	o := orchestrator.New()
	out, err := o.RenderSnapshot(context.Background(), orchestrator.Request{
		Source: schema.SourceFromBytes("doc.yaml", []byte(yamlDoc)),
	})
	if err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}
	for _, want := range []string{"QA Package Builder", "Basic Configuration"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("snapshot missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSnapshotRejectsInteractiveRenderer(t *testing.T) {
	o := orchestrator.New()
	_, err := o.RenderSnapshot(context.Background(), orchestrator.Request{
		Source:   schema.SourceFromBytes("doc.yaml", []byte(yamlDoc)),
		Renderer: "wizard",
	})
	if err == nil {
		t.Fatal("wizard is interactive; snapshot rendering must fail")
	}
}

type driveRecorder struct {
	driven bool
}

func (r *driveRecorder) Name() string { return "recorder" }

func (r *driveRecorder) Drive(ctx context.Context, ctrl *render.Controller, _ render.Options) error {
	r.driven = true
	_, err := ctrl.Dispatch(ctx, render.Navigate{SectionID: ctrl.Entry()})
	return err
}

func TestRunDrivesInteractiveRenderer(t *testing.T) {
	rec := &driveRecorder{}
	registry := render.NewRegistry()
	registry.MustRegister(rec)

	o := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("recorder"),
	)
	err := o.Run(context.Background(), orchestrator.Request{
		Source: schema.SourceFromBytes("doc.yaml", []byte(yamlDoc)),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rec.driven {
		t.Fatal("renderer was not driven")
	}
}

func TestValidateReportsSchemaProblems(t *testing.T) {
	o := orchestrator.New()
	err := o.Validate(context.Background(), schema.SourceFromBytes("doc.yaml", []byte(yamlDoc)))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := strings.Replace(yamlDoc, "type: enum", "type: mystery", 1)
	if err := o.Validate(context.Background(), schema.SourceFromBytes("doc.yaml", []byte(bad))); err == nil {
		t.Fatal("expected a validation error for an unknown field type")
	}
}

func TestWithRulesFlowsIntoSessions(t *testing.T) {
	raw := `
id: qa-package
shape: linear
sections:
  - id: basic
    fields:
      - id: output_dir
        type: string
        rules:
          - kind: abs-path
`
	rules := session.NewRuleRegistry()
	rules.MustRegister("abs-path", func(value any) error {
		s, _ := value.(string)
		if !strings.HasPrefix(s, "/") {
			return errors.New("must be an absolute path")
		}
		return nil
	})

	o := orchestrator.New(orchestrator.WithRules(rules))
	if _, err := o.Open(context.Background(), orchestrator.Request{
		Source: schema.SourceFromBytes("doc.yaml", []byte(raw)),
	}); err != nil {
		t.Fatalf("Open with custom rule: %v", err)
	}

	// Without the registry the same document must fail to build.
	if _, err := orchestrator.New().Open(context.Background(), orchestrator.Request{
		Source: schema.SourceFromBytes("doc.yaml", []byte(raw)),
	}); err == nil {
		t.Fatal("expected unknown rule error without a registry")
	}
}
