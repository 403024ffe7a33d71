// Package prompt implements the wizard layout: one section at a time, fields
// prompted in declaration order, forward movement gated by the session graph.
// It drives any graph shape but shines with the linear one.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
	"github.com/VoBaNguyen/qaconf/pkg/render"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

// Option configures the wizard renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// Renderer implements render.InteractiveRenderer over a PromptDriver.
type Renderer struct {
	driver PromptDriver
}

// New constructs a wizard renderer with the survey-backed driver by default.
func New(options ...Option) *Renderer {
	r := &Renderer{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string { return "wizard" }

// Drive walks every section from the graph entry, prompting each field until
// it validates, then offers the enabled downstream actions.
func (r *Renderer) Drive(ctx context.Context, ctrl *render.Controller, opts render.Options) error {
	if _, err := ctrl.Dispatch(ctx, render.Navigate{SectionID: ctrl.Entry()}); err != nil {
		return err
	}

	for {
		view := ctrl.View(ctx)
		sec, ok := view.Section(view.Current)
		if !ok {
			return fmt.Errorf("prompt: current section %q missing from view", view.Current)
		}

		if err := r.driver.Info(ctx, fmt.Sprintf("[ %s ]", sec.Title)); err != nil {
			return err
		}
		if err := r.fillSection(ctx, ctrl, sec.ID); err != nil {
			return err
		}

		next, done := nextSection(ctrl.View(ctx))
		if done {
			break
		}
		if _, err := ctrl.Dispatch(ctx, render.Navigate{SectionID: next}); err != nil {
			return err
		}
	}

	return r.offerActions(ctx, ctrl)
}

// fillSection prompts each field of the section in declaration order,
// re-prompting while the session reports the value invalid. Optional fields
// may be left empty.
func (r *Renderer) fillSection(ctx context.Context, ctrl *render.Controller, sectionID string) error {
	sec, _ := ctrl.View(ctx).Section(sectionID)

	for _, fieldID := range fieldIDs(sec) {
		for {
			current, _ := ctrl.View(ctx).Section(sectionID)
			f, ok := fieldByID(current, fieldID)
			if !ok {
				return fmt.Errorf("prompt: field %q missing from view", fieldID)
			}

			value, err := r.promptField(ctx, f)
			if err != nil {
				return err
			}
			if _, err := ctrl.Dispatch(ctx, render.Edit{FieldID: fieldID, Value: value}); err != nil {
				return err
			}

			after, _ := ctrl.View(ctx).Section(sectionID)
			f, _ = fieldByID(after, fieldID)
			if f.Valid {
				break
			}
			if err := r.driver.Info(ctx, fmt.Sprintf("  %s: %s", label(f), f.Message)); err != nil {
				return err
			}
		}
	}
	return nil
}

func fieldIDs(sec render.SectionView) []string {
	ids := make([]string, 0, len(sec.Fields))
	for _, f := range sec.Fields {
		ids = append(ids, f.ID)
	}
	return ids
}

func fieldByID(sec render.SectionView, id string) (render.FieldView, bool) {
	for _, f := range sec.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return render.FieldView{}, false
}

func (r *Renderer) promptField(ctx context.Context, f render.FieldView) (any, error) {
	switch f.Type {
	case schema.FieldTypeEnum:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label(f),
			Options:      f.Enum,
			DefaultIndex: indexOf(f.Enum, f.Value),
			Help:         f.Help,
		})
		if err != nil {
			return nil, err
		}
		return f.Enum[idx], nil

	case schema.FieldTypeBool:
		def, _ := f.Value.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: label(f), Default: def, Help: f.Help})

	case schema.FieldTypeNumber:
		for {
			raw, err := r.driver.Input(ctx, InputConfig{Message: label(f), Default: formatValue(f.Value), Help: f.Help})
			if err != nil {
				return nil, err
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				return nil, nil
			}
			n, err := strconv.ParseFloat(raw, 64)
			if err == nil {
				return n, nil
			}
			if err := r.driver.Info(ctx, fmt.Sprintf("  %s: not a number", label(f))); err != nil {
				return nil, err
			}
		}

	default:
		return r.driver.Input(ctx, InputConfig{
			Message:     label(f),
			Default:     formatValue(f.Value),
			Help:        f.Help,
			Placeholder: f.Placeholder,
		})
	}
}

// offerActions evaluates readiness once all sections were walked and lets the
// user fire the enabled actions.
func (r *Renderer) offerActions(ctx context.Context, ctrl *render.Controller) error {
	view := ctrl.View(ctx)

	if view.Readiness.CreateEnabled {
		yes, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Create package now?", Default: true})
		if err != nil {
			return err
		}
		if yes {
			if err := r.invoke(ctx, ctrl, gate.ActionCreate); err != nil {
				return err
			}
		}
	} else if err := r.driver.Info(ctx, "Create Package unavailable: "+view.Readiness.CreateReason); err != nil {
		return err
	}

	view = ctrl.View(ctx)
	if view.Readiness.CompareEnabled {
		yes, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Compare against prior packages?", Default: false})
		if err != nil {
			return err
		}
		if yes {
			return r.invoke(ctx, ctrl, gate.ActionCompare)
		}
	}
	return nil
}

func (r *Renderer) invoke(ctx context.Context, ctrl *render.Controller, action gate.Action) error {
	inv, err := ctrl.Dispatch(ctx, render.Invoke{Action: action})
	if err != nil {
		return err
	}
	outcome, err := inv.Wait(ctx)
	if err != nil {
		// Collaborator failures are retryable; report and keep the session.
		return r.driver.Info(ctx, fmt.Sprintf("%s failed: %v", action, err))
	}
	msg := fmt.Sprintf("%s finished", action)
	if outcome.Detail != "" {
		msg += ": " + outcome.Detail
	}
	if outcome.Ref != "" {
		msg += " (" + outcome.Ref + ")"
	}
	return r.driver.Info(ctx, msg)
}

// nextSection returns the section after the current one in view order.
func nextSection(view render.View) (string, bool) {
	for i, sec := range view.Sections {
		if sec.ID == view.Current {
			if i+1 < len(view.Sections) {
				return view.Sections[i+1].ID, false
			}
			return "", true
		}
	}
	return "", true
}

func label(f render.FieldView) string {
	if f.Label != "" {
		return f.Label
	}
	return f.ID
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprintf("%v", v)
}

func indexOf(options []string, v any) int {
	s, _ := v.(string)
	for i, opt := range options {
		if opt == s {
			return i
		}
	}
	return 0
}
