// Package tui implements the full-screen interactive layouts on Bubble Tea:
// accordion, sidebar, and dashboard. All three drive the same session through
// the controller; they differ only in how sections are laid out and how much
// of the document is visible at once.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/VoBaNguyen/qaconf/pkg/render"
)

// Layout selects how sections are arranged on screen.
type Layout string

const (
	// LayoutAccordion stacks sections vertically, expanding one at a time.
	LayoutAccordion Layout = "accordion"
	// LayoutSidebar shows the section list beside the active section.
	LayoutSidebar Layout = "sidebar"
	// LayoutDashboard shows every section expanded at once. It pairs with
	// free-shaped graphs.
	LayoutDashboard Layout = "dashboard"
)

// Renderer implements render.InteractiveRenderer for one layout. Register one
// instance per layout to expose all three under their own names.
type Renderer struct {
	layout Layout
}

// New constructs a renderer for the given layout.
func New(layout Layout) *Renderer {
	return &Renderer{layout: layout}
}

func (r *Renderer) Name() string { return string(r.layout) }

// Drive runs the Bubble Tea program until the user quits or the context is
// cancelled.
func (r *Renderer) Drive(ctx context.Context, ctrl *render.Controller, opts render.Options) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Out != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Out))
	}

	if _, err := tea.NewProgram(newModel(ctx, ctrl, r.layout), progOpts...).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
