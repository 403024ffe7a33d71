// Package text renders a session view as a styled terminal snapshot: every
// section at a glance, the dashboard layout reduced to plain output.
package text

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
	"github.com/VoBaNguyen/qaconf/pkg/render"
	"github.com/VoBaNguyen/qaconf/pkg/session"
)

const defaultWidth = 72

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	sectionStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	completeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	incompleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	invalidStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Renderer is a snapshot-only renderer.
type Renderer struct{}

// New constructs the text renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string { return "text" }

func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render paints the whole view: a header, one block per section with its
// fields and validation messages, and an action-readiness footer.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("text: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	var blocks []string
	blocks = append(blocks, titleStyle.Render(view.Title))

	for _, sec := range view.Sections {
		blocks = append(blocks, renderSection(sec, width))
	}

	blocks = append(blocks, renderFooter(view.Readiness))
	out := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	return []byte(out + "\n"), nil
}

func renderSection(sec render.SectionView, width int) string {
	status := incompleteStyle.Render("○ incomplete")
	if sec.Complete {
		status = completeStyle.Render("● complete")
	}

	header := fmt.Sprintf("%s  %s", titleStyle.Render(sec.Title), status)
	if sec.Active {
		header += mutedStyle.Render("  (active)")
	} else if sec.Visit == session.Visited {
		header += mutedStyle.Render("  (visited)")
	}

	lines := []string{header}
	if sec.Expanded || sec.Active {
		for _, f := range sec.Fields {
			lines = append(lines, renderField(f))
		}
	} else {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d fields hidden", len(sec.Fields))))
	}

	return sectionStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func renderField(f render.FieldView) string {
	label := f.Label
	if label == "" {
		label = f.ID
	}
	if f.Required {
		label += "*"
	}

	value := "—"
	if f.Value != nil {
		value = fmt.Sprintf("%v", f.Value)
	}

	line := fmt.Sprintf("  %s: %s", label, value)
	if !f.Valid {
		line += "  " + invalidStyle.Render("✗ "+f.Message)
	}
	return line
}

func renderFooter(r gate.Readiness) string {
	create := incompleteStyle.Render("Create Package: blocked: " + r.CreateReason)
	if r.CreateEnabled {
		create = completeStyle.Render("Create Package: ready")
	}
	compare := incompleteStyle.Render("Compare Packages: blocked: " + r.CompareReason)
	if r.CompareEnabled {
		compare = completeStyle.Render("Compare Packages: ready")
	}
	return create + "\n" + compare
}
