package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoBaNguyen/qaconf/pkg/render"
)

func (m model) View() string {
	var body string
	switch m.layout {
	case LayoutSidebar:
		body = m.viewSidebar()
	case LayoutDashboard:
		body = m.viewDashboard()
	default:
		body = m.viewAccordion()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), body, m.viewFooter())
}

func (m model) viewHeader() string {
	return titleStyle.Render(m.view.Title)
}

// viewAccordion stacks every section; only expanded or active ones show their
// fields.
func (m model) viewAccordion() string {
	blocks := make([]string, 0, len(m.view.Sections))
	for i, sec := range m.view.Sections {
		active := i == m.secIdx
		var b strings.Builder
		b.WriteString(m.sectionHeading(sec))
		if sec.Expanded || sec.Active {
			for j, f := range sec.Fields {
				b.WriteString("\n")
				b.WriteString(m.fieldLine(f, active && j == m.fieldIdx))
			}
		} else {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d fields hidden", len(sec.Fields))))
		}
		style := sectionStyle
		if active {
			style = activeSectionStyle
		}
		blocks = append(blocks, style.Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// viewSidebar puts the section list on the left and the active section's
// fields on the right.
func (m model) viewSidebar() string {
	var nav strings.Builder
	for i, sec := range m.view.Sections {
		marker := "  "
		if i == m.secIdx {
			marker = cursorStyle.Render("> ")
		}
		nav.WriteString(marker + m.sectionHeading(sec) + "\n")
	}

	var detail strings.Builder
	if sec, ok := m.activeSection(); ok {
		detail.WriteString(m.sectionHeading(sec))
		for j, f := range sec.Fields {
			detail.WriteString("\n")
			detail.WriteString(m.fieldLine(f, j == m.fieldIdx))
		}
	}

	left := sectionStyle.Render(strings.TrimRight(nav.String(), "\n"))
	right := activeSectionStyle.Render(detail.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// viewDashboard lays every section out expanded, two per row.
func (m model) viewDashboard() string {
	blocks := make([]string, 0, len(m.view.Sections))
	for i, sec := range m.view.Sections {
		active := i == m.secIdx
		var b strings.Builder
		b.WriteString(m.sectionHeading(sec))
		for j, f := range sec.Fields {
			b.WriteString("\n")
			b.WriteString(m.fieldLine(f, active && j == m.fieldIdx))
		}
		style := sectionStyle
		if active {
			style = activeSectionStyle
		}
		blocks = append(blocks, style.Render(b.String()))
	}

	rows := make([]string, 0, (len(blocks)+1)/2)
	for i := 0; i < len(blocks); i += 2 {
		if i+1 < len(blocks) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks[i], blocks[i+1]))
		} else {
			rows = append(rows, blocks[i])
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) sectionHeading(sec render.SectionView) string {
	if sec.Complete {
		return completeStyle.Render("✓ ") + sec.Title
	}
	return incompleteStyle.Render("○ ") + sec.Title
}

func (m model) fieldLine(f render.FieldView, selected bool) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("> ")
	}

	label := fieldLabel(f)
	if f.Required {
		label += "*"
	}

	if selected && m.editing {
		return fmt.Sprintf("%s%s: %s", prefix, label, m.input.View())
	}

	value := formatValue(f.Value)
	if value == "" {
		value = mutedStyle.Render("(unset)")
	}
	line := fmt.Sprintf("%s%s: %s", prefix, label, value)
	if !f.Valid {
		line += "  " + invalidStyle.Render("✗ "+f.Message)
	}
	return line
}

func (m model) viewFooter() string {
	lines := []string{m.readinessLine()}

	if m.status != "" {
		if m.statusErr {
			lines = append(lines, statusErrStyle.Render(m.status))
		} else {
			lines = append(lines, statusOKStyle.Render(m.status))
		}
	}

	help := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}
	lines = append(lines, mutedStyle.Render(strings.Join(help, " · ")))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m model) readinessLine() string {
	r := m.view.Readiness

	create := "Create Package: " + invalidStyle.Render("blocked: "+r.CreateReason)
	if r.CreateEnabled {
		create = "Create Package: " + completeStyle.Render("ready")
	}
	compare := "Compare: " + invalidStyle.Render("blocked: "+r.CompareReason)
	if r.CompareEnabled {
		compare = "Compare: " + completeStyle.Render("ready")
	}
	return create + "   " + compare
}
