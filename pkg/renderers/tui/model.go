package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
	"github.com/VoBaNguyen/qaconf/pkg/render"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

// invokeDoneMsg carries a settled collaborator result back into the update
// loop.
type invokeDoneMsg struct {
	action  gate.Action
	outcome gate.Outcome
	err     error
}

type model struct {
	ctx    context.Context
	ctrl   *render.Controller
	layout Layout
	keys   keyMap

	view     render.View
	secIdx   int
	fieldIdx int

	editing bool
	input   textinput.Model

	busy      bool
	status    string
	statusErr bool

	width  int
	height int
}

func newModel(ctx context.Context, ctrl *render.Controller, layout Layout) model {
	input := textinput.New()
	input.CharLimit = 256

	m := model{ctx: ctx, ctrl: ctrl, layout: layout, keys: newKeyMap(), input: input, width: 80}
	if view := ctrl.View(ctx); view.Current == "" {
		if _, err := ctrl.Dispatch(ctx, render.Navigate{SectionID: ctrl.Entry()}); err != nil {
			m.setError(err.Error())
		}
	}
	m.refresh()
	m.secIdx = sectionIndex(m.view, m.view.Current)
	return m
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case invokeDoneMsg:
		return m.handleInvokeDone(msg)

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m model) handleInvokeDone(msg invokeDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.setError(fmt.Sprintf("%s failed: %v", msg.action, msg.err))
	} else {
		s := fmt.Sprintf("%s finished", msg.action)
		if msg.outcome.Detail != "" {
			s += ": " + msg.outcome.Detail
		}
		if msg.outcome.Ref != "" {
			s += " (" + msg.outcome.Ref + ")"
		}
		m.setStatus(s)
	}
	m.refresh()
	return m, nil
}

func (m model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if sec, ok := m.activeSection(); ok && m.fieldIdx < len(sec.Fields)-1 {
			m.fieldIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.fieldIdx > 0 {
			m.fieldIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.NextSec):
		return m.moveSection(1), nil

	case key.Matches(msg, m.keys.PrevSec):
		return m.moveSection(-1), nil

	case key.Matches(msg, m.keys.Expand):
		if sec, ok := m.activeSection(); ok {
			if _, err := m.ctrl.Dispatch(m.ctx, render.Toggle{SectionID: sec.ID}); err != nil {
				m.setError(err.Error())
			}
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit(), nil

	case key.Matches(msg, m.keys.Create):
		return m.startInvoke(gate.ActionCreate)

	case key.Matches(msg, m.keys.Compare):
		return m.startInvoke(gate.ActionCompare)
	}
	return m, nil
}

// moveSection asks the graph for the adjacent section. Denials surface in the
// status line; the cursor only moves when the session accepted the move.
func (m model) moveSection(delta int) model {
	target := m.secIdx + delta
	if target < 0 || target >= len(m.view.Sections) {
		return m
	}
	if _, err := m.ctrl.Dispatch(m.ctx, render.Navigate{SectionID: m.view.Sections[target].ID}); err != nil {
		m.setError(err.Error())
		m.refresh()
		return m
	}
	m.secIdx = target
	m.fieldIdx = 0
	m.setStatus("")
	m.refresh()
	return m
}

func (m model) startEdit() model {
	sec, ok := m.activeSection()
	if !ok || m.fieldIdx >= len(sec.Fields) {
		return m
	}
	f := sec.Fields[m.fieldIdx]

	switch f.Type {
	case schema.FieldTypeBool:
		val, _ := f.Value.(bool)
		if _, err := m.ctrl.Dispatch(m.ctx, render.Edit{FieldID: f.ID, Value: !val}); err != nil {
			m.setError(err.Error())
		}
		m.refresh()
		return m

	case schema.FieldTypeEnum:
		if _, err := m.ctrl.Dispatch(m.ctx, render.Edit{FieldID: f.ID, Value: nextEnum(f)}); err != nil {
			m.setError(err.Error())
		}
		m.refresh()
		return m

	default:
		m.editing = true
		m.input.SetValue(formatValue(f.Value))
		m.input.Placeholder = f.Placeholder
		m.input.CursorEnd()
		m.input.Focus()
		return m
	}
}

func (m model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		return m.commitEdit(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) commitEdit() model {
	sec, ok := m.activeSection()
	if !ok || m.fieldIdx >= len(sec.Fields) {
		m.editing = false
		return m
	}
	f := sec.Fields[m.fieldIdx]
	raw := m.input.Value()

	var value any
	switch f.Type {
	case schema.FieldTypeNumber:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			value = nil
		} else {
			n, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				m.setError(fmt.Sprintf("%s: not a number", fieldLabel(f)))
				return m
			}
			value = n
		}
	default:
		value = raw
	}

	m.editing = false
	m.input.Blur()
	if _, err := m.ctrl.Dispatch(m.ctx, render.Edit{FieldID: f.ID, Value: value}); err != nil {
		m.setError(err.Error())
		return m
	}
	m.refresh()

	if after, ok := m.activeSection(); ok && m.fieldIdx < len(after.Fields) {
		if f := after.Fields[m.fieldIdx]; !f.Valid {
			m.setError(fmt.Sprintf("%s: %s", fieldLabel(f), f.Message))
		} else {
			m.setStatus("")
		}
	}
	return m
}

// startInvoke dispatches the action and hands back a command that waits for
// the collaborator. The gate keeps both actions disabled until the result
// lands, so a second press while busy is rejected with a reason.
func (m model) startInvoke(action gate.Action) (tea.Model, tea.Cmd) {
	inv, err := m.ctrl.Dispatch(m.ctx, render.Invoke{Action: action})
	if err != nil {
		m.setError(err.Error())
		m.refresh()
		return m, nil
	}
	m.busy = true
	m.setStatus(fmt.Sprintf("%s running...", action))
	m.refresh()

	ctx := m.ctx
	return m, func() tea.Msg {
		outcome, err := inv.Wait(ctx)
		return invokeDoneMsg{action: inv.Action(), outcome: outcome, err: err}
	}
}

func (m *model) refresh() {
	m.view = m.ctrl.View(m.ctx)
	if m.secIdx >= len(m.view.Sections) {
		m.secIdx = len(m.view.Sections) - 1
	}
	if m.secIdx < 0 {
		m.secIdx = 0
	}
	if sec, ok := m.activeSection(); ok && m.fieldIdx >= len(sec.Fields) {
		m.fieldIdx = len(sec.Fields) - 1
	}
	if m.fieldIdx < 0 {
		m.fieldIdx = 0
	}
}

func (m *model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m model) activeSection() (render.SectionView, bool) {
	if m.secIdx < 0 || m.secIdx >= len(m.view.Sections) {
		return render.SectionView{}, false
	}
	return m.view.Sections[m.secIdx], true
}

func sectionIndex(view render.View, id string) int {
	for i, sec := range view.Sections {
		if sec.ID == id {
			return i
		}
	}
	return 0
}

// nextEnum cycles to the option after the current value, wrapping around.
func nextEnum(f render.FieldView) any {
	if len(f.Enum) == 0 {
		return f.Value
	}
	cur, _ := f.Value.(string)
	for i, opt := range f.Enum {
		if opt == cur {
			return f.Enum[(i+1)%len(f.Enum)]
		}
	}
	return f.Enum[0]
}

func fieldLabel(f render.FieldView) string {
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
