package render

import (
	"context"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
	"github.com/VoBaNguyen/qaconf/pkg/session"
)

// FieldView is the read-only projection of one field.
type FieldView struct {
	ID          string
	Label       string
	Type        schema.FieldType
	Required    bool
	Value       any
	Valid       bool
	Message     string
	Enum        []string
	Placeholder string
	Help        string
}

// SectionView is the read-only projection of one section.
type SectionView struct {
	ID       string
	Title    string
	Visit    session.VisitState
	Expanded bool
	Complete bool
	Active   bool
	Fields   []FieldView
}

// View is everything a renderer needs to repaint: section and field state
// plus current action readiness. It is rebuilt from the live session after
// every applied intent; renderers never mutate it.
type View struct {
	SessionID string
	Title     string
	Shape     schema.Shape
	Current   string
	Sections  []SectionView
	Readiness gate.Readiness
}

// Section returns the projected section with the given id.
func (v View) Section(id string) (SectionView, bool) {
	for _, sec := range v.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return SectionView{}, false
}

// BuildView projects the live session and gate into an immutable View.
func BuildView(ctx context.Context, sess *session.Session, g *gate.Gate) View {
	view := View{
		SessionID: sess.ID(),
		Title:     sess.Title(),
		Shape:     sess.Graph().Shape(),
		Current:   sess.Current(),
	}
	if g != nil {
		view.Readiness = g.Evaluate(ctx)
	}

	for _, sec := range sess.Sections() {
		sv := SectionView{
			ID:       sec.ID(),
			Title:    sec.Title(),
			Visit:    sec.Visit(),
			Expanded: sec.Expanded(),
			Complete: sec.Complete(),
			Active:   sec.ID() == sess.Current(),
		}
		for _, f := range sec.Fields() {
			sv.Fields = append(sv.Fields, FieldView{
				ID:          f.ID(),
				Label:       f.Label(),
				Type:        f.Type(),
				Required:    f.Required(),
				Value:       f.Value(),
				Valid:       f.Valid(),
				Message:     f.Message(),
				Enum:        f.Enum(),
				Placeholder: f.Placeholder(),
				Help:        f.Help(),
			})
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}
