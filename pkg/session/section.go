package session

// VisitState tracks whether a section has been the navigation focus.
type VisitState int

const (
	Unvisited VisitState = iota
	Visited
	Active
)

func (v VisitState) String() string {
	switch v {
	case Visited:
		return "visited"
	case Active:
		return "active"
	default:
		return "unvisited"
	}
}

// Section is a named, ordered group of fields. Completion is derived from
// field validity on every read; it is never stored, so it cannot diverge from
// the fields it summarises.
type Section struct {
	id       string
	title    string
	fields   []*Field
	visit    VisitState
	expanded bool
}

func (s *Section) ID() string        { return s.id }
func (s *Section) Title() string     { return s.title }
func (s *Section) Visit() VisitState { return s.visit }
func (s *Section) Expanded() bool    { return s.expanded }

// Fields returns the member fields in declaration order. The slice is a copy;
// the fields themselves are the live session fields.
func (s *Section) Fields() []*Field {
	return append([]*Field(nil), s.fields...)
}

// Complete reports whether every required member field is currently valid.
func (s *Section) Complete() bool {
	for _, f := range s.fields {
		if f.required && !f.valid {
			return false
		}
	}
	return true
}

// ToggleExpanded flips the expanded flag. Single-focus renderers (wizard,
// sidebar) may ignore it entirely; it only carries meaning where several
// sections are visible at once.
func (s *Section) ToggleExpanded() {
	s.expanded = !s.expanded
}

// markVisited moves Unvisited to Visited. Active sections are handled by the
// navigation transition itself.
func (s *Section) markVisited() {
	if s.visit == Unvisited {
		s.visit = Visited
	}
}

func (s *Section) setActive() {
	s.visit = Active
}

func (s *Section) retire() {
	if s.visit == Active {
		s.visit = Visited
	}
}
