package session

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

// Option customises session construction.
type Option func(*config)

type config struct {
	rules *RuleRegistry
}

// WithRules supplies the named-rule registry used to resolve non built-in
// rule kinds.
func WithRules(registry *RuleRegistry) Option {
	return func(c *config) {
		c.rules = registry
	}
}

// Session is the single source of truth for one in-progress configuration.
// It owns every field value and section flag, and is mutated only through
// SetFieldValue and NavigateTo. Each session owns its graph exclusively;
// nothing is shared across sessions.
type Session struct {
	id    string
	title string

	graph       *Graph
	sections    []*Section
	sectionByID map[string]*Section
	fieldByID   map[string]*Field
	ownerByID   map[string]*Section

	current string

	// closed is read by the gate's dispatch goroutine while Close may run on
	// the UI thread, so it needs atomic access.
	closed atomic.Bool
}

// New validates the document and builds a live session from it. The document
// defines the configuration once at startup; the section set and graph shape
// cannot change afterwards.
func New(doc schema.SessionSchema, opts ...Option) (*Session, error) {
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := &Session{
		id:          doc.ID,
		title:       doc.Title,
		sectionByID: make(map[string]*Section, len(doc.Sections)),
		fieldByID:   make(map[string]*Field),
		ownerByID:   make(map[string]*Section),
	}

	for _, secSchema := range doc.Sections {
		sec := &Section{
			id:       secSchema.ID,
			title:    secSchema.Title,
			expanded: secSchema.Expanded,
		}
		for _, fieldSchema := range secSchema.Fields {
			field, err := newField(fieldSchema, cfg.rules)
			if err != nil {
				return nil, err
			}
			sec.fields = append(sec.fields, field)
			s.fieldByID[field.id] = field
			s.ownerByID[field.id] = sec
		}
		s.sections = append(s.sections, sec)
		s.sectionByID[sec.id] = sec
	}

	graph, err := newGraph(doc.Shape, doc.SectionIDs())
	if err != nil {
		return nil, err
	}
	s.graph = graph
	return s, nil
}

func (s *Session) ID() string    { return s.id }
func (s *Session) Title() string { return s.title }
func (s *Session) Graph() *Graph { return s.graph }

// Current returns the id of the section in focus, empty before the first
// navigation.
func (s *Session) Current() string { return s.current }

// Sections returns the sections in graph order.
func (s *Session) Sections() []*Section {
	return append([]*Section(nil), s.sections...)
}

// Section returns the named section.
func (s *Session) Section(id string) (*Section, bool) {
	sec, ok := s.sectionByID[id]
	return sec, ok
}

// Field returns the named field.
func (s *Session) Field(id string) (*Field, bool) {
	f, ok := s.fieldByID[id]
	return f, ok
}

// Owner returns the section a field belongs to.
func (s *Session) Owner(fieldID string) (*Section, bool) {
	sec, ok := s.ownerByID[fieldID]
	return sec, ok
}

// SetFieldValue delegates to the named field, returning *UnknownFieldError
// when the id is not part of the session and *InvalidTypeError on a type
// mismatch. Validity is recomputed before this returns.
func (s *Session) SetFieldValue(fieldID string, value any) error {
	f, ok := s.fieldByID[fieldID]
	if !ok {
		return &UnknownFieldError{FieldID: fieldID}
	}
	return f.SetValue(value)
}

// NavigateTo moves the focus to the named section when the graph policy
// allows it. Navigating to the current section is a no-op, not an error. On
// success the previous section's visit state becomes Visited and the target
// becomes Active.
func (s *Session) NavigateTo(sectionID string) error {
	// The shortcut only applies once a section is in focus; before the first
	// navigation an empty target is bogus and must go through the graph check.
	if s.current != "" && sectionID == s.current {
		return nil
	}

	fromComplete := true
	if s.current != "" {
		fromComplete = s.sectionByID[s.current].Complete()
	}
	if err := s.graph.canNavigate(s.current, sectionID, fromComplete); err != nil {
		return err
	}

	if s.current != "" {
		s.sectionByID[s.current].retire()
	}
	target := s.sectionByID[sectionID]
	target.markVisited()
	target.setActive()
	s.current = sectionID
	return nil
}

// Complete reports whether every listed section is complete. An empty list
// means all sections.
func (s *Session) Complete(sectionIDs ...string) bool {
	if len(sectionIDs) == 0 {
		for _, sec := range s.sections {
			if !sec.Complete() {
				return false
			}
		}
		return true
	}
	for _, id := range sectionIDs {
		sec, ok := s.sectionByID[id]
		if !ok || !sec.Complete() {
			return false
		}
	}
	return true
}

// Snapshot is an immutable, point-in-time copy of every field value. It
// shares nothing with the live session: later mutations cannot leak into a
// dispatched snapshot.
type Snapshot struct {
	sessionID string
	takenAt   time.Time
	values    map[string]any
}

func (snap Snapshot) SessionID() string  { return snap.sessionID }
func (snap Snapshot) TakenAt() time.Time { return snap.takenAt }

// Value returns a single captured value.
func (snap Snapshot) Value(fieldID string) (any, bool) {
	v, ok := snap.values[fieldID]
	return v, ok
}

// Values returns a fresh copy of the captured values.
func (snap Snapshot) Values() map[string]any {
	out := make(map[string]any, len(snap.values))
	for k, v := range snap.values {
		out[k] = v
	}
	return out
}

// Snapshot captures all current field values. Field values are scalars
// (string/float64/bool), so a shallow copy of the map is a deep copy.
func (s *Session) Snapshot() Snapshot {
	values := make(map[string]any, len(s.fieldByID))
	for id, f := range s.fieldByID {
		values[id] = f.value
	}
	return Snapshot{sessionID: s.id, takenAt: time.Now(), values: values}
}

// Close discards the session. Results of actions still outstanding when a
// session closes must be dropped rather than applied; ActionGate consults
// Closed for that.
func (s *Session) Close() {
	s.closed.Store(true)
}

// Closed reports whether the session has been discarded.
func (s *Session) Closed() bool { return s.closed.Load() }

// Reset restores every field to its declared default and clears navigation
// state, as if the session had just been opened.
func (s *Session) Reset() {
	for _, f := range s.fieldByID {
		f.Reset()
	}
	for _, sec := range s.sections {
		sec.visit = Unvisited
	}
	s.current = ""
}

// String implements fmt.Stringer for log lines.
func (s *Session) String() string {
	return fmt.Sprintf("session %s (current=%q, sections=%d)", s.id, s.current, len(s.sections))
}
