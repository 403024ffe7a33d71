package render

import (
	"context"
	"fmt"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
	"github.com/VoBaNguyen/qaconf/pkg/session"
)

// Intent is a user action a renderer emits towards the core. Rejected intents
// surface as errors; they are never silently swallowed.
type Intent interface {
	isIntent()
}

// Navigate moves the focus to a section, subject to the graph policy.
type Navigate struct {
	SectionID string
}

// Edit sets a field value.
type Edit struct {
	FieldID string
	Value   any
}

// Toggle flips a section's expanded flag.
type Toggle struct {
	SectionID string
}

// Invoke dispatches a gated downstream action.
type Invoke struct {
	Action gate.Action
}

func (Navigate) isIntent() {}
func (Edit) isIntent()     {}
func (Toggle) isIntent()   {}
func (Invoke) isIntent()   {}

// Controller is the only write path renderers get: it applies intents to the
// session and gate, and rebuilds the view they repaint from. Renderers never
// touch the session directly and never see a snapshot they could mutate.
type Controller struct {
	sess *session.Session
	gate *gate.Gate
}

// NewController wires a controller to a session and its gate. The gate may be
// nil for pure preview flows; Invoke intents then fail.
func NewController(sess *session.Session, g *gate.Gate) (*Controller, error) {
	if sess == nil {
		return nil, fmt.Errorf("render: session is required")
	}
	return &Controller{sess: sess, gate: g}, nil
}

// View rebuilds the read-only projection from the live session.
func (c *Controller) View(ctx context.Context) View {
	return BuildView(ctx, c.sess, c.gate)
}

// Entry returns the graph's designated entry section for renderers that walk
// the flow from the start.
func (c *Controller) Entry() string {
	return c.sess.Graph().Entry()
}

// Dispatch applies one intent. For Invoke intents the returned Invocation is
// non-nil and carries the collaborator result; for all other intents it is
// nil.
func (c *Controller) Dispatch(ctx context.Context, intent Intent) (*gate.Invocation, error) {
	switch in := intent.(type) {
	case Navigate:
		return nil, c.sess.NavigateTo(in.SectionID)

	case Edit:
		return nil, c.sess.SetFieldValue(in.FieldID, in.Value)

	case Toggle:
		sec, ok := c.sess.Section(in.SectionID)
		if !ok {
			return nil, &session.NavigationDeniedError{To: in.SectionID, Reason: "section does not exist"}
		}
		sec.ToggleExpanded()
		return nil, nil

	case Invoke:
		if c.gate == nil {
			return nil, &gate.ActionNotReadyError{Action: in.Action, Reason: "no gate configured"}
		}
		switch in.Action {
		case gate.ActionCreate:
			return c.gate.InvokeCreate(ctx)
		case gate.ActionCompare:
			return c.gate.InvokeCompare(ctx)
		default:
			return nil, fmt.Errorf("render: unknown action %q", in.Action)
		}

	default:
		return nil, fmt.Errorf("render: unknown intent %T", intent)
	}
}
