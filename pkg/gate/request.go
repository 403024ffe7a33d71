package gate

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VoBaNguyen/qaconf/pkg/session"
)

// Request is the immutable, point-in-time copy of all field values handed to
// a collaborator. Once produced it is never mutated by later session changes;
// accessors return copies so a collaborator cannot alias the dispatched data
// either.
type Request struct {
	id        string
	sessionID string
	action    Action
	createdAt time.Time
	values    map[string]any
}

func newRequest(action Action, snap session.Snapshot) Request {
	return Request{
		id:        uuid.NewString(),
		sessionID: snap.SessionID(),
		action:    action,
		createdAt: snap.TakenAt(),
		values:    snap.Values(),
	}
}

func (r Request) ID() string           { return r.id }
func (r Request) SessionID() string    { return r.sessionID }
func (r Request) Action() Action       { return r.action }
func (r Request) CreatedAt() time.Time { return r.createdAt }

// Value returns a single captured field value.
func (r Request) Value(fieldID string) (any, bool) {
	v, ok := r.values[fieldID]
	return v, ok
}

// Values returns a fresh copy of all captured values.
func (r Request) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Invocation is the handle for one dispatched action. The collaborator runs
// on its own goroutine; Wait blocks until its result is observed or the
// context is cancelled.
type Invocation struct {
	req  Request
	done chan struct{}

	outcome Outcome
	err     error
}

func newInvocation(action Action, snap session.Snapshot) *Invocation {
	return &Invocation{
		req:  newRequest(action, snap),
		done: make(chan struct{}),
	}
}

// Request returns the immutable request this invocation dispatched.
func (inv *Invocation) Request() Request { return inv.req }

// Action returns which operation was dispatched.
func (inv *Invocation) Action() Action { return inv.req.action }

// Done is closed once the result has been observed.
func (inv *Invocation) Done() <-chan struct{} { return inv.done }

// Wait blocks until the collaborator result arrives (or ctx is cancelled) and
// returns it. A session discarded mid-flight yields ErrResultDiscarded.
func (inv *Invocation) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-inv.done:
		return inv.outcome, inv.err
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (inv *Invocation) settle(outcome Outcome, err error) {
	inv.outcome = outcome
	inv.err = err
	close(inv.done)
}
