// Package gate decides when the downstream package actions are invocable and
// dispatches immutable requests to their collaborators.
package gate

import (
	"context"
	"fmt"
	"sync"

	"github.com/VoBaNguyen/qaconf/internal/ctxlog"
	"github.com/VoBaNguyen/qaconf/pkg/session"
)

// MinComparePrior is how many previously created package configurations must
// exist before a comparison can run.
const MinComparePrior = 2

// Action names a downstream operation the gate guards.
type Action string

const (
	ActionCreate  Action = "create"
	ActionCompare Action = "compare"
)

// Outcome is the collaborator's result, opaque to the gate.
type Outcome struct {
	// Ref identifies what the collaborator produced, e.g. a manifest path.
	Ref string
	// Detail is a human-readable result for the renderer to display.
	Detail string
}

// PackageCreator is the external package-creation collaborator.
type PackageCreator interface {
	CreatePackage(ctx context.Context, req Request) (Outcome, error)
}

// PackageComparer is the external package-comparison collaborator.
type PackageComparer interface {
	ComparePackages(ctx context.Context, req Request, priorCount int) (Outcome, error)
}

// PriorPackages supplies the number of previously created package
// configurations. It is an injected dependency; the gate never assumes where
// the count comes from.
type PriorPackages interface {
	PriorCount(ctx context.Context) (int, error)
}

// PriorCountFunc adapts a function into a PriorPackages provider.
type PriorCountFunc func(ctx context.Context) (int, error)

// PriorCount delegates to the underlying function.
func (fn PriorCountFunc) PriorCount(ctx context.Context) (int, error) {
	return fn(ctx)
}

// Readiness reports which actions are currently invocable, with the blocking
// reason when one is not.
type Readiness struct {
	CreateEnabled  bool
	CompareEnabled bool
	CreateReason   string
	CompareReason  string
	PriorCount     int
}

// Config wires a gate to its session and collaborators. CreateRequires and
// CompareRequires list the section ids each action depends on; an empty list
// means every section.
type Config struct {
	Session         *session.Session
	Creator         PackageCreator
	Comparer        PackageComparer
	Prior           PriorPackages
	CreateRequires  []string
	CompareRequires []string
}

// Gate recomputes action readiness on every call and guards against
// concurrent duplicate invocations: while a dispatched action is outstanding
// both enabled flags are forced false, and they recover only once the result
// (success or failure) has been observed.
type Gate struct {
	mu      sync.Mutex
	sess    *session.Session
	creator PackageCreator
	compare PackageComparer
	prior   PriorPackages

	createRequires  []string
	compareRequires []string

	outstanding bool
}

// New builds a gate. Session is mandatory; a nil creator or comparer leaves
// the respective action permanently disabled.
func New(cfg Config) (*Gate, error) {
	if cfg.Session == nil {
		return nil, fmt.Errorf("gate: session is required")
	}
	return &Gate{
		sess:            cfg.Session,
		creator:         cfg.Creator,
		compare:         cfg.Comparer,
		prior:           cfg.Prior,
		createRequires:  append([]string(nil), cfg.CreateRequires...),
		compareRequires: append([]string(nil), cfg.CompareRequires...),
	}, nil
}

// Evaluate recomputes both enabled flags from the live session and the
// injected prior-package count. Nothing is cached between calls.
func (g *Gate) Evaluate(ctx context.Context) Readiness {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.evaluateLocked(ctx)
}

func (g *Gate) evaluateLocked(ctx context.Context) Readiness {
	var r Readiness

	if g.outstanding {
		r.CreateReason = "an action is already running"
		r.CompareReason = r.CreateReason
		return r
	}
	if g.sess.Closed() {
		r.CreateReason = "session is closed"
		r.CompareReason = r.CreateReason
		return r
	}

	switch {
	case g.creator == nil:
		r.CreateReason = "no package creator configured"
	case !g.sess.Complete(g.createRequires...):
		r.CreateReason = "required sections are incomplete"
	default:
		r.CreateEnabled = true
	}

	switch {
	case g.compare == nil:
		r.CompareReason = "no package comparer configured"
	case g.prior == nil:
		r.CompareReason = "no prior package source configured"
	case !g.sess.Complete(g.compareRequires...):
		r.CompareReason = "required sections are incomplete"
	default:
		count, err := g.prior.PriorCount(ctx)
		if err != nil {
			r.CompareReason = fmt.Sprintf("prior package count unavailable: %v", err)
			break
		}
		r.PriorCount = count
		if count < MinComparePrior {
			r.CompareReason = fmt.Sprintf("need at least %d prior packages, have %d", MinComparePrior, count)
			break
		}
		r.CompareEnabled = true
	}

	return r
}

// InvokeCreate snapshots the session and dispatches the create collaborator.
// It fails with *ActionNotReadyError if CreateEnabled is false at call time,
// including while any invocation is still outstanding.
func (g *Gate) InvokeCreate(ctx context.Context) (*Invocation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r := g.evaluateLocked(ctx)
	if !r.CreateEnabled {
		return nil, &ActionNotReadyError{Action: ActionCreate, Reason: r.CreateReason}
	}

	inv := newInvocation(ActionCreate, g.sess.Snapshot())
	g.outstanding = true
	go g.dispatch(ctx, inv, func(ctx context.Context) (Outcome, error) {
		return g.creator.CreatePackage(ctx, inv.Request())
	})
	return inv, nil
}

// InvokeCompare mirrors InvokeCreate for the comparison collaborator. The
// prior-package count is resolved at dispatch time and handed through
// unchanged.
func (g *Gate) InvokeCompare(ctx context.Context) (*Invocation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r := g.evaluateLocked(ctx)
	if !r.CompareEnabled {
		return nil, &ActionNotReadyError{Action: ActionCompare, Reason: r.CompareReason}
	}

	priorCount := r.PriorCount
	inv := newInvocation(ActionCompare, g.sess.Snapshot())
	g.outstanding = true
	go g.dispatch(ctx, inv, func(ctx context.Context) (Outcome, error) {
		return g.compare.ComparePackages(ctx, inv.Request(), priorCount)
	})
	return inv, nil
}

// dispatch runs the collaborator and settles the invocation. Collaborator
// failures are handed through unchanged; the session stays valid and editable
// afterwards. If the session was closed while the call was in flight the
// result is discarded instead of delivered.
func (g *Gate) dispatch(ctx context.Context, inv *Invocation, call func(context.Context) (Outcome, error)) {
	outcome, err := call(ctx)

	g.mu.Lock()
	closed := g.sess.Closed()
	g.outstanding = false
	g.mu.Unlock()

	if closed {
		ctxlog.FromContext(ctx).Debug("discarding action result for closed session",
			"action", string(inv.Action()), "request", inv.Request().ID())
		inv.settle(Outcome{}, ErrResultDiscarded)
		return
	}
	inv.settle(outcome, err)
}
