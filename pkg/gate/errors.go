package gate

import (
	"errors"
	"fmt"
)

// ErrResultDiscarded is delivered instead of the collaborator result when the
// session was closed while the action was outstanding.
var ErrResultDiscarded = errors.New("gate: result discarded, session closed")

// ActionNotReadyError reports an invocation attempted while the corresponding
// enabled flag was false.
type ActionNotReadyError struct {
	Action Action
	Reason string
}

func (e *ActionNotReadyError) Error() string {
	return fmt.Sprintf("gate: %s not ready: %s", e.Action, e.Reason)
}
