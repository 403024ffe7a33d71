package session

import (
	"fmt"

	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

// InvalidTypeError reports a value whose Go type does not match the field's
// declared type. The field keeps its previous value when this is returned.
type InvalidTypeError struct {
	FieldID string
	Want    schema.FieldType
	Got     any
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("session: field %q expects %s, got %T", e.FieldID, e.Want, e.Got)
}

// UnknownFieldError reports a field id that is not part of the session.
type UnknownFieldError struct {
	FieldID string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("session: unknown field %q", e.FieldID)
}

// NavigationDeniedError reports a navigation intent the graph policy rejects.
type NavigationDeniedError struct {
	From   string
	To     string
	Reason string
}

func (e *NavigationDeniedError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("session: cannot navigate to %q: %s", e.To, e.Reason)
	}
	return fmt.Sprintf("session: cannot navigate from %q to %q: %s", e.From, e.To, e.Reason)
}
