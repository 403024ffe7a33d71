// Package render defines the surface between the session core and the layout
// strategies that paint it. Renderers are capability-polymorphic: every
// renderer has a name, snapshot renderers turn a View into bytes, and
// interactive renderers drive a session through a Controller. The four layout
// styles (accordion, wizard, sidebar, dashboard) are different renderers over
// the same model, not different models.
package render

import (
	"context"
	"io"
)

// Options carries presentation hints renderers may honour or ignore.
type Options struct {
	// Width is the target character width for text output; zero means the
	// renderer's default.
	Width int
	// Out receives interactive renderer output when it is not a terminal
	// owned by the renderer itself. Nil means stdout.
	Out io.Writer
}

// Renderer is the minimal capability: a named layout strategy.
type Renderer interface {
	Name() string
}

// SnapshotRenderer turns a read-only view of the session into bytes.
type SnapshotRenderer interface {
	Renderer
	ContentType() string
	Render(ctx context.Context, view View, opts Options) ([]byte, error)
}

// InteractiveRenderer runs a full user-driven pass over the session, emitting
// intents through the controller until the user finishes or cancels.
type InteractiveRenderer interface {
	Renderer
	Drive(ctx context.Context, ctrl *Controller, opts Options) error
}
