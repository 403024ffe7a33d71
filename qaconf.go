package qaconf

import (
	"context"

	"github.com/VoBaNguyen/qaconf/pkg/orchestrator"
	"github.com/VoBaNguyen/qaconf/pkg/render"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

// Request aliases the orchestrator request so callers of the root package do
// not need to import pkg/orchestrator for the common paths.
type Request = orchestrator.Request

// Options aliases the renderer options passed through a Request.
type Options = render.Options

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers composing their own pipeline.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Run loads the schema source, opens a session and drives the named
// interactive renderer until it finishes. It is the simplest entry point for
// callers that just want a terminal session.
func Run(ctx context.Context, source schema.Source, rendererName string, options ...orchestrator.Option) error {
	o := orchestrator.New(options...)
	return o.Run(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// RenderSnapshot loads the schema source and renders a one-shot snapshot of
// the session's initial state using the named snapshot renderer.
func RenderSnapshot(ctx context.Context, source schema.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	o := orchestrator.New(options...)
	return o.RenderSnapshot(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// RunFromDocument drives a renderer from a pre-parsed document, bypassing the
// loader stage while still delegating to the orchestrator.
func RunFromDocument(ctx context.Context, doc schema.SessionSchema, rendererName string, options ...orchestrator.Option) error {
	o := orchestrator.New(options...)
	return o.Run(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}
