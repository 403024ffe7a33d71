// Package orchestrator coordinates the full pipeline from a schema document
// to a running session: load, validate, build the session, wire the action
// gate, and resolve the requested renderer. It applies sensible defaults (all
// built-in renderers registered, YAML/JSON/HCL loaders by extension) while
// remaining open to dependency injection.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/VoBaNguyen/qaconf/internal/ctxlog"
	"github.com/VoBaNguyen/qaconf/internal/schemaload/hclload"
	"github.com/VoBaNguyen/qaconf/internal/schemaload/yamlload"
	"github.com/VoBaNguyen/qaconf/pkg/gate"
	"github.com/VoBaNguyen/qaconf/pkg/render"
	"github.com/VoBaNguyen/qaconf/pkg/renderers/prompt"
	"github.com/VoBaNguyen/qaconf/pkg/renderers/text"
	"github.com/VoBaNguyen/qaconf/pkg/renderers/tui"
	"github.com/VoBaNguyen/qaconf/pkg/schema"
	"github.com/VoBaNguyen/qaconf/pkg/session"
)

const defaultRendererName = "text"

// Loader turns a raw source into a session document.
type Loader func(ctx context.Context, src schema.Source) (schema.SessionSchema, error)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader registers (or overrides) the loader for a file extension, e.g.
// ".yaml".
func WithLoader(ext string, loader Loader) Option {
	return func(o *Orchestrator) {
		if ext == "" || loader == nil {
			return
		}
		o.loaders[strings.ToLower(ext)] = loader
	}
}

// WithRegistry injects a renderer registry, replacing the built-in set.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithRules supplies named validators referenced by schema documents.
func WithRules(rules *session.RuleRegistry) Option {
	return func(o *Orchestrator) {
		o.rules = rules
	}
}

// WithCollaborators wires the downstream action collaborators. Any of the
// three may be nil; the corresponding action then stays disabled.
func WithCollaborators(creator gate.PackageCreator, comparer gate.PackageComparer, prior gate.PriorPackages) Option {
	return func(o *Orchestrator) {
		o.creator = creator
		o.comparer = comparer
		o.prior = prior
	}
}

// WithLogger attaches a logger that flows to every pipeline stage through the
// context.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator owns the configured pipeline. It is safe for reuse across
// requests; each Open builds a fresh session.
type Orchestrator struct {
	loaders         map[string]Loader
	registry        *render.Registry
	defaultRenderer string
	rules           *session.RuleRegistry
	creator         gate.PackageCreator
	comparer        gate.PackageComparer
	prior           gate.PriorPackages
	logger          *slog.Logger
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		loaders:         make(map[string]Loader),
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	for ext, loader := range map[string]Loader{
		".yaml": yamlload.Load,
		".yml":  yamlload.Load,
		".json": yamlload.Load,
		".hcl":  hclload.Load,
	} {
		if _, ok := o.loaders[ext]; !ok {
			o.loaders[ext] = loader
		}
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(text.New())
		o.registry.MustRegister(prompt.New())
		o.registry.MustRegister(tui.New(tui.LayoutAccordion))
		o.registry.MustRegister(tui.New(tui.LayoutSidebar))
		o.registry.MustRegister(tui.New(tui.LayoutDashboard))
	}
}

// Registry exposes the renderer registry so callers can add their own
// renderers next to the built-ins.
func (o *Orchestrator) Registry() *render.Registry { return o.registry }

// Request describes the inputs required to open a session.
type Request struct {
	// Source identifies where the schema document lives. Optional when
	// Document is supplied.
	Source schema.Source

	// Document bypasses the loader when the caller already has a parsed
	// document.
	Document *schema.SessionSchema

	// Renderer names the renderer to use. Empty falls back to the configured
	// default.
	Renderer string

	// Options are handed to the renderer untouched.
	Options render.Options
}

// Open runs load → validate → session → gate and returns the controller the
// renderers drive.
func (o *Orchestrator) Open(ctx context.Context, req Request) (*render.Controller, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	ctx = o.withLogger(ctx)

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("orchestrator: invalid document: %w", err)
	}

	var opts []session.Option
	if o.rules != nil {
		opts = append(opts, session.WithRules(o.rules))
	}
	sess, err := session.New(doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build session: %w", err)
	}

	g, err := gate.New(gate.Config{
		Session:         sess,
		Creator:         o.creator,
		Comparer:        o.comparer,
		Prior:           o.prior,
		CreateRequires:  doc.Create.Requires,
		CompareRequires: doc.Compare.Requires,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build gate: %w", err)
	}

	return render.NewController(sess, g)
}

// RenderSnapshot opens the session and renders it once through the named
// snapshot renderer.
func (o *Orchestrator) RenderSnapshot(ctx context.Context, req Request) ([]byte, error) {
	ctrl, err := o.Open(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.registry.Snapshot(o.rendererName(req))
	if err != nil {
		return nil, err
	}
	return renderer.Render(o.withLogger(ctx), ctrl.View(ctx), req.Options)
}

// Run opens the session and hands control to the named interactive renderer
// until the user finishes or the context is cancelled.
func (o *Orchestrator) Run(ctx context.Context, req Request) error {
	ctrl, err := o.Open(ctx, req)
	if err != nil {
		return err
	}

	renderer, err := o.registry.Interactive(o.rendererName(req))
	if err != nil {
		return err
	}
	return renderer.Drive(o.withLogger(ctx), ctrl, req.Options)
}

// Validate loads the document and reports schema problems without building a
// session.
func (o *Orchestrator) Validate(ctx context.Context, src schema.Source) error {
	ctx = o.withLogger(ctx)
	doc, err := o.resolveDocument(ctx, Request{Source: src})
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.SessionSchema, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.SessionSchema{}, errors.New("orchestrator: source or document is required")
	}

	ext := strings.ToLower(filepath.Ext(req.Source.Location()))
	loader, ok := o.loaders[ext]
	if !ok {
		return schema.SessionSchema{}, fmt.Errorf("orchestrator: no loader registered for %q documents", ext)
	}
	return loader(ctx, req.Source)
}

func (o *Orchestrator) rendererName(req Request) string {
	if req.Renderer != "" {
		return req.Renderer
	}
	return o.defaultRenderer
}

func (o *Orchestrator) withLogger(ctx context.Context) context.Context {
	if o.logger == nil {
		return ctx
	}
	return ctxlog.WithLogger(ctx, o.logger)
}
