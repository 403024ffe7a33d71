package packaging

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/VoBaNguyen/qaconf/internal/ctxlog"
	"github.com/VoBaNguyen/qaconf/pkg/gate"
)

// DirCreator implements gate.PackageCreator by writing one JSON manifest per
// request under an output directory. When a History is attached, every
// written manifest is recorded in it.
type DirCreator struct {
	dir     string
	history *History
}

var _ gate.PackageCreator = (*DirCreator)(nil)

// CreatorOption configures a DirCreator.
type CreatorOption func(*DirCreator)

// WithHistory records every created package in the given history store.
func WithHistory(h *History) CreatorOption {
	return func(c *DirCreator) { c.history = h }
}

// NewDirCreator builds a creator writing manifests under dir. The directory
// is created on first use.
func NewDirCreator(dir string, options ...CreatorOption) *DirCreator {
	c := &DirCreator{dir: dir}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// CreatePackage writes the manifest and returns its path as the outcome ref.
// Failures are returned to the gate untouched; the caller may fix the cause
// and invoke again.
func (c *DirCreator) CreatePackage(ctx context.Context, req gate.Request) (gate.Outcome, error) {
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return gate.Outcome{}, fmt.Errorf("packaging: create output dir: %w", err)
	}

	m := manifestFromRequest(req)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return gate.Outcome{}, fmt.Errorf("packaging: encode manifest: %w", err)
	}

	path := filepath.Join(c.dir, m.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return gate.Outcome{}, fmt.Errorf("packaging: write manifest: %w", err)
	}

	if c.history != nil {
		if err := c.history.Record(ctx, m, path); err != nil {
			return gate.Outcome{}, err
		}
	}

	logger.Debug("package manifest written", "path", path, "values", len(m.Values))
	return gate.Outcome{
		Ref:    path,
		Detail: fmt.Sprintf("%d values captured", len(m.Values)),
	}, nil
}
