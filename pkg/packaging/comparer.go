package packaging

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
)

// ManifestComparer implements gate.PackageComparer by diffing the request's
// values against the most recently created package manifest.
type ManifestComparer struct {
	history *History
}

var _ gate.PackageComparer = (*ManifestComparer)(nil)

// NewManifestComparer builds a comparer reading prior manifests through the
// history store.
func NewManifestComparer(h *History) *ManifestComparer {
	return &ManifestComparer{history: h}
}

// ComparePackages diffs the request field-by-field against the latest prior
// manifest. The outcome ref names the manifest compared against.
func (c *ManifestComparer) ComparePackages(ctx context.Context, req gate.Request, priorCount int) (gate.Outcome, error) {
	if c.history == nil {
		return gate.Outcome{}, fmt.Errorf("packaging: comparer has no history store")
	}

	path, err := c.history.LatestPath(ctx)
	if err != nil {
		return gate.Outcome{}, err
	}
	prior, err := ReadManifest(path)
	if err != nil {
		return gate.Outcome{}, err
	}

	diffs := diffValues(prior.Values, req.Values())
	detail := fmt.Sprintf("no differences against %s (%d prior packages)", prior.ID, priorCount)
	if len(diffs) > 0 {
		detail = fmt.Sprintf("%d differing fields: %s", len(diffs), strings.Join(diffs, "; "))
	}
	return gate.Outcome{Ref: prior.ID, Detail: detail}, nil
}

// diffValues reports per-field differences in sorted field order.
func diffValues(prior, current map[string]any) []string {
	keys := make(map[string]struct{}, len(prior)+len(current))
	for k := range prior {
		keys[k] = struct{}{}
	}
	for k := range current {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var diffs []string
	for _, k := range sorted {
		before, inPrior := prior[k]
		after, inCurrent := current[k]
		switch {
		case !inPrior:
			diffs = append(diffs, fmt.Sprintf("%s added (%v)", k, after))
		case !inCurrent:
			diffs = append(diffs, fmt.Sprintf("%s removed (was %v)", k, before))
		case fmt.Sprintf("%v", before) != fmt.Sprintf("%v", after):
			diffs = append(diffs, fmt.Sprintf("%s changed from %v to %v", k, before, after))
		}
	}
	return diffs
}
