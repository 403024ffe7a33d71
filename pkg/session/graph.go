package session

import (
	"fmt"

	"github.com/VoBaNguyen/qaconf/pkg/schema"
)

// Graph is the navigation relation between sections. It is fixed at
// construction: sections are never added or removed mid-session.
type Graph struct {
	shape schema.Shape
	order []string
	pos   map[string]int
}

func newGraph(shape schema.Shape, order []string) (*Graph, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("session: graph needs at least one section")
	}
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	return &Graph{shape: shape, order: append([]string(nil), order...), pos: pos}, nil
}

func (g *Graph) Shape() schema.Shape { return g.shape }

// Entry returns the designated first section: under the linear shape the
// first navigation must target it, under the free shape it is merely the
// suggested starting point.
func (g *Graph) Entry() string { return g.order[0] }

// Order returns the declared section order.
func (g *Graph) Order() []string {
	return append([]string(nil), g.order...)
}

// Contains reports whether the section id is part of the graph.
func (g *Graph) Contains(id string) bool {
	_, ok := g.pos[id]
	return ok
}

// canNavigate decides whether moving from `from` (empty before the first
// navigation) to `to` is legal. fromComplete is the completion of the section
// currently in focus; it only matters to forward movement under the linear
// shape, which is the wizard's progressive-disclosure guarantee.
func (g *Graph) canNavigate(from, to string, fromComplete bool) error {
	if !g.Contains(to) {
		return &NavigationDeniedError{From: from, To: to, Reason: "section does not exist"}
	}

	if g.shape == schema.ShapeFree {
		return nil
	}

	if from == "" {
		if to != g.Entry() {
			return &NavigationDeniedError{To: to, Reason: fmt.Sprintf("first navigation must target %q", g.Entry())}
		}
		return nil
	}

	switch g.pos[to] {
	case g.pos[from]:
		return nil // no-op navigation, always allowed
	case g.pos[from] - 1:
		return nil // back is unrestricted
	case g.pos[from] + 1:
		if fromComplete {
			return nil
		}
		return &NavigationDeniedError{From: from, To: to, Reason: "current section is incomplete"}
	default:
		return &NavigationDeniedError{From: from, To: to, Reason: "not adjacent in a linear flow"}
	}
}
