package model

import (
	"errors"
	"fmt"
)

// Graph is an arena of model nodes addressed by stable id.
//
// A graph is built with Add during a sequential setup phase and then sealed.
// Sealing builds the reverse relationship indices and freezes the topology;
// a sealed graph may be read by any number of goroutines. The only mutation
// allowed after sealing is the display name of a node (see package naming),
// which must not run concurrently with readers.
type Graph struct {
	nodes map[string]*Node
	order []*Node

	sealed bool

	participantOf map[string][]string // entity -> interactions it participates in
	controllerOf  map[string][]string // entity -> controls it is controller of
	controlledBy  map[string][]string // interaction -> controls controlling it
	componentOf   map[string][]string // entity -> complexes it is a member of
	referenceOf   map[string][]string // entity reference -> entities referencing it
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// Add inserts a node. Ids must be unique and the graph must not be sealed.
func (g *Graph) Add(n *Node) error {
	if g.sealed {
		return ErrSealed
	}
	if n == nil || n.ID == "" {
		return fmt.Errorf("add node: empty id")
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("add node %s: %w", n.ID, ErrDuplicateNode)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n)
	return nil
}

// MustAdd inserts nodes and panics on error. Intended for fixtures.
func (g *Graph) MustAdd(nodes ...*Node) *Graph {
	for _, n := range nodes {
		if err := g.Add(n); err != nil {
			panic(err)
		}
	}
	return g
}

// Seal builds the reverse indices and freezes the topology. Sealing twice is a no-op.
func (g *Graph) Seal() {
	if g.sealed {
		return
	}
	g.participantOf = make(map[string][]string)
	g.controllerOf = make(map[string][]string)
	g.controlledBy = make(map[string][]string)
	g.componentOf = make(map[string][]string)
	g.referenceOf = make(map[string][]string)

	for _, n := range g.order {
		for _, p := range n.ParticipantIDs() {
			g.participantOf[p] = append(g.participantOf[p], n.ID)
		}
		for _, c := range n.Controllers {
			g.controllerOf[c] = append(g.controllerOf[c], n.ID)
		}
		if n.Controlled != "" {
			g.controlledBy[n.Controlled] = append(g.controlledBy[n.Controlled], n.ID)
		}
		for _, c := range n.Components {
			g.componentOf[c] = append(g.componentOf[c], n.ID)
		}
		if n.EntityReference != "" {
			g.referenceOf[n.EntityReference] = append(g.referenceOf[n.EntityReference], n.ID)
		}
	}
	g.sealed = true
}

// Sealed reports whether Seal has been called.
func (g *Graph) Sealed() bool {
	return g.sealed
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The slice must not be modified.
func (g *Graph) Nodes() []*Node {
	return g.order
}

// NodesOfKind returns the nodes whose kind is kind or one of its sub kinds, in insertion order.
func (g *Graph) NodesOfKind(kind Kind) []*Node {
	out := make([]*Node, 0)
	for _, n := range g.order {
		if n.Kind.IsA(kind) {
			out = append(out, n)
		}
	}
	return out
}

// Resolve maps ids referenced from holder's field to nodes.
func (g *Graph) Resolve(holder, field string, ids []string) ([]*Node, error) {
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		n, ok := g.nodes[id]
		if !ok {
			return nil, &GraphIntegrityError{NodeID: holder, Field: field, Ref: id}
		}
		out = append(out, n)
	}
	return out, nil
}

// ParticipantOf returns the interactions the entity participates in.
func (g *Graph) ParticipantOf(id string) []string { return g.index(g.participantOf, id) }

// ControllerOf returns the controls the entity is a controller of.
func (g *Graph) ControllerOf(id string) []string { return g.index(g.controllerOf, id) }

// ControlledBy returns the controls whose controlled interaction is id.
func (g *Graph) ControlledBy(id string) []string { return g.index(g.controlledBy, id) }

// ComponentOf returns the complexes having the entity as a direct member.
func (g *Graph) ComponentOf(id string) []string { return g.index(g.componentOf, id) }

// ReferenceOf returns the physical entities referencing the entity reference id.
func (g *Graph) ReferenceOf(id string) []string { return g.index(g.referenceOf, id) }

func (g *Graph) index(m map[string][]string, id string) []string {
	if !g.sealed {
		panic("model: relationship lookup on unsealed graph")
	}
	return m[id]
}

// Validate checks that every reference resolves to a node of this graph.
// All violations are reported, joined.
func (g *Graph) Validate() error {
	var errs []error
	check := func(n *Node, field string, ids ...string) {
		for _, id := range ids {
			if id == "" {
				continue
			}
			if _, ok := g.nodes[id]; !ok {
				errs = append(errs, &GraphIntegrityError{NodeID: n.ID, Field: field, Ref: id})
			}
		}
	}
	for _, n := range g.order {
		check(n, "entityReference", n.EntityReference)
		check(n, "components", n.Components...)
		check(n, "left", n.Left...)
		check(n, "right", n.Right...)
		check(n, "participants", n.Participants...)
		check(n, "template", n.Template)
		check(n, "products", n.Products...)
		check(n, "controllers", n.Controllers...)
		check(n, "controlled", n.Controlled)
	}
	return errors.Join(errs...)
}

// Subgraph returns a new sealed graph holding the nodes with the given ids,
// in the order of this graph. Node references are shared, not copied.
func (g *Graph) Subgraph(ids map[string]bool) *Graph {
	sub := NewGraph()
	for _, n := range g.order {
		if ids[n.ID] {
			sub.nodes[n.ID] = n
			sub.order = append(sub.order, n)
		}
	}
	sub.Seal()
	return sub
}
