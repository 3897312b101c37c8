package pattern

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-sif/pkg/model"
)

// Constraint is one step of a pattern. A constraint works on VarCount
// variables. Guards only test bound variables. Generators produce the
// candidates of their last variable from the preceding ones; they also
// act as guards when every variable is already bound.
type Constraint interface {
	// Name returns a human-readable name for the constraint
	Name() string
	// VarCount is the number of variables the constraint works on
	VarCount() int
	// CanGenerate reports whether the last variable can be produced
	CanGenerate() bool
	// Satisfies tests VarCount bound nodes
	Satisfies(g *model.Graph, nodes ...*model.Node) (bool, error)
	// Generate returns the distinct candidates for the last variable given
	// the first VarCount-1 nodes
	Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error)
}

// Typed is implemented by constraints that restrict the kinds of their
// variables. KindAny leaves a slot unrestricted.
type Typed interface {
	Kinds() []model.Kind
}

// generatorSatisfies is the guard form of a generator: the last node must be
// one of the generated candidates.
func generatorSatisfies(c Constraint, g *model.Graph, nodes []*model.Node) (bool, error) {
	last := nodes[len(nodes)-1]
	cands, err := c.Generate(g, nodes[:len(nodes)-1]...)
	if err != nil {
		return false, err
	}
	for _, n := range cands {
		if n == last {
			return true, nil
		}
	}
	return false, nil
}

// distinct drops repeated nodes, keeping first occurrences.
func distinct(nodes []*model.Node) []*model.Node {
	if len(nodes) < 2 {
		return nodes
	}
	seen := make(map[*model.Node]bool, len(nodes))
	out := nodes[:0:0]
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// typeConstraint restricts a bound variable to a kind.
type typeConstraint struct {
	kind model.Kind
}

// Type returns a guard requiring the variable to be of kind (or a sub kind).
func Type(kind model.Kind) Constraint { return typeConstraint{kind: kind} }

func (c typeConstraint) Name() string        { return "Type(" + string(c.kind) + ")" }
func (c typeConstraint) VarCount() int       { return 1 }
func (c typeConstraint) CanGenerate() bool   { return false }
func (c typeConstraint) Kinds() []model.Kind { return []model.Kind{c.kind} }

func (c typeConstraint) Satisfies(_ *model.Graph, nodes ...*model.Node) (bool, error) {
	return nodes[0].Kind.IsA(c.kind), nil
}

func (c typeConstraint) Generate(*model.Graph, ...*model.Node) ([]*model.Node, error) {
	return nil, ErrNotGenerative
}

// equality compares two bound variables by node identity.
type equality struct {
	equal bool
}

// Equal requires both variables to be bound to the same node.
func Equal() Constraint { return equality{equal: true} }

// NotEqual requires the variables to be bound to different nodes.
func NotEqual() Constraint { return equality{equal: false} }

func (c equality) Name() string {
	if c.equal {
		return "Equal"
	}
	return "NotEqual"
}
func (c equality) VarCount() int     { return 2 }
func (c equality) CanGenerate() bool { return false }

func (c equality) Satisfies(_ *model.Graph, nodes ...*model.Node) (bool, error) {
	return (nodes[0] == nodes[1]) == c.equal, nil
}

func (c equality) Generate(*model.Graph, ...*model.Node) ([]*model.Node, error) {
	return nil, ErrNotGenerative
}

// not negates a constraint. It is always a guard.
type not struct {
	inner Constraint
}

// Not returns a guard that holds when inner does not.
func Not(inner Constraint) Constraint { return not{inner: inner} }

func (c not) Name() string      { return "Not(" + c.inner.Name() + ")" }
func (c not) VarCount() int     { return c.inner.VarCount() }
func (c not) CanGenerate() bool { return false }

func (c not) Satisfies(g *model.Graph, nodes ...*model.Node) (bool, error) {
	ok, err := c.inner.Satisfies(g, nodes...)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (c not) Generate(*model.Graph, ...*model.Node) ([]*model.Node, error) {
	return nil, ErrNotGenerative
}

// or holds when any of its members holds. It generates the union of its
// members' candidates when all of them can generate.
type or struct {
	members []Constraint
}

// Or combines constraints of the same VarCount.
func Or(members ...Constraint) Constraint { return or{members: members} }

func (c or) Name() string {
	names := make([]string, len(c.members))
	for i, m := range c.members {
		names[i] = m.Name()
	}
	return "Or(" + strings.Join(names, ",") + ")"
}

func (c or) VarCount() int {
	if len(c.members) == 0 {
		return 0
	}
	return c.members[0].VarCount()
}

func (c or) CanGenerate() bool {
	if len(c.members) == 0 {
		return false
	}
	for _, m := range c.members {
		if !m.CanGenerate() {
			return false
		}
	}
	return true
}

// validate reports members with mismatching arity.
func (c or) validate() error {
	if len(c.members) == 0 {
		return fmt.Errorf("%w: Or without members", ErrInvalidConstraint)
	}
	for _, m := range c.members[1:] {
		if m.VarCount() != c.members[0].VarCount() {
			return fmt.Errorf("%w: Or members %s and %s differ in arity", ErrInvalidConstraint, c.members[0].Name(), m.Name())
		}
	}
	return nil
}

func (c or) Satisfies(g *model.Graph, nodes ...*model.Node) (bool, error) {
	for _, m := range c.members {
		ok, err := m.Satisfies(g, nodes...)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (c or) Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error) {
	var out []*model.Node
	for _, m := range c.members {
		cands, err := m.Generate(g, nodes...)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}
	return distinct(out), nil
}
