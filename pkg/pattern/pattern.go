package pattern

import (
	"fmt"

	"github.com/dd0wney/cluso-sif/pkg/model"
)

// step is a constraint applied to pattern slots.
type step struct {
	c         Constraint
	slots     []int
	generates bool // last slot is introduced by this step
}

// Pattern is an ordered list of constraints over labelled variables. Slot 0 is
// the anchor; every other slot is introduced by exactly one generating step,
// and no step refers to a slot introduced later. Patterns are immutable once
// built and safe for concurrent searches.
type Pattern struct {
	labels []string
	kinds  []model.Kind
	index  map[string]int
	steps  []step
}

// Anchor returns the anchor label.
func (p *Pattern) Anchor() string { return p.labels[0] }

// AnchorKind returns the kind of the anchor variable.
func (p *Pattern) AnchorKind() model.Kind { return p.kinds[0] }

// Labels returns the variable labels in introduction order.
func (p *Pattern) Labels() []string { return append([]string(nil), p.labels...) }

// Size returns the number of variables.
func (p *Pattern) Size() int { return len(p.labels) }

// Len returns the number of constraint steps.
func (p *Pattern) Len() int { return len(p.steps) }

// IndexOf returns the slot of label.
func (p *Pattern) IndexOf(label string) (int, bool) {
	i, ok := p.index[label]
	return i, ok
}

// KindOf returns the kind a label is restricted to.
func (p *Pattern) KindOf(label string) model.Kind {
	if i, ok := p.index[label]; ok {
		return p.kinds[i]
	}
	return model.KindAny
}

// Builder assembles a Pattern. The first failing Add is kept and returned by Build;
// later calls are ignored.
type Builder struct {
	p   *Pattern
	err error
}

// New starts a pattern anchored on a variable of the given kind.
func New(anchorKind model.Kind, anchor string) *Builder {
	return &Builder{
		p: &Pattern{
			labels: []string{anchor},
			kinds:  []model.Kind{anchorKind},
			index:  map[string]int{anchor: 0},
		},
	}
}

// Add appends a constraint on the given labels. If the last label is new, the
// constraint must generate it; all other labels must already be bound.
func (b *Builder) Add(c Constraint, labels ...string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.add(c, labels); err != nil {
		b.err = &PatternDefinitionError{
			Pattern:    b.p.labels[0],
			Constraint: constraintName(c),
			Labels:     labels,
			Cause:      err,
		}
	}
	return b
}

func constraintName(c Constraint) string {
	if c == nil {
		return "<nil>"
	}
	return c.Name()
}

func (b *Builder) add(c Constraint, labels []string) error {
	if c == nil {
		return fmt.Errorf("%w: nil constraint", ErrInvalidConstraint)
	}
	if v, ok := c.(interface{ validate() error }); ok {
		if err := v.validate(); err != nil {
			return err
		}
	}
	if len(labels) == 0 || len(labels) != c.VarCount() {
		return fmt.Errorf("%w: %d labels for %d variables", ErrArity, len(labels), c.VarCount())
	}

	var kinds []model.Kind
	if t, ok := c.(Typed); ok {
		kinds = t.Kinds()
	}
	kindAt := func(i int) model.Kind {
		if i < len(kinds) {
			return kinds[i]
		}
		return model.KindAny
	}

	slots := make([]int, len(labels))
	last := len(labels) - 1
	generates := false
	for i, label := range labels {
		idx, bound := b.p.index[label]
		if !bound {
			if i != last {
				return fmt.Errorf("%w: %q", ErrUnboundVariable, label)
			}
			if !c.CanGenerate() {
				return fmt.Errorf("%w: %q is unbound", ErrNotGenerative, label)
			}
			generates = true
			continue
		}
		for j := 0; j < i; j++ {
			if slots[j] == idx {
				return fmt.Errorf("%w: %q used twice", ErrRebound, label)
			}
		}
		slots[i] = idx
		want := kindAt(i)
		have := b.p.kinds[idx]
		if !have.IsA(want) && !want.IsA(have) {
			return fmt.Errorf("%w: %q is %s, constraint wants %s", ErrKindMismatch, label, kindName(have), kindName(want))
		}
	}

	// A guard narrows the kind of the variables it restricts.
	if !generates {
		for i, idx := range slots {
			if want := kindAt(i); want.IsA(b.p.kinds[idx]) {
				b.p.kinds[idx] = want
			}
		}
	}

	if generates {
		idx := len(b.p.labels)
		b.p.labels = append(b.p.labels, labels[last])
		b.p.kinds = append(b.p.kinds, kindAt(last))
		b.p.index[labels[last]] = idx
		slots[last] = idx
	}

	b.p.steps = append(b.p.steps, step{c: c, slots: slots, generates: generates})
	return nil
}

func kindName(k model.Kind) string {
	if k == model.KindAny {
		return "any"
	}
	return string(k)
}

// Build returns the pattern or the first definition error.
func (b *Builder) Build() (*Pattern, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.p, nil
}

// MustBuild is like Build but panics on error. Intended for static pattern tables.
func (b *Builder) MustBuild() *Pattern {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
