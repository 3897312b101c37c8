// Package miner turns pattern matches into relation pairs.
//
// Each structural variant of a relation is a Variant: a pattern factory plus
// the labels naming the source, target and mediating nodes of a match. A
// built variant is a Miner.
package miner

import (
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-sif/pkg/pattern"
)

// Pair is one mined relation between two molecule identities (see
// model.Node.Identity).
type Pair struct {
	Source    string
	Target    string
	Mediators []string // ids of the interactions and entities linking them
}

// Miner converts matches of its own pattern into pairs.
type Miner interface {
	// Name returns the variant name
	Name() string
	// Pattern returns the pattern to search for
	Pattern() *pattern.Pattern
	// Mine returns the pairs found in one match
	Mine(m *pattern.Match) []Pair
}

// Variant describes one structural way a relation can be detected.
type Variant struct {
	Name      string
	Build     func() (*pattern.Pattern, error)
	Source    string   // label of the source entity
	Target    string   // label of the target entity
	Mediators []string // labels of the mediating nodes
}

// Miner builds the variant's pattern and checks that its labels exist.
func (v Variant) Miner() (Miner, error) {
	if v.Build == nil {
		return nil, fmt.Errorf("variant %s: no pattern factory", v.Name)
	}
	p, err := v.Build()
	if err != nil {
		return nil, fmt.Errorf("variant %s: %w", v.Name, err)
	}
	for _, label := range append([]string{v.Source, v.Target}, v.Mediators...) {
		if _, ok := p.IndexOf(label); !ok {
			return nil, fmt.Errorf("variant %s: %w", v.Name, &pattern.PatternDefinitionError{
				Pattern:    p.Anchor(),
				Constraint: "miner",
				Labels:     []string{label},
				Cause:      pattern.ErrUnboundVariable,
			})
		}
	}
	return &LabelMiner{
		name:      v.Name,
		pattern:   p,
		source:    v.Source,
		target:    v.Target,
		mediators: v.Mediators,
	}, nil
}

// LabelMiner emits one pair per match, from the node bound to its source label
// to the node bound to its target label.
type LabelMiner struct {
	name      string
	pattern   *pattern.Pattern
	source    string
	target    string
	mediators []string
}

func (lm *LabelMiner) Name() string              { return lm.name }
func (lm *LabelMiner) Pattern() *pattern.Pattern { return lm.pattern }

// Mine returns the pair of the match. Matches relating a molecule to itself
// yield nothing.
func (lm *LabelMiner) Mine(m *pattern.Match) []Pair {
	src, tgt := m.Get(lm.source), m.Get(lm.target)
	if src == nil || tgt == nil || src.Identity() == tgt.Identity() {
		return nil
	}
	return []Pair{{
		Source:    src.Identity(),
		Target:    tgt.Identity(),
		Mediators: mediatorIDs(m, lm.mediators),
	}}
}

func mediatorIDs(m *pattern.Match, labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		n := m.Get(label)
		if n == nil || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		out = append(out, n.ID)
	}
	return out
}

// registry of built-in variants, keyed by name.
var variants = map[string]Variant{}

// register adds built-in variants; duplicate names are a programming error.
func register(vs ...Variant) {
	for _, v := range vs {
		if _, dup := variants[v.Name]; dup {
			panic("miner: duplicate variant " + v.Name)
		}
		variants[v.Name] = v
	}
}

// Lookup returns the built-in variant with the given name.
func Lookup(name string) (Variant, bool) {
	v, ok := variants[name]
	return v, ok
}

// Names returns the names of every built-in variant, sorted.
func Names() []string {
	out := make([]string, 0, len(variants))
	for name := range variants {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
