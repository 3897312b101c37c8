package pattern

import (
	"context"
	"fmt"

	"github.com/dd0wney/cluso-sif/pkg/model"
)

// Result holds the matches of one search, grouped by anchor node.
type Result struct {
	// Anchors lists the anchors with at least one match, in graph order
	Anchors []*model.Node
	// Matches maps an anchor id to its matches in discovery order
	Matches map[string][]*Match
}

// Len returns the total number of matches.
func (r *Result) Len() int {
	n := 0
	for _, ms := range r.Matches {
		n += len(ms)
	}
	return n
}

// All returns every match, anchors in graph order.
func (r *Result) All() []*Match {
	out := make([]*Match, 0, r.Len())
	for _, a := range r.Anchors {
		out = append(out, r.Matches[a.ID]...)
	}
	return out
}

// NodeIDs returns the ids of every node bound in any match.
func (r *Result) NodeIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, ms := range r.Matches {
		for _, m := range ms {
			for _, n := range m.nodes {
				ids[n.ID] = true
			}
		}
	}
	return ids
}

// Stats counts the work of a search.
type Stats struct {
	Anchors int // candidate anchors tried
	Steps   int // constraint evaluations
	Matches int
}

// Search finds every match of p in g. Each node of the anchor kind is tried in
// graph order; ctx is checked before each anchor. A dangling reference met on
// the way aborts the search with a *model.GraphIntegrityError.
func Search(ctx context.Context, g *model.Graph, p *Pattern) (*Result, error) {
	res, _, err := SearchWithStats(ctx, g, p)
	return res, err
}

// SearchWithStats is Search that also reports work counters.
func SearchWithStats(ctx context.Context, g *model.Graph, p *Pattern) (*Result, Stats, error) {
	var stats Stats
	if !g.Sealed() {
		return nil, stats, fmt.Errorf("search %q: graph is not sealed", p.Anchor())
	}

	res := &Result{Matches: make(map[string][]*Match)}
	s := &searcher{g: g, p: p, binding: make([]*model.Node, len(p.labels))}

	for _, anchor := range g.NodesOfKind(p.kinds[0]) {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		stats.Anchors++

		s.found = nil
		s.binding[0] = anchor
		if err := s.extend(0); err != nil {
			return nil, stats, err
		}
		if len(s.found) > 0 {
			res.Anchors = append(res.Anchors, anchor)
			res.Matches[anchor.ID] = s.found
			stats.Matches += len(s.found)
		}
	}
	stats.Steps = s.steps
	return res, stats, nil
}

// SearchAnchor returns the matches of p starting from a single anchor node.
func SearchAnchor(g *model.Graph, p *Pattern, anchor *model.Node) ([]*Match, error) {
	if !anchor.Kind.IsA(p.kinds[0]) {
		return nil, nil
	}
	s := &searcher{g: g, p: p, binding: make([]*model.Node, len(p.labels))}
	s.binding[0] = anchor
	if err := s.extend(0); err != nil {
		return nil, err
	}
	return s.found, nil
}

type searcher struct {
	g       *model.Graph
	p       *Pattern
	binding []*model.Node
	found   []*Match
	steps   int
}

// extend satisfies steps[i:] depth first, backtracking over generated candidates.
func (s *searcher) extend(i int) error {
	if i == len(s.p.steps) {
		s.found = append(s.found, &Match{
			pattern: s.p,
			nodes:   append([]*model.Node(nil), s.binding...),
		})
		return nil
	}
	s.steps++

	st := s.p.steps[i]
	args := make([]*model.Node, len(st.slots))
	for j, slot := range st.slots {
		args[j] = s.binding[slot]
	}

	if !st.generates {
		ok, err := st.c.Satisfies(s.g, args...)
		if err != nil || !ok {
			return err
		}
		return s.extend(i + 1)
	}

	target := st.slots[len(st.slots)-1]
	cands, err := st.c.Generate(s.g, args[:len(args)-1]...)
	if err != nil {
		return err
	}
	kind := s.p.kinds[target]
	for _, n := range cands {
		if !n.Kind.IsA(kind) {
			continue
		}
		s.binding[target] = n
		if err := s.extend(i + 1); err != nil {
			return err
		}
	}
	s.binding[target] = nil
	return nil
}
