package sif

import (
	"cmp"
	"slices"
)

// Edge is one SIF record.
type Edge struct {
	Source    string
	Target    string
	Type      string
	Directed  bool
	Mediators []string // node ids linking the endpoints, first seen first
}

type edgeKey struct {
	source, target, tag string
}

// key identifies an edge for deduplication. Undirected edges are keyed with
// their endpoints in lexical order.
func (e Edge) key() edgeKey {
	s, t := e.Source, e.Target
	if !e.Directed && t < s {
		s, t = t, s
	}
	return edgeKey{source: s, target: t, tag: e.Type}
}

// EdgeSet deduplicates edges by (source, target, type) and merges the
// mediators of duplicates. The zero value is not usable; call NewEdgeSet.
type EdgeSet struct {
	edges map[edgeKey]*Edge
}

func NewEdgeSet() *EdgeSet {
	return &EdgeSet{edges: make(map[edgeKey]*Edge)}
}

// Add inserts e, or merges its mediators into the edge already present. It
// reports whether e was new. Undirected edges are stored with ordered
// endpoints.
func (s *EdgeSet) Add(e Edge) bool {
	k := e.key()
	cur, ok := s.edges[k]
	if !ok {
		cur = &Edge{Source: k.source, Target: k.target, Type: e.Type, Directed: e.Directed}
		s.edges[k] = cur
	}
	for _, m := range e.Mediators {
		if !slices.Contains(cur.Mediators, m) {
			cur.Mediators = append(cur.Mediators, m)
		}
	}
	return !ok
}

// AddAll adds every edge of es
func (s *EdgeSet) AddAll(es []Edge) {
	for _, e := range es {
		s.Add(e)
	}
}

func (s *EdgeSet) Len() int {
	return len(s.edges)
}

// Edges returns the edges sorted by type, source and target.
func (s *EdgeSet) Edges() []Edge {
	out := make([]Edge, 0, len(s.edges))
	for _, e := range s.edges {
		c := *e
		c.Mediators = append([]string(nil), e.Mediators...)
		out = append(out, c)
	}
	SortEdges(out)
	return out
}

// SortEdges orders edges by type, then source, then target.
func SortEdges(es []Edge) {
	slices.SortFunc(es, func(a, b Edge) int {
		return cmp.Or(
			cmp.Compare(a.Type, b.Type),
			cmp.Compare(a.Source, b.Source),
			cmp.Compare(a.Target, b.Target),
		)
	})
}
