package sif

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestEdgeSetDedup(t *testing.T) {
	s := NewEdgeSet()

	if !s.Add(Edge{Source: "A", Target: "B", Type: "in-complex-with", Mediators: []string{"cx1"}}) {
		t.Error("first Add() should report a new edge")
	}
	if s.Add(Edge{Source: "B", Target: "A", Type: "in-complex-with", Mediators: []string{"cx2", "cx1"}}) {
		t.Error("reversed undirected edge should merge")
	}
	s.Add(Edge{Source: "B", Target: "A", Type: "controls-state-change-of", Directed: true})
	s.Add(Edge{Source: "A", Target: "B", Type: "controls-state-change-of", Directed: true, Mediators: []string{"cat"}})
	s.Add(Edge{Source: "A", Target: "B", Type: "controls-state-change-of", Directed: true, Mediators: []string{"cat"}})

	want := []Edge{
		{Source: "A", Target: "B", Type: "controls-state-change-of", Directed: true, Mediators: []string{"cat"}},
		{Source: "B", Target: "A", Type: "controls-state-change-of", Directed: true},
		{Source: "A", Target: "B", Type: "in-complex-with", Mediators: []string{"cx1", "cx2"}},
	}
	if got := s.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Edges() = %+v\nwant %+v", got, want)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestEdgeSetUndirectedOrdering(t *testing.T) {
	s := NewEdgeSet()
	s.Add(Edge{Source: "zeta", Target: "alpha", Type: "reacts-with"})
	got := s.Edges()
	if len(got) != 1 || got[0].Source != "alpha" || got[0].Target != "zeta" {
		t.Errorf("Edges() = %+v, want endpoints in lexical order", got)
	}
}

func TestEdgesAreCopies(t *testing.T) {
	s := NewEdgeSet()
	s.Add(Edge{Source: "A", Target: "B", Type: "t", Mediators: []string{"m"}})
	s.Edges()[0].Mediators[0] = "changed"
	if got := s.Edges()[0].Mediators[0]; got != "m" {
		t.Errorf("mediator = %s, want m", got)
	}
}

func TestEdgeSetProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	ids := gen.OneConstOf("A", "B", "C", "D")

	properties.Property("undirected dedup ignores endpoint order", prop.ForAll(
		func(srcs, tgts []string) bool {
			forward, backward := NewEdgeSet(), NewEdgeSet()
			for i := range min(len(srcs), len(tgts)) {
				forward.Add(Edge{Source: srcs[i], Target: tgts[i], Type: "in-complex-with"})
				backward.Add(Edge{Source: tgts[i], Target: srcs[i], Type: "in-complex-with"})
			}
			return reflect.DeepEqual(forward.Edges(), backward.Edges())
		},
		gen.SliceOfN(12, ids),
		gen.SliceOfN(12, ids),
	))

	properties.Property("directed edges keep their orientation", prop.ForAll(
		func(srcs, tgts []string) bool {
			s := NewEdgeSet()
			want := make(map[[2]string]bool)
			for i := range min(len(srcs), len(tgts)) {
				s.Add(Edge{Source: srcs[i], Target: tgts[i], Type: "controls-state-change-of", Directed: true})
				want[[2]string{srcs[i], tgts[i]}] = true
			}
			if s.Len() != len(want) {
				return false
			}
			for _, e := range s.Edges() {
				if !want[[2]string{e.Source, e.Target}] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(12, ids),
		gen.SliceOfN(12, ids),
	))

	properties.Property("adding twice changes nothing", prop.ForAll(
		func(srcs, tgts []string) bool {
			once, twice := NewEdgeSet(), NewEdgeSet()
			for i := range min(len(srcs), len(tgts)) {
				e := Edge{Source: srcs[i], Target: tgts[i], Type: "neighbor-of", Mediators: []string{srcs[i] + tgts[i]}}
				once.Add(e)
				twice.Add(e)
				twice.Add(e)
			}
			return reflect.DeepEqual(once.Edges(), twice.Edges())
		},
		gen.SliceOfN(12, ids),
		gen.SliceOfN(12, ids),
	))

	properties.TestingRun(t)
}
