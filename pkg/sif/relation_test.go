package sif

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-sif/pkg/miner"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	if r != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}

	tags := r.Tags()
	if len(tags) != 14 {
		t.Fatalf("Tags() = %d types, want 14", len(tags))
	}

	undirected := map[string]bool{
		"in-complex-with": true,
		"interacts-with":  true,
		"neighbor-of":     true,
		"reacts-with":     true,
	}
	seen := make(map[string]bool)
	for _, rt := range r.Catalog() {
		if rt.Directed == undirected[rt.Tag] {
			t.Errorf("%s: Directed = %v", rt.Tag, rt.Directed)
		}
		if rt.Description == "" {
			t.Errorf("%s: no description", rt.Tag)
		}
		if got := len(r.Miners(rt.Tag)); got != len(rt.Variants) || got == 0 {
			t.Errorf("%s: %d miners for %d variants", rt.Tag, got, len(rt.Variants))
		}
		for _, v := range rt.Variants {
			seen[v] = true
		}
	}
	for _, name := range miner.Names() {
		if !seen[name] {
			t.Errorf("variant %s belongs to no relation type", name)
		}
	}
}

func TestLookup(t *testing.T) {
	r := DefaultRegistry()

	rt, ok := r.Lookup("controls-state-change-of")
	if !ok || len(rt.Variants) != 6 || !rt.Directed {
		t.Fatalf("Lookup() = %+v, %v", rt, ok)
	}
	if rt.Name() != "CONTROLS_STATE_CHANGE_OF" {
		t.Errorf("Name() = %s", rt.Name())
	}

	rt.Variants[0] = "mutated"
	if again, _ := r.Lookup("controls-state-change-of"); again.Variants[0] == "mutated" {
		t.Error("Lookup() should return a copy")
	}

	for _, s := range []string{"", "CONTROLS_STATE_CHANGE_OF", "controls state change", "no-such-type"} {
		if _, ok := r.Lookup(s); ok {
			t.Errorf("Lookup(%q) should fail", s)
		}
	}

	if rt, ok := r.TypeOf("CONTROLS_EXPRESSION_OF"); !ok || rt.Tag != "controls-expression-of" {
		t.Errorf("TypeOf(name) = %+v, %v", rt, ok)
	}
	if _, ok := r.TypeOf("controls-expression-of"); !ok {
		t.Error("TypeOf(tag) failed")
	}
	if _, ok := r.TypeOf("NOT_A_TYPE"); ok {
		t.Error("TypeOf() of an unknown name should fail")
	}
}

func TestVariantOwner(t *testing.T) {
	r := DefaultRegistry()
	rt, m, ok := r.VariantOwner(miner.ControlsStateChangeThroughDegradation)
	if !ok || rt.Tag != "controls-state-change-of" || m.Name() != miner.ControlsStateChangeThroughDegradation {
		t.Errorf("VariantOwner() = %s, %v", rt.Tag, ok)
	}
	if _, _, ok := r.VariantOwner("controls-state-change-of"); ok {
		t.Error("a tag is not a variant name")
	}
}

func TestResolve(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		name    string
		tag     string
		miners  int
		resolve bool
	}{
		{"controls-state-change-of", "controls-state-change-of", 6, true},
		{"CONTROLS_EXPRESSION_OF", "controls-expression-of", 2, true},
		{miner.ControlsExpressionWithConversion, "controls-expression-of", 1, true},
		{"no-such-pattern", "", 0, false},
	}
	for _, tt := range tests {
		rt, ms, ok := r.Resolve(tt.name)
		if ok != tt.resolve || rt.Tag != tt.tag || len(ms) != tt.miners {
			t.Errorf("Resolve(%q) = %q, %d miners, %v", tt.name, rt.Tag, len(ms), ok)
		}
	}
}

func TestTagConversion(t *testing.T) {
	tests := []struct {
		name, tag string
	}{
		{"CONTROLS_STATE_CHANGE_OF", "controls-state-change-of"},
		{"IN_COMPLEX_WITH", "in-complex-with"},
		{"REACTS_WITH", "reacts-with"},
	}
	for _, tt := range tests {
		if got := TagFor(tt.name); got != tt.tag {
			t.Errorf("TagFor(%s) = %s, want %s", tt.name, got, tt.tag)
		}
		if got := NameFor(tt.tag); got != tt.name {
			t.Errorf("NameFor(%s) = %s, want %s", tt.tag, got, tt.name)
		}
		if got := TagFor(NameFor(tt.tag)); got != tt.tag {
			t.Errorf("round trip of %s = %s", tt.tag, got)
		}
	}
}

func TestNewRegistryErrors(t *testing.T) {
	ok := RelationType{Tag: "in-complex-with", Variants: []string{miner.InComplexWith}}

	tests := []struct {
		name  string
		types []RelationType
		want  error
	}{
		{"bad tag", []RelationType{{Tag: "In_Complex"}}, ErrInvalidTag},
		{"empty tag", []RelationType{{}}, ErrInvalidTag},
		{"duplicate", []RelationType{ok, ok}, ErrDuplicateTag},
		{"unknown variant", []RelationType{{Tag: "made-up", Variants: []string{"nothing"}}}, ErrUnknownVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.types...); !errors.Is(err, tt.want) {
				t.Errorf("NewRegistry() error = %v, want %v", err, tt.want)
			}
		})
	}

	r, err := NewRegistry(ok)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if tags := r.Tags(); len(tags) != 1 || tags[0] != "in-complex-with" {
		t.Errorf("Tags() = %v", tags)
	}
}

func TestUnknownRelationTypeError(t *testing.T) {
	var err error = &UnknownRelationTypeError{Tag: "bogus"}
	if !errors.Is(err, ErrUnknownRelationType) {
		t.Error("errors.Is(ErrUnknownRelationType) failed")
	}
	if err.Error() != `unknown relation type "bogus"` {
		t.Errorf("Error() = %s", err)
	}
}
