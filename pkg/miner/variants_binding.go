package miner

import (
	"github.com/dd0wney/cluso-sif/pkg/model"
	p "github.com/dd0wney/cluso-sif/pkg/pattern"
)

const (
	InComplexWith = "in-complex-with"
	InteractsWith = "interacts-with"
	NeighborOf    = "neighbor-of"
)

func init() {
	register(
		Variant{
			Name:      InComplexWith,
			Build:     inComplexWith,
			Source:    "PE1",
			Target:    "PE2",
			Mediators: []string{"Complex"},
		},
		Variant{
			Name:      InteractsWith,
			Build:     interactsWith,
			Source:    "simple PE1",
			Target:    "simple PE2",
			Mediators: []string{"Interaction"},
		},
		Variant{
			Name:      NeighborOf,
			Build:     neighborOf,
			Source:    "simple PE1",
			Target:    "simple PE2",
			Mediators: []string{"Interaction"},
		},
	)
}

// Two proteins are members of the same complex, at any nesting depth.
func inComplexWith() (*p.Pattern, error) {
	return p.New(model.KindProtein, "PE1").
		Add(p.LinkedPE(p.Up, 0), "PE1", "Complex").
		Add(p.Type(model.KindComplex), "Complex").
		Add(p.LinkedPE(p.Down, 0), "Complex", "PE2").
		Add(p.Type(model.KindProtein), "PE2").
		Add(p.DifferentIdentity(), "PE1", "PE2").
		Build()
}

// Two proteins take part in the same molecular interaction, possibly as
// members of participating complexes.
func interactsWith() (*p.Pattern, error) {
	return p.New(model.KindProtein, "simple PE1").
		Add(p.LinkedPE(p.Up, 0), "simple PE1", "PE1").
		Add(p.Traverse(p.RelParticipantOf), "PE1", "Interaction").
		Add(p.Type(model.KindMolecularInteraction), "Interaction").
		Add(p.Participant(p.AnySide), "Interaction", "PE2").
		Add(p.NotEqual(), "PE1", "PE2").
		Add(p.LinkedPE(p.Down, 0), "PE2", "simple PE2").
		Add(p.Type(model.KindProtein), "simple PE2").
		Add(p.DifferentIdentity(), "simple PE1", "simple PE2").
		Build()
}

// Two proteins are involved in the same interaction, as participants or as
// controllers.
func neighborOf() (*p.Pattern, error) {
	return p.New(model.KindProtein, "simple PE1").
		Add(p.LinkedPE(p.Up, 0), "simple PE1", "PE1").
		Add(p.InteractionOf(), "PE1", "Interaction").
		Add(p.InteractorOf(), "Interaction", "PE2").
		Add(p.NotEqual(), "PE1", "PE2").
		Add(p.LinkedPE(p.Down, 0), "PE2", "simple PE2").
		Add(p.Type(model.KindProtein), "simple PE2").
		Add(p.DifferentIdentity(), "simple PE1", "simple PE2").
		Build()
}
