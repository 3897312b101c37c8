package miner

import (
	"github.com/dd0wney/cluso-sif/pkg/model"
	p "github.com/dd0wney/cluso-sif/pkg/pattern"
)

const (
	ControlsExpressionWithTemplateReaction = "controls-expression-with-template-reaction"
	ControlsExpressionWithConversion       = "controls-expression-with-conversion"
	CatalysisPrecedes                      = "catalysis-precedes"
)

func init() {
	register(
		Variant{
			Name:      ControlsExpressionWithTemplateReaction,
			Build:     controlsExpressionWithTemplateReaction,
			Source:    "controller simple PE",
			Target:    "product simple PE",
			Mediators: []string{"Control", "TempReac"},
		},
		Variant{
			Name:      ControlsExpressionWithConversion,
			Build:     controlsExpressionWithConversion,
			Source:    "controller simple PE",
			Target:    "output simple PE",
			Mediators: []string{"Control", "Conversion"},
		},
		Variant{
			Name:      CatalysisPrecedes,
			Build:     catalysisPrecedes,
			Source:    "first controller simple PE",
			Target:    "second controller simple PE",
			Mediators: []string{"first Control", "first Conversion", "second Conversion", "second Control"},
		},
	)
}

// A protein regulates a template reaction producing the second protein.
func controlsExpressionWithTemplateReaction() (*p.Pattern, error) {
	return controlOf(model.KindProtein, "").
		Add(p.ControlToInteraction(model.KindTemplateReaction), "Control", "TempReac").
		Add(p.Traverse(p.RelProduct), "TempReac", "product PE").
		Add(p.LinkedPE(p.Down, 0), "product PE", "product simple PE").
		Add(p.Type(model.KindProtein), "product simple PE").
		Add(p.DifferentIdentity(), "controller simple PE", "product simple PE").
		Build()
}

// A protein controls a conversion whose output protein is not among its inputs.
func controlsExpressionWithConversion() (*p.Pattern, error) {
	return controlOf(model.KindProtein, "").
		Add(p.ControlToConv(), "Control", "Conversion").
		Add(p.Participant(p.Output), "Conversion", "output PE").
		Add(p.LinkedPE(p.Down, 0), "output PE", "output simple PE").
		Add(p.Type(model.KindProtein), "output simple PE").
		Add(p.NoInputWithIdentity(), "Conversion", "output simple PE").
		Add(p.DifferentIdentity(), "controller simple PE", "output simple PE").
		Build()
}

// The first protein controls a conversion whose output is input of a second
// conversion controlled by the second protein.
func catalysisPrecedes() (*p.Pattern, error) {
	return controlOf(model.KindProtein, "first ").
		Add(p.ControlToConv(), "first Control", "first Conversion").
		Add(p.Participant(p.Output), "first Conversion", "linker PE").
		Add(p.ParticipatesInConv(p.Input), "linker PE", "second Conversion").
		Add(p.NotEqual(), "first Conversion", "second Conversion").
		Add(p.Traverse(p.RelControlledBy), "second Conversion", "second Control").
		Add(p.Traverse(p.RelController), "second Control", "second controller PE").
		Add(p.LinkedPE(p.Down, 0), "second controller PE", "second controller simple PE").
		Add(p.Type(model.KindProtein), "second controller simple PE").
		Add(p.DifferentIdentity(), "first controller simple PE", "second controller simple PE").
		Build()
}
