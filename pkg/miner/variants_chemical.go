package miner

import (
	"github.com/dd0wney/cluso-sif/pkg/model"
	p "github.com/dd0wney/cluso-sif/pkg/pattern"
)

// Variant names of relations involving small molecules.
const (
	ConsumptionControlledBy       = "consumption-controlled-by"
	ControlsProductionOf          = "controls-production-of"
	ControlsTransportOfChemical   = "controls-transport-of-chemical"
	ChemicalAffectsThroughControl = "chemical-affects-through-control"
	ChemicalAffectsThroughBinding = "chemical-affects-through-binding"
	ReactsWith                    = "reacts-with"
	UsedToProduce                 = "used-to-produce"
)

func init() {
	register(
		Variant{
			Name:      ConsumptionControlledBy,
			Build:     consumptionControlledBy,
			Source:    "input simple PE",
			Target:    "controller simple PE",
			Mediators: []string{"Conversion", "Control"},
		},
		Variant{
			Name:      ControlsProductionOf,
			Build:     controlsProductionOf,
			Source:    "controller simple PE",
			Target:    "output simple PE",
			Mediators: []string{"Control", "Conversion"},
		},
		Variant{
			Name:      ControlsTransportOfChemical,
			Build:     controlsTransportOfChemical,
			Source:    "controller simple PE",
			Target:    "input simple PE",
			Mediators: []string{"Control", "Conversion"},
		},
		Variant{
			Name:      ChemicalAffectsThroughControl,
			Build:     chemicalAffectsThroughControl,
			Source:    "controller simple PE",
			Target:    "affected simple PE",
			Mediators: []string{"Control", "Interaction"},
		},
		Variant{
			Name:      ChemicalAffectsThroughBinding,
			Build:     chemicalAffectsThroughBinding,
			Source:    "small molecule",
			Target:    "protein",
			Mediators: []string{"Conversion", "Complex"},
		},
		Variant{
			Name:      ReactsWith,
			Build:     reactsWith,
			Source:    "SM1",
			Target:    "SM2",
			Mediators: []string{"Conversion"},
		},
		Variant{
			Name:      UsedToProduce,
			Build:     usedToProduce,
			Source:    "SM1",
			Target:    "SM2",
			Mediators: []string{"Conversion"},
		},
	)
}

// A small molecule is consumed by a conversion that a protein controls. The
// molecule must not come out of the conversion unchanged.
func consumptionControlledBy() (*p.Pattern, error) {
	return p.New(model.KindSmallMolecule, "input simple PE").
		Add(p.LinkedPE(p.Up, 0), "input simple PE", "input PE").
		Add(p.ParticipatesInConv(p.Input), "input PE", "Conversion").
		Add(p.OnlyOneSide(), "Conversion", "input PE").
		Add(p.Traverse(p.RelControlledBy), "Conversion", "Control").
		Add(p.Traverse(p.RelController), "Control", "controller PE").
		Add(p.LinkedPE(p.Down, 0), "controller PE", "controller simple PE").
		Add(p.Type(model.KindProtein), "controller simple PE").
		Build()
}

// A protein controls a conversion producing a small molecule that is not
// among its inputs.
func controlsProductionOf() (*p.Pattern, error) {
	return controlOf(model.KindProtein, "").
		Add(p.ControlToConv(), "Control", "Conversion").
		Add(p.Participant(p.Output), "Conversion", "output PE").
		Add(p.LinkedPE(p.Down, 0), "output PE", "output simple PE").
		Add(p.Type(model.KindSmallMolecule), "output simple PE").
		Add(p.NoInputWithIdentity(), "Conversion", "output simple PE").
		Build()
}

// A protein controls a conversion moving a small molecule between locations.
func controlsTransportOfChemical() (*p.Pattern, error) {
	b := controlOf(model.KindProtein, "").
		Add(p.ControlToConv(), "Control", "Conversion").
		Add(p.Not(p.Participant(p.AnySide)), "Conversion", "controller PE")
	return changedEntity(b, "Conversion", model.KindSmallMolecule).
		Add(p.LocationChanged(), "input PE", "output PE").
		Build()
}

// A small molecule controls an interaction in which a protein takes part.
func chemicalAffectsThroughControl() (*p.Pattern, error) {
	return controlOf(model.KindSmallMolecule, "").
		Add(p.ControlToInteraction(model.KindInteraction), "Control", "Interaction").
		Add(p.Participant(p.AnySide), "Interaction", "affected PE").
		Add(p.LinkedPE(p.Down, 0), "affected PE", "affected simple PE").
		Add(p.Type(model.KindProtein), "affected simple PE").
		Build()
}

// A small molecule binds to a protein: a conversion consumes it and outputs
// a complex holding both.
func chemicalAffectsThroughBinding() (*p.Pattern, error) {
	return p.New(model.KindSmallMolecule, "small molecule").
		Add(p.ParticipatesInConv(p.Input), "small molecule", "Conversion").
		Add(p.Participant(p.Output), "Conversion", "Complex").
		Add(p.Type(model.KindComplex), "Complex").
		Add(p.LinkedPE(p.Up, 0), "small molecule", "Complex").
		Add(p.LinkedPE(p.Down, 0), "Complex", "protein").
		Add(p.Type(model.KindProtein), "protein").
		Build()
}

// Two small molecules are on the same side of a biochemical reaction and both
// are changed by it.
func reactsWith() (*p.Pattern, error) {
	return p.New(model.KindSmallMolecule, "SM1").
		Add(p.ParticipatesInConv(p.AnySide), "SM1", "Conversion").
		Add(p.Type(model.KindBiochemicalReaction), "Conversion").
		Add(p.OnlyOneSide(), "Conversion", "SM1").
		Add(p.ConversionSide(true), "SM1", "Conversion", "SM2").
		Add(p.Type(model.KindSmallMolecule), "SM2").
		Add(p.OnlyOneSide(), "Conversion", "SM2").
		Add(p.DifferentIdentity(), "SM1", "SM2").
		Build()
}

// A conversion consumes the first small molecule and produces the second.
func usedToProduce() (*p.Pattern, error) {
	return p.New(model.KindSmallMolecule, "SM1").
		Add(p.ParticipatesInConv(p.Input), "SM1", "Conversion").
		Add(p.OnlyOneSide(), "Conversion", "SM1").
		Add(p.ConversionSide(false), "SM1", "Conversion", "SM2").
		Add(p.Type(model.KindSmallMolecule), "SM2").
		Add(p.OnlyOneSide(), "Conversion", "SM2").
		Add(p.DifferentIdentity(), "SM1", "SM2").
		Build()
}
