package miner

import (
	"github.com/dd0wney/cluso-sif/pkg/model"
	p "github.com/dd0wney/cluso-sif/pkg/pattern"
)

// Variant names of the state change family.
const (
	ControlsStateChange                             = "controls-state-change"
	ControlsStateChangeButIsParticipant             = "controls-state-change-but-is-participant"
	ControlsStateChangeBothControllerAndParticipant = "controls-state-change-both-controller-and-participant"
	ControlsStateChangeThroughControllingSM         = "controls-state-change-through-controlling-small-molecule"
	ControlsStateChangeThroughBindingSM             = "controls-state-change-through-binding-small-molecule"
	ControlsStateChangeThroughDegradation           = "controls-state-change-through-degradation"
	ControlsTransport                               = "controls-transport"
	ControlsPhosphorylation                         = "controls-phosphorylation"
)

func init() {
	register(
		Variant{
			Name:      ControlsStateChange,
			Build:     controlsStateChange,
			Source:    "controller simple PE",
			Target:    "input simple PE",
			Mediators: []string{"Control", "Conversion"},
		},
		Variant{
			Name:      ControlsStateChangeButIsParticipant,
			Build:     controlsStateChangeButIsParticipant,
			Source:    "controller simple PE",
			Target:    "input simple PE",
			Mediators: []string{"Conversion"},
		},
		Variant{
			Name:      ControlsStateChangeBothControllerAndParticipant,
			Build:     controlsStateChangeBothControllerAndParticipant,
			Source:    "controller simple PE",
			Target:    "input simple PE",
			Mediators: []string{"Control", "Conversion"},
		},
		Variant{
			Name:      ControlsStateChangeThroughControllingSM,
			Build:     controlsStateChangeThroughControllingSM,
			Source:    "upper controller simple PE",
			Target:    "input simple PE",
			Mediators: []string{"upper Control", "upper Conversion", "controller PE", "Control", "Conversion"},
		},
		Variant{
			Name:      ControlsStateChangeThroughBindingSM,
			Build:     controlsStateChangeThroughBindingSM,
			Source:    "upper controller simple PE",
			Target:    "input simple PE",
			Mediators: []string{"upper Control", "upper Conversion", "small molecule PE", "Conversion"},
		},
		Variant{
			Name:      ControlsStateChangeThroughDegradation,
			Build:     controlsStateChangeThroughDegradation,
			Source:    "controller simple PE",
			Target:    "input simple PE",
			Mediators: []string{"Control", "Conversion"},
		},
		Variant{
			Name:      ControlsTransport,
			Build:     controlsTransport,
			Source:    "controller simple PE",
			Target:    "input simple PE",
			Mediators: []string{"Control", "Conversion"},
		},
		Variant{
			Name:      ControlsPhosphorylation,
			Build:     controlsPhosphorylation,
			Source:    "controller simple PE",
			Target:    "input simple PE",
			Mediators: []string{"Control", "Conversion"},
		},
	)
}

// controlOf starts a pattern at a simple entity of kind and reaches, through
// the complexes it belongs to, the controls it is controller of:
// prefix+"controller simple PE" -> prefix+"controller PE" -> prefix+"Control".
func controlOf(kind model.Kind, prefix string) *p.Builder {
	return p.New(kind, prefix+"controller simple PE").
		Add(p.LinkedPE(p.Up, 0), prefix+"controller simple PE", prefix+"controller PE").
		Add(p.Traverse(p.RelControllerOf), prefix+"controller PE", prefix+"Control")
}

// changedEntity appends an entity of kind that is input of conv and appears
// on the other side of conv with the same identity:
// "input PE", "input simple PE", "output PE", "output simple PE".
func changedEntity(b *p.Builder, conv string, kind model.Kind) *p.Builder {
	return b.
		Add(p.Participant(p.Input), conv, "input PE").
		Add(p.LinkedPE(p.Down, 0), "input PE", "input simple PE").
		Add(p.Type(kind), "input simple PE").
		Add(p.ConversionSide(false), "input PE", conv, "output PE").
		Add(p.LinkedPE(p.Down, 0), "output PE", "output simple PE").
		Add(p.SameIdentity(), "input simple PE", "output simple PE")
}

// controlledChange is the shared body of the direct state change variants: a
// protein controls a conversion it does not take part in, and the conversion
// changes another protein.
func controlledChange() *p.Builder {
	b := controlOf(model.KindProtein, "").
		Add(p.ControlToConv(), "Control", "Conversion").
		Add(p.Not(p.Participant(p.AnySide)), "Conversion", "controller PE")
	return changedEntity(b, "Conversion", model.KindProtein)
}

func controlsStateChange() (*p.Pattern, error) {
	return controlledChange().
		Add(p.StateChanged(), "input PE", "input simple PE", "output PE", "output simple PE").
		Add(p.DifferentIdentity(), "controller simple PE", "input simple PE").
		Build()
}

// The controller takes part in the conversion unchanged, on both sides.
func controlsStateChangeButIsParticipant() (*p.Pattern, error) {
	b := p.New(model.KindProtein, "controller simple PE").
		Add(p.LinkedPE(p.Up, 0), "controller simple PE", "controller PE").
		Add(p.ParticipatesInConv(p.Input), "controller PE", "Conversion").
		Add(p.Participant(p.Output), "Conversion", "controller PE")
	return changedEntity(b, "Conversion", model.KindProtein).
		Add(p.NotEqual(), "input PE", "controller PE").
		Add(p.StateChanged(), "input PE", "input simple PE", "output PE", "output simple PE").
		Add(p.DifferentIdentity(), "controller simple PE", "input simple PE").
		Build()
}

// The controller controls the conversion and is also one of its inputs.
func controlsStateChangeBothControllerAndParticipant() (*p.Pattern, error) {
	b := controlOf(model.KindProtein, "").
		Add(p.ControlToConv(), "Control", "Conversion").
		Add(p.Participant(p.Input), "Conversion", "controller PE")
	return changedEntity(b, "Conversion", model.KindProtein).
		Add(p.NotEqual(), "input PE", "controller PE").
		Add(p.StateChanged(), "input PE", "input simple PE", "output PE", "output simple PE").
		Add(p.DifferentIdentity(), "controller simple PE", "input simple PE").
		Build()
}

// The protein controls the production of a small molecule, which in turn
// controls the conversion changing the second protein.
func controlsStateChangeThroughControllingSM() (*p.Pattern, error) {
	b := controlOf(model.KindProtein, "upper ").
		Add(p.ControlToConv(), "upper Control", "upper Conversion").
		Add(p.Participant(p.Output), "upper Conversion", "controller PE").
		Add(p.Type(model.KindSmallMolecule), "controller PE").
		Add(p.NoInputWithIdentity(), "upper Conversion", "controller PE").
		Add(p.Traverse(p.RelControllerOf), "controller PE", "Control").
		Add(p.ControlToConv(), "Control", "Conversion").
		Add(p.NotEqual(), "upper Conversion", "Conversion")
	return changedEntity(b, "Conversion", model.KindProtein).
		Add(p.StateChanged(), "input PE", "input simple PE", "output PE", "output simple PE").
		Add(p.DifferentIdentity(), "upper controller simple PE", "input simple PE").
		Build()
}

// The protein controls the production of a small molecule that binds the
// second protein into a complex.
func controlsStateChangeThroughBindingSM() (*p.Pattern, error) {
	b := controlOf(model.KindProtein, "upper ").
		Add(p.ControlToConv(), "upper Control", "upper Conversion").
		Add(p.Participant(p.Output), "upper Conversion", "small molecule PE").
		Add(p.Type(model.KindSmallMolecule), "small molecule PE").
		Add(p.ParticipatesInConv(p.Input), "small molecule PE", "Conversion").
		Add(p.NotEqual(), "upper Conversion", "Conversion")
	return changedEntity(b, "Conversion", model.KindProtein).
		Add(p.NotEqual(), "input PE", "small molecule PE").
		Add(p.LinkedPE(p.Up, 0), "small molecule PE", "output PE").
		Add(p.StateChanged(), "input PE", "input simple PE", "output PE", "output simple PE").
		Add(p.DifferentIdentity(), "upper controller simple PE", "input simple PE").
		Build()
}

// The protein controls the degradation of the second protein.
func controlsStateChangeThroughDegradation() (*p.Pattern, error) {
	return controlOf(model.KindProtein, "").
		Add(p.ControlToInteraction(model.KindDegradation), "Control", "Conversion").
		Add(p.Participant(p.Input), "Conversion", "input PE").
		Add(p.LinkedPE(p.Down, 0), "input PE", "input simple PE").
		Add(p.Type(model.KindProtein), "input simple PE").
		Add(p.DifferentIdentity(), "controller simple PE", "input simple PE").
		Build()
}

func controlsTransport() (*p.Pattern, error) {
	return controlledChange().
		Add(p.LocationChanged(), "input PE", "output PE").
		Add(p.DifferentIdentity(), "controller simple PE", "input simple PE").
		Build()
}

func controlsPhosphorylation() (*p.Pattern, error) {
	return controlledChange().
		Add(p.FeatureChanged("phospho"), "input simple PE", "output simple PE").
		Add(p.DifferentIdentity(), "controller simple PE", "input simple PE").
		Build()
}
