package pattern

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-sif/pkg/model"
)

// MaxComplexDepth bounds complex membership walks. Complexes may nest, and
// malformed input may even contain membership cycles.
const MaxComplexDepth = 8

// MaxControlDepth bounds walks along chains of controls of controls.
const MaxControlDepth = 4

// Link is the direction of a complex membership walk.
type Link int

const (
	Up   Link = iota // member -> enclosing complexes
	Down             // complex -> members
)

// Side selects participants of an interaction.
type Side int

const (
	Input Side = iota
	Output
	AnySide
)

func (s Side) String() string {
	switch s {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "any"
	}
}

// inputsOf returns the consumed participant ids of an interaction.
func inputsOf(n *model.Node) []string {
	switch {
	case n.Kind.IsA(model.KindConversion):
		return n.Inputs()
	case n.Kind.IsA(model.KindTemplateReaction):
		if n.Template != "" {
			return []string{n.Template}
		}
	}
	return nil
}

// outputsOf returns the produced participant ids of an interaction.
func outputsOf(n *model.Node) []string {
	switch {
	case n.Kind.IsA(model.KindConversion):
		return n.Outputs()
	case n.Kind.IsA(model.KindTemplateReaction):
		return n.Products
	}
	return nil
}

func sideIDs(n *model.Node, side Side) []string {
	switch side {
	case Input:
		return inputsOf(n)
	case Output:
		return outputsOf(n)
	default:
		return n.ParticipantIDs()
	}
}

// walkComplexes returns start followed by the complexes (Up) or members (Down)
// reachable within depth levels, breadth first.
func walkComplexes(g *model.Graph, start *model.Node, link Link, depth int) ([]*model.Node, error) {
	out := []*model.Node{start}
	seen := map[string]bool{start.ID: true}
	frontier := []*model.Node{start}
	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []*model.Node
		for _, n := range frontier {
			ids, field := n.Components, "components"
			if link == Up {
				ids, field = g.ComponentOf(n.ID), "componentOf"
			}
			nodes, err := g.Resolve(n.ID, field, ids)
			if err != nil {
				return nil, err
			}
			for _, m := range nodes {
				if seen[m.ID] {
					continue
				}
				seen[m.ID] = true
				out = append(out, m)
				next = append(next, m)
			}
		}
		frontier = next
	}
	return out, nil
}

// controlTarget follows the controlled reference through controls of
// controls and returns the first interaction that is not a control.
func controlTarget(g *model.Graph, ctrl *model.Node, depth int) (*model.Node, error) {
	cur := ctrl
	for i := 0; i <= depth; i++ {
		if cur.Controlled == "" {
			return nil, nil
		}
		next, err := g.Resolve(cur.ID, "controlled", []string{cur.Controlled})
		if err != nil {
			return nil, err
		}
		if !next[0].Kind.IsA(model.KindControl) {
			return next[0], nil
		}
		cur = next[0]
	}
	return nil, nil
}

// linkedPE walks complex membership.
type linkedPE struct {
	link  Link
	depth int
}

// LinkedPE generates the second entity from the first by walking complex
// membership up or down, at most depth levels. The first entity itself is
// always a candidate.
func LinkedPE(link Link, depth int) Constraint {
	if depth <= 0 {
		depth = MaxComplexDepth
	}
	return linkedPE{link: link, depth: depth}
}

func (c linkedPE) Name() string {
	dir := "up"
	if c.link == Down {
		dir = "down"
	}
	return "LinkedPE(" + dir + "," + strconv.Itoa(c.depth) + ")"
}
func (c linkedPE) VarCount() int     { return 2 }
func (c linkedPE) CanGenerate() bool { return true }
func (c linkedPE) Kinds() []model.Kind {
	return []model.Kind{model.KindPhysicalEntity, model.KindPhysicalEntity}
}

func (c linkedPE) Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error) {
	return walkComplexes(g, nodes[0], c.link, c.depth)
}

func (c linkedPE) Satisfies(g *model.Graph, nodes ...*model.Node) (bool, error) {
	return generatorSatisfies(c, g, nodes)
}

// participant generates participants of an interaction.
type participant struct {
	side Side
}

// Participant generates the inputs, outputs or all participants of the
// interaction bound to the first variable. Inputs and outputs respect the
// conversion direction; a template reaction's template is its input and its
// products are its outputs.
func Participant(side Side) Constraint { return participant{side: side} }

func (c participant) Name() string      { return "Participant(" + c.side.String() + ")" }
func (c participant) VarCount() int     { return 2 }
func (c participant) CanGenerate() bool { return true }
func (c participant) Kinds() []model.Kind {
	return []model.Kind{model.KindInteraction, model.KindPhysicalEntity}
}

func (c participant) Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error) {
	out, err := g.Resolve(nodes[0].ID, "participant", sideIDs(nodes[0], c.side))
	if err != nil {
		return nil, err
	}
	return distinct(out), nil
}

func (c participant) Satisfies(_ *model.Graph, nodes ...*model.Node) (bool, error) {
	return slices.Contains(sideIDs(nodes[0], c.side), nodes[1].ID), nil
}

// participatesInConv generates conversions an entity takes part in.
type participatesInConv struct {
	side Side
}

// ParticipatesInConv generates the conversions that consume (Input) or
// produce (Output) the entity bound to the first variable.
func ParticipatesInConv(side Side) Constraint { return participatesInConv{side: side} }

func (c participatesInConv) Name() string      { return "ParticipatesInConv(" + c.side.String() + ")" }
func (c participatesInConv) VarCount() int     { return 2 }
func (c participatesInConv) CanGenerate() bool { return true }
func (c participatesInConv) Kinds() []model.Kind {
	return []model.Kind{model.KindPhysicalEntity, model.KindConversion}
}

func (c participatesInConv) Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error) {
	pe := nodes[0]
	ints, err := g.Resolve(pe.ID, "participantOf", g.ParticipantOf(pe.ID))
	if err != nil {
		return nil, err
	}
	out := make([]*model.Node, 0, len(ints))
	for _, n := range ints {
		if n.Kind.IsA(model.KindConversion) && slices.Contains(sideIDs(n, c.side), pe.ID) {
			out = append(out, n)
		}
	}
	return distinct(out), nil
}

func (c participatesInConv) Satisfies(_ *model.Graph, nodes ...*model.Node) (bool, error) {
	conv := nodes[1]
	return conv.Kind.IsA(model.KindConversion) && slices.Contains(sideIDs(conv, c.side), nodes[0].ID), nil
}

// conversionSide relates two participants of a conversion.
type conversionSide struct {
	same bool
}

// ConversionSide generates, for an entity and a conversion it takes part in,
// the entities on the same side (other than itself) or on the other side.
func ConversionSide(same bool) Constraint { return conversionSide{same: same} }

func (c conversionSide) Name() string {
	if c.same {
		return "ConversionSide(same)"
	}
	return "ConversionSide(other)"
}
func (c conversionSide) VarCount() int     { return 3 }
func (c conversionSide) CanGenerate() bool { return true }
func (c conversionSide) Kinds() []model.Kind {
	return []model.Kind{model.KindPhysicalEntity, model.KindConversion, model.KindPhysicalEntity}
}

func (c conversionSide) ids(pe, conv *model.Node) []string {
	side := conv.Side(pe.ID)
	if side == 0 {
		return nil
	}
	if !c.same {
		return conv.SideIDs(-side)
	}
	ids := make([]string, 0, len(conv.SideIDs(side)))
	for _, id := range conv.SideIDs(side) {
		if id != pe.ID {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c conversionSide) Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error) {
	out, err := g.Resolve(nodes[1].ID, "side", c.ids(nodes[0], nodes[1]))
	if err != nil {
		return nil, err
	}
	return distinct(out), nil
}

func (c conversionSide) Satisfies(_ *model.Graph, nodes ...*model.Node) (bool, error) {
	return slices.Contains(c.ids(nodes[0], nodes[1]), nodes[2].ID), nil
}

// controlToInteraction generates the interaction a control acts on.
type controlToInteraction struct {
	kind  model.Kind
	depth int
}

// ControlToInteraction generates the interaction of the given kind that the
// control bound to the first variable acts on, following controls of controls
// at most MaxControlDepth levels.
func ControlToInteraction(kind model.Kind) Constraint {
	if kind == model.KindAny {
		kind = model.KindInteraction
	}
	return controlToInteraction{kind: kind, depth: MaxControlDepth}
}

// ControlToConv is ControlToInteraction restricted to conversions.
func ControlToConv() Constraint { return ControlToInteraction(model.KindConversion) }

func (c controlToInteraction) Name() string      { return "ControlToInteraction(" + string(c.kind) + ")" }
func (c controlToInteraction) VarCount() int     { return 2 }
func (c controlToInteraction) CanGenerate() bool { return true }
func (c controlToInteraction) Kinds() []model.Kind {
	return []model.Kind{model.KindControl, c.kind}
}

func (c controlToInteraction) Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error) {
	target, err := controlTarget(g, nodes[0], c.depth)
	if err != nil || target == nil || !target.Kind.IsA(c.kind) {
		return nil, err
	}
	return []*model.Node{target}, nil
}

func (c controlToInteraction) Satisfies(g *model.Graph, nodes ...*model.Node) (bool, error) {
	return generatorSatisfies(c, g, nodes)
}

// interactionOf generates the interactions an entity is involved in.
type interactionOf struct{}

// InteractionOf generates the interactions the entity participates in and the
// interactions it controls, through any chain of controls.
func InteractionOf() Constraint { return interactionOf{} }

func (interactionOf) Name() string      { return "InteractionOf" }
func (interactionOf) VarCount() int     { return 2 }
func (interactionOf) CanGenerate() bool { return true }
func (interactionOf) Kinds() []model.Kind {
	return []model.Kind{model.KindPhysicalEntity, model.KindInteraction}
}

func (c interactionOf) Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error) {
	pe := nodes[0]
	out, err := g.Resolve(pe.ID, "participantOf", g.ParticipantOf(pe.ID))
	if err != nil {
		return nil, err
	}
	ctrls, err := g.Resolve(pe.ID, "controllerOf", g.ControllerOf(pe.ID))
	if err != nil {
		return nil, err
	}
	for _, ctrl := range ctrls {
		target, err := controlTarget(g, ctrl, MaxControlDepth)
		if err != nil {
			return nil, err
		}
		if target != nil {
			out = append(out, target)
		}
	}
	return distinct(out), nil
}

func (c interactionOf) Satisfies(g *model.Graph, nodes ...*model.Node) (bool, error) {
	return generatorSatisfies(c, g, nodes)
}

// interactorOf generates the entities involved in an interaction.
type interactorOf struct{}

// InteractorOf generates the participants of the interaction and the
// controllers of the controls acting on it, through any chain of controls.
func InteractorOf() Constraint { return interactorOf{} }

func (interactorOf) Name() string      { return "InteractorOf" }
func (interactorOf) VarCount() int     { return 2 }
func (interactorOf) CanGenerate() bool { return true }
func (interactorOf) Kinds() []model.Kind {
	return []model.Kind{model.KindInteraction, model.KindPhysicalEntity}
}

func (c interactorOf) Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error) {
	in := nodes[0]
	out, err := g.Resolve(in.ID, "participant", in.ParticipantIDs())
	if err != nil {
		return nil, err
	}
	frontier := []*model.Node{in}
	for level := 0; level <= MaxControlDepth && len(frontier) > 0; level++ {
		var next []*model.Node
		for _, n := range frontier {
			ctrls, err := g.Resolve(n.ID, "controlledBy", g.ControlledBy(n.ID))
			if err != nil {
				return nil, err
			}
			for _, ctrl := range ctrls {
				controllers, err := g.Resolve(ctrl.ID, "controllers", ctrl.Controllers)
				if err != nil {
					return nil, err
				}
				out = append(out, controllers...)
				next = append(next, ctrl)
			}
		}
		frontier = next
	}
	return distinct(out), nil
}

func (c interactorOf) Satisfies(g *model.Graph, nodes ...*model.Node) (bool, error) {
	return generatorSatisfies(c, g, nodes)
}

// identity compares entities by their shared reference.
type identity struct {
	same bool
}

// SameIdentity requires both entities to be the same molecule (see model.Node.Identity).
func SameIdentity() Constraint { return identity{same: true} }

// DifferentIdentity requires the entities to be different molecules.
func DifferentIdentity() Constraint { return identity{same: false} }

func (c identity) Name() string {
	if c.same {
		return "SameIdentity"
	}
	return "DifferentIdentity"
}
func (c identity) VarCount() int     { return 2 }
func (c identity) CanGenerate() bool { return false }

func (c identity) Satisfies(_ *model.Graph, nodes ...*model.Node) (bool, error) {
	return (nodes[0].Identity() == nodes[1].Identity()) == c.same, nil
}

func (c identity) Generate(*model.Graph, ...*model.Node) ([]*model.Node, error) {
	return nil, ErrNotGenerative
}

// guard adapts a plain predicate to a Constraint.
type guard struct {
	name  string
	arity int
	kinds []model.Kind
	test  func(g *model.Graph, nodes []*model.Node) (bool, error)
}

func (c guard) Name() string        { return c.name }
func (c guard) VarCount() int       { return c.arity }
func (c guard) CanGenerate() bool   { return false }
func (c guard) Kinds() []model.Kind { return c.kinds }

func (c guard) Satisfies(g *model.Graph, nodes ...*model.Node) (bool, error) {
	return c.test(g, nodes)
}

func (c guard) Generate(*model.Graph, ...*model.Node) ([]*model.Node, error) {
	return nil, ErrNotGenerative
}

// sameSet reports whether a and b hold the same strings, ignoring order.
func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, s := range a {
		as[s] = true
	}
	bs := make(map[string]bool, len(b))
	for _, s := range b {
		bs[s] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for s := range as {
		if !bs[s] {
			return false
		}
	}
	return true
}

// wrapper is the complex an entity appears in, or "" when it appears bare.
func wrapper(pe, simple *model.Node) string {
	if pe == simple {
		return ""
	}
	return pe.ID
}

// StateChanged works on (input PE, input simple PE, output PE, output simple
// PE). It holds when the simple entities carry different features or appear
// in different complexes on the two sides.
func StateChanged() Constraint {
	pe := model.KindPhysicalEntity
	return guard{
		name:  "StateChanged",
		arity: 4,
		kinds: []model.Kind{pe, pe, pe, pe},
		test: func(_ *model.Graph, n []*model.Node) (bool, error) {
			if !sameSet(n[1].Features, n[3].Features) {
				return true, nil
			}
			return wrapper(n[0], n[1]) != wrapper(n[2], n[3]), nil
		},
	}
}

// FeatureChanged works on (input simple PE, output simple PE). It holds when
// the features containing substr differ between the two entities.
func FeatureChanged(substr string) Constraint {
	pe := model.KindPhysicalEntity
	filter := func(fs []string) []string {
		out := make([]string, 0, len(fs))
		for _, f := range fs {
			if strings.Contains(strings.ToLower(f), substr) {
				out = append(out, f)
			}
		}
		return out
	}
	return guard{
		name:  "FeatureChanged(" + substr + ")",
		arity: 2,
		kinds: []model.Kind{pe, pe},
		test: func(_ *model.Graph, n []*model.Node) (bool, error) {
			return !sameSet(filter(n[0].Features), filter(n[1].Features)), nil
		},
	}
}

// LocationChanged works on (input PE, output PE) and holds when their
// cellular locations differ.
func LocationChanged() Constraint {
	pe := model.KindPhysicalEntity
	return guard{
		name:  "LocationChanged",
		arity: 2,
		kinds: []model.Kind{pe, pe},
		test: func(_ *model.Graph, n []*model.Node) (bool, error) {
			return n[0].Location != n[1].Location, nil
		},
	}
}

// OnlyOneSide works on (conversion, PE). It holds when the entity takes part
// in the conversion and no entity of the same identity is on the other side.
func OnlyOneSide() Constraint {
	return guard{
		name:  "OnlyOneSide",
		arity: 2,
		kinds: []model.Kind{model.KindConversion, model.KindPhysicalEntity},
		test: func(g *model.Graph, n []*model.Node) (bool, error) {
			conv, pe := n[0], n[1]
			side := conv.Side(pe.ID)
			if side == 0 {
				return false, nil
			}
			others, err := g.Resolve(conv.ID, "side", conv.SideIDs(-side))
			if err != nil {
				return false, err
			}
			for _, o := range others {
				if o.Identity() == pe.Identity() {
					return false, nil
				}
			}
			return true, nil
		},
	}
}

// NoInputWithIdentity works on (conversion, PE). It holds when no input of
// the conversion, nor any member of an input complex, has the identity of the
// entity.
func NoInputWithIdentity() Constraint {
	return guard{
		name:  "NoInputWithIdentity",
		arity: 2,
		kinds: []model.Kind{model.KindConversion, model.KindPhysicalEntity},
		test: func(g *model.Graph, n []*model.Node) (bool, error) {
			conv, pe := n[0], n[1]
			inputs, err := g.Resolve(conv.ID, "input", inputsOf(conv))
			if err != nil {
				return false, err
			}
			for _, in := range inputs {
				members, err := walkComplexes(g, in, Down, MaxComplexDepth)
				if err != nil {
					return false, err
				}
				for _, m := range members {
					if m.Identity() == pe.Identity() {
						return false, nil
					}
				}
			}
			return true, nil
		},
	}
}
