package pattern

import "github.com/dd0wney/cluso-sif/pkg/model"

// Rel names a direct relationship of the model graph.
type Rel int

const (
	RelEntityReference Rel = iota // physical entity -> its entity reference
	RelReferenceOf                // entity reference -> physical entities
	RelComponent                  // complex -> members
	RelComponentOf                // physical entity -> complexes
	RelController                 // control -> controllers
	RelControllerOf               // physical entity -> controls
	RelControlled                 // control -> controlled interaction
	RelControlledBy               // interaction -> controls
	RelLeft                       // conversion -> left participants
	RelRight                      // conversion -> right participants
	RelParticipant                // interaction -> participants
	RelParticipantOf              // physical entity -> interactions
	RelTemplate                   // template reaction -> template
	RelProduct                    // template reaction -> products
)

var relNames = map[Rel]string{
	RelEntityReference: "entityReference",
	RelReferenceOf:     "referenceOf",
	RelComponent:       "component",
	RelComponentOf:     "componentOf",
	RelController:      "controller",
	RelControllerOf:    "controllerOf",
	RelControlled:      "controlled",
	RelControlledBy:    "controlledBy",
	RelLeft:            "left",
	RelRight:           "right",
	RelParticipant:     "participant",
	RelParticipantOf:   "participantOf",
	RelTemplate:        "template",
	RelProduct:         "product",
}

// relKinds holds the source and target kinds of each relationship.
var relKinds = map[Rel][2]model.Kind{
	RelEntityReference: {model.KindPhysicalEntity, model.KindEntityReference},
	RelReferenceOf:     {model.KindEntityReference, model.KindPhysicalEntity},
	RelComponent:       {model.KindComplex, model.KindPhysicalEntity},
	RelComponentOf:     {model.KindPhysicalEntity, model.KindComplex},
	RelController:      {model.KindControl, model.KindPhysicalEntity},
	RelControllerOf:    {model.KindPhysicalEntity, model.KindControl},
	RelControlled:      {model.KindControl, model.KindInteraction},
	RelControlledBy:    {model.KindInteraction, model.KindControl},
	RelLeft:            {model.KindConversion, model.KindPhysicalEntity},
	RelRight:           {model.KindConversion, model.KindPhysicalEntity},
	RelParticipant:     {model.KindInteraction, model.KindPhysicalEntity},
	RelParticipantOf:   {model.KindPhysicalEntity, model.KindInteraction},
	RelTemplate:        {model.KindTemplateReaction, model.KindPhysicalEntity},
	RelProduct:         {model.KindTemplateReaction, model.KindPhysicalEntity},
}

func (r Rel) String() string {
	if name, ok := relNames[r]; ok {
		return name
	}
	return "unknown"
}

// ids returns the ids n points to through r.
func (r Rel) ids(g *model.Graph, n *model.Node) []string {
	switch r {
	case RelEntityReference:
		if n.EntityReference == "" {
			return nil
		}
		return []string{n.EntityReference}
	case RelReferenceOf:
		return g.ReferenceOf(n.ID)
	case RelComponent:
		return n.Components
	case RelComponentOf:
		return g.ComponentOf(n.ID)
	case RelController:
		return n.Controllers
	case RelControllerOf:
		return g.ControllerOf(n.ID)
	case RelControlled:
		if n.Controlled == "" {
			return nil
		}
		return []string{n.Controlled}
	case RelControlledBy:
		return g.ControlledBy(n.ID)
	case RelLeft:
		return n.Left
	case RelRight:
		return n.Right
	case RelParticipant:
		return n.ParticipantIDs()
	case RelParticipantOf:
		return g.ParticipantOf(n.ID)
	case RelTemplate:
		if n.Template == "" {
			return nil
		}
		return []string{n.Template}
	case RelProduct:
		return n.Products
	}
	return nil
}

// traverse follows one relationship from the first variable to the second.
type traverse struct {
	rel Rel
}

// Traverse returns a generator following rel from the first variable.
func Traverse(rel Rel) Constraint { return traverse{rel: rel} }

func (c traverse) Name() string      { return "Traverse(" + c.rel.String() + ")" }
func (c traverse) VarCount() int     { return 2 }
func (c traverse) CanGenerate() bool { return true }

func (c traverse) Kinds() []model.Kind {
	k, ok := relKinds[c.rel]
	if !ok {
		return []model.Kind{model.KindAny, model.KindAny}
	}
	return []model.Kind{k[0], k[1]}
}

func (c traverse) Generate(g *model.Graph, nodes ...*model.Node) ([]*model.Node, error) {
	from := nodes[0]
	out, err := g.Resolve(from.ID, c.rel.String(), c.rel.ids(g, from))
	if err != nil {
		return nil, err
	}
	return distinct(out), nil
}

func (c traverse) Satisfies(g *model.Graph, nodes ...*model.Node) (bool, error) {
	to := nodes[1]
	for _, id := range c.rel.ids(g, nodes[0]) {
		if id == to.ID {
			return true, nil
		}
	}
	return false, nil
}
