package model

// Kind is the class tag of a model node.
type Kind string

const (
	KindAny Kind = ""

	KindPhysicalEntity       Kind = "PhysicalEntity"
	KindSimplePhysicalEntity Kind = "SimplePhysicalEntity"
	KindProtein              Kind = "Protein"
	KindSmallMolecule        Kind = "SmallMolecule"
	KindDna                  Kind = "Dna"
	KindRna                  Kind = "Rna"
	KindComplex              Kind = "Complex"

	KindEntityReference        Kind = "EntityReference"
	KindProteinReference       Kind = "ProteinReference"
	KindSmallMoleculeReference Kind = "SmallMoleculeReference"
	KindDnaReference           Kind = "DnaReference"
	KindRnaReference           Kind = "RnaReference"

	KindInteraction                      Kind = "Interaction"
	KindConversion                       Kind = "Conversion"
	KindBiochemicalReaction              Kind = "BiochemicalReaction"
	KindTransport                        Kind = "Transport"
	KindTransportWithBiochemicalReaction Kind = "TransportWithBiochemicalReaction"
	KindComplexAssembly                  Kind = "ComplexAssembly"
	KindDegradation                      Kind = "Degradation"
	KindTemplateReaction                 Kind = "TemplateReaction"
	KindControl                          Kind = "Control"
	KindCatalysis                        Kind = "Catalysis"
	KindModulation                       Kind = "Modulation"
	KindTemplateReactionRegulation       Kind = "TemplateReactionRegulation"
	KindMolecularInteraction             Kind = "MolecularInteraction"
)

// parents maps every known kind to its direct super kind.
var parents = map[Kind]Kind{
	KindSimplePhysicalEntity: KindPhysicalEntity,
	KindComplex:              KindPhysicalEntity,
	KindProtein:              KindSimplePhysicalEntity,
	KindSmallMolecule:        KindSimplePhysicalEntity,
	KindDna:                  KindSimplePhysicalEntity,
	KindRna:                  KindSimplePhysicalEntity,

	KindProteinReference:       KindEntityReference,
	KindSmallMoleculeReference: KindEntityReference,
	KindDnaReference:           KindEntityReference,
	KindRnaReference:           KindEntityReference,

	KindConversion:                       KindInteraction,
	KindTemplateReaction:                 KindInteraction,
	KindControl:                          KindInteraction,
	KindMolecularInteraction:             KindInteraction,
	KindBiochemicalReaction:              KindConversion,
	KindTransport:                        KindConversion,
	KindComplexAssembly:                  KindConversion,
	KindDegradation:                      KindConversion,
	KindTransportWithBiochemicalReaction: KindBiochemicalReaction,
	KindCatalysis:                        KindControl,
	KindModulation:                       KindControl,
	KindTemplateReactionRegulation:       KindControl,
}

// maxKindDepth bounds the parent walk in IsA.
const maxKindDepth = 8

// IsA reports whether k is other or one of its sub kinds. KindAny matches everything.
func (k Kind) IsA(other Kind) bool {
	if other == KindAny {
		return true
	}
	cur := k
	for i := 0; i < maxKindDepth; i++ {
		if cur == other {
			return true
		}
		next, ok := parents[cur]
		if !ok {
			return false
		}
		cur = next
	}
	return false
}

// Known reports whether k is part of the kind hierarchy.
func (k Kind) Known() bool {
	if _, ok := parents[k]; ok {
		return true
	}
	switch k {
	case KindPhysicalEntity, KindEntityReference, KindInteraction:
		return true
	}
	return false
}

// IsPhysicalEntity reports whether k is a physical entity kind.
func (k Kind) IsPhysicalEntity() bool { return k.IsA(KindPhysicalEntity) }

// IsInteraction reports whether k is an interaction kind.
func (k Kind) IsInteraction() bool { return k.IsA(KindInteraction) }

// Direction is the direction of a conversion.
type Direction string

const (
	LeftToRight Direction = "LEFT_TO_RIGHT"
	RightToLeft Direction = "RIGHT_TO_LEFT"
	Reversible  Direction = "REVERSIBLE"
)
