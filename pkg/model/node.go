package model

import "slices"

// Node is a single element of the pathway model. Only the fields that belong
// to the node's kind are meaningful; the others stay empty.
type Node struct {
	ID           string
	Kind         Kind
	Names        []string
	StandardName string

	displayName    string
	hasDisplayName bool

	// Physical entities
	EntityReference string   // id of the shared entity reference
	Components      []string // complex members
	Location        string   // cellular location term
	Features        []string // modification features, e.g. "phosphorylation@S15"

	// Conversions
	Left      []string
	Right     []string
	Direction Direction

	// Molecular interactions
	Participants []string

	// Template reactions
	Template string
	Products []string

	// Controls
	Controllers []string
	Controlled  string
	ControlType string // ACTIVATION, INHIBITION, ...
}

// DisplayName returns the display name and whether one is set.
func (n *Node) DisplayName() (string, bool) {
	return n.displayName, n.hasDisplayName
}

// SetDisplayName sets the display name.
func (n *Node) SetDisplayName(name string) {
	n.displayName = name
	n.hasDisplayName = true
}

// Named reports whether the node carries naming information.
func (n *Node) Named() bool {
	return n.Kind.IsPhysicalEntity() || n.Kind.IsA(KindEntityReference) || n.Kind.IsInteraction()
}

// Identity returns the key under which entities are considered the same
// molecule: the shared entity reference when there is one, the node id otherwise.
func (n *Node) Identity() string {
	if n.EntityReference != "" {
		return n.EntityReference
	}
	return n.ID
}

// IsSimple reports whether the node is a simple physical entity (not a complex).
func (n *Node) IsSimple() bool {
	return n.Kind.IsA(KindSimplePhysicalEntity)
}

// Inputs returns the ids consumed by a conversion with respect to its direction.
// Reversible conversions consume both sides.
func (n *Node) Inputs() []string {
	switch n.Direction {
	case RightToLeft:
		return n.Right
	case Reversible:
		return union(n.Left, n.Right)
	default:
		return n.Left
	}
}

// Outputs returns the ids produced by a conversion with respect to its direction.
func (n *Node) Outputs() []string {
	switch n.Direction {
	case RightToLeft:
		return n.Left
	case Reversible:
		return union(n.Left, n.Right)
	default:
		return n.Right
	}
}

// Side returns the conversion side holding id: -1 for left, 1 for right, 0 for none.
func (n *Node) Side(id string) int {
	if slices.Contains(n.Left, id) {
		return -1
	}
	if slices.Contains(n.Right, id) {
		return 1
	}
	return 0
}

// SideIDs returns the ids on the given side (-1 left, 1 right).
func (n *Node) SideIDs(side int) []string {
	switch side {
	case -1:
		return n.Left
	case 1:
		return n.Right
	}
	return nil
}

// ParticipantIDs returns every participant of an interaction in a stable order.
// Controllers of a control are not participants.
func (n *Node) ParticipantIDs() []string {
	ids := union(n.Left, n.Right)
	ids = union(ids, n.Participants)
	if n.Template != "" {
		ids = union(ids, []string{n.Template})
	}
	return union(ids, n.Products)
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
