package pattern

import "github.com/dd0wney/cluso-sif/pkg/model"

// Match is one complete binding of a pattern's variables. It is immutable.
type Match struct {
	pattern *Pattern
	nodes   []*model.Node
}

// Pattern returns the pattern the match was found for.
func (m *Match) Pattern() *Pattern { return m.pattern }

// Anchor returns the node bound to the anchor variable.
func (m *Match) Anchor() *model.Node { return m.nodes[0] }

// Get returns the node bound to label, or nil for an unknown label.
func (m *Match) Get(label string) *model.Node {
	if i, ok := m.pattern.index[label]; ok {
		return m.nodes[i]
	}
	return nil
}

// Nodes returns the bound nodes in slot order. The same node may appear in
// several slots.
func (m *Match) Nodes() []*model.Node {
	return append([]*model.Node(nil), m.nodes...)
}

// IDs returns the distinct ids of the bound nodes in slot order.
func (m *Match) IDs() []string {
	seen := make(map[string]bool, len(m.nodes))
	out := make([]string, 0, len(m.nodes))
	for _, n := range m.nodes {
		if !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, n.ID)
		}
	}
	return out
}

// Verify re-evaluates every step of the pattern against the match bindings.
func Verify(g *model.Graph, m *Match) (bool, error) {
	p := m.pattern
	if len(m.nodes) != len(p.labels) {
		return false, nil
	}
	for i, n := range m.nodes {
		if n == nil || !n.Kind.IsA(p.kinds[i]) {
			return false, nil
		}
	}
	for _, st := range p.steps {
		args := make([]*model.Node, len(st.slots))
		for i, s := range st.slots {
			args[i] = m.nodes[s]
		}
		var (
			ok  bool
			err error
		)
		if st.c.CanGenerate() {
			ok, err = generatorSatisfies(st.c, g, args)
		} else {
			ok, err = st.c.Satisfies(g, args...)
		}
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
