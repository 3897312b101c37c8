// Package naming fills in missing display names of a loaded model.
package naming

import (
	"strings"
	"unicode/utf8"

	"github.com/dd0wney/cluso-sif/pkg/model"
)

// Stats counts the display names set by each pass of Normalize.
type Stats struct {
	Assigned   int // pass 1: from the standard name or the shortest name
	Backfilled int // pass 2: copied from the entity reference
}

// Total is the number of names set
func (s Stats) Total() int {
	return s.Assigned + s.Backfilled
}

// Normalize sets display names in place on a sealed graph. It must run during
// setup, before the graph is shared with concurrent readers.
//
// Pass 1 gives every named node without a display name its standard name, or
// else its shortest name in characters (the earliest one on ties). Pass 2 copies the display
// name of each entity reference onto the simple entities referencing it whose
// display name is unset or blank.
//
// Every write checks that the target is still unset or blank, so a second
// call changes nothing.
func Normalize(g *model.Graph) Stats {
	var st Stats

	for _, n := range g.Nodes() {
		if !n.Named() {
			continue
		}
		if _, ok := n.DisplayName(); ok {
			continue
		}
		if name, ok := pick(n); ok {
			n.SetDisplayName(name)
			st.Assigned++
		}
	}

	for _, er := range g.Nodes() {
		if !er.Kind.IsA(model.KindEntityReference) {
			continue
		}
		name, _ := er.DisplayName()
		if blank(name) {
			continue
		}
		for _, id := range g.ReferenceOf(er.ID) {
			pe, ok := g.Node(id)
			if !ok || !pe.IsSimple() {
				continue
			}
			if current, _ := pe.DisplayName(); blank(current) {
				pe.SetDisplayName(name)
				st.Backfilled++
			}
		}
	}

	return st
}

// pick returns the display name pass 1 would give n
func pick(n *model.Node) (string, bool) {
	if n.StandardName != "" {
		return n.StandardName, true
	}
	if len(n.Names) == 0 {
		return "", false
	}
	shortest, size := n.Names[0], utf8.RuneCountInString(n.Names[0])
	for _, name := range n.Names[1:] {
		if l := utf8.RuneCountInString(name); l < size {
			shortest, size = name, l
		}
	}
	return shortest, true
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
