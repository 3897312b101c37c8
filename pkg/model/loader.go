package model

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a model. JSON documents are accepted too,
// since the decoder reads YAML.
type Document struct {
	Nodes []NodeRecord `yaml:"nodes" json:"nodes"`
}

// NodeRecord is the serialized form of a Node.
type NodeRecord struct {
	ID              string    `yaml:"id" json:"id"`
	Kind            Kind      `yaml:"kind" json:"kind"`
	Names           []string  `yaml:"names,omitempty" json:"names,omitempty"`
	StandardName    string    `yaml:"standardName,omitempty" json:"standardName,omitempty"`
	DisplayName     *string   `yaml:"displayName,omitempty" json:"displayName,omitempty"`
	EntityReference string    `yaml:"entityReference,omitempty" json:"entityReference,omitempty"`
	Components      []string  `yaml:"components,omitempty" json:"components,omitempty"`
	Location        string    `yaml:"location,omitempty" json:"location,omitempty"`
	Features        []string  `yaml:"features,omitempty" json:"features,omitempty"`
	Left            []string  `yaml:"left,omitempty" json:"left,omitempty"`
	Right           []string  `yaml:"right,omitempty" json:"right,omitempty"`
	Direction       Direction `yaml:"direction,omitempty" json:"direction,omitempty"`
	Participants    []string  `yaml:"participants,omitempty" json:"participants,omitempty"`
	Template        string    `yaml:"template,omitempty" json:"template,omitempty"`
	Products        []string  `yaml:"products,omitempty" json:"products,omitempty"`
	Controllers     []string  `yaml:"controllers,omitempty" json:"controllers,omitempty"`
	Controlled      string    `yaml:"controlled,omitempty" json:"controlled,omitempty"`
	ControlType     string    `yaml:"controlType,omitempty" json:"controlType,omitempty"`
}

// SnappySuffix marks snappy framed model and output files.
const SnappySuffix = ".sz"

// LoadFile reads a model document from path. Files ending in SnappySuffix are
// decompressed first.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Cause: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, SnappySuffix) {
		r = snappy.NewReader(f)
	}
	return Load(r, path)
}

// Load decodes a model document and returns the sealed graph. source only
// names the input in errors.
func Load(r io.Reader, source string) (*Graph, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &EmptyModelError{Source: source}
		}
		return nil, &LoadError{Source: source, Cause: err}
	}
	if len(doc.Nodes) == 0 {
		return nil, &EmptyModelError{Source: source}
	}

	g, err := doc.Graph()
	if err != nil {
		return nil, &LoadError{Source: source, Cause: err}
	}
	return g, nil
}

// Graph builds a sealed graph from the document.
func (d *Document) Graph() (*Graph, error) {
	g := NewGraph()
	for i, rec := range d.Nodes {
		if !rec.Kind.Known() {
			return nil, fmt.Errorf("node %d (%s): unknown kind %q", i, rec.ID, rec.Kind)
		}
		if err := g.Add(rec.node()); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	g.Seal()
	return g, nil
}

func (rec NodeRecord) node() *Node {
	n := &Node{
		ID:              rec.ID,
		Kind:            rec.Kind,
		Names:           rec.Names,
		StandardName:    rec.StandardName,
		EntityReference: rec.EntityReference,
		Components:      rec.Components,
		Location:        rec.Location,
		Features:        rec.Features,
		Left:            rec.Left,
		Right:           rec.Right,
		Direction:       rec.Direction,
		Participants:    rec.Participants,
		Template:        rec.Template,
		Products:        rec.Products,
		Controllers:     rec.Controllers,
		Controlled:      rec.Controlled,
		ControlType:     rec.ControlType,
	}
	if rec.DisplayName != nil {
		n.SetDisplayName(*rec.DisplayName)
	}
	return n
}

// RecordOf returns the serialized form of a node.
func RecordOf(n *Node) NodeRecord {
	rec := NodeRecord{
		ID:              n.ID,
		Kind:            n.Kind,
		Names:           n.Names,
		StandardName:    n.StandardName,
		EntityReference: n.EntityReference,
		Components:      n.Components,
		Location:        n.Location,
		Features:        n.Features,
		Left:            n.Left,
		Right:           n.Right,
		Direction:       n.Direction,
		Participants:    n.Participants,
		Template:        n.Template,
		Products:        n.Products,
		Controllers:     n.Controllers,
		Controlled:      n.Controlled,
		ControlType:     n.ControlType,
	}
	if name, ok := n.DisplayName(); ok {
		rec.DisplayName = &name
	}
	return rec
}

// DocumentOf returns the serialized form of a graph, in node order.
func DocumentOf(g *Graph) Document {
	doc := Document{Nodes: make([]NodeRecord, 0, g.Len())}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, RecordOf(n))
	}
	return doc
}
