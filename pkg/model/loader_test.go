package model

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/snappy"
)

const sampleYAML = `
nodes:
  - id: er1
    kind: ProteinReference
    names: [TP53]
  - id: p1
    kind: Protein
    entityReference: er1
    displayName: ""
  - id: p2
    kind: Protein
    names: [MDM2]
  - id: cat
    kind: Catalysis
    controllers: [p2]
    controlled: rx
  - id: rx
    kind: BiochemicalReaction
    left: [p1]
    right: [p1]
`

func TestLoadYAML(t *testing.T) {
	g, err := Load(strings.NewReader(sampleYAML), "sample")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !g.Sealed() {
		t.Error("Load() should return a sealed graph")
	}
	if g.Len() != 5 {
		t.Errorf("Len() = %d, want 5", g.Len())
	}
	p1, ok := g.Node("p1")
	if !ok {
		t.Fatal("p1 not loaded")
	}
	if name, set := p1.DisplayName(); !set || name != "" {
		t.Errorf("p1 display name = %q (set=%v), want empty but set", name, set)
	}
	if got := g.ControlledBy("rx"); len(got) != 1 || got[0] != "cat" {
		t.Errorf("ControlledBy(rx) = %v", got)
	}
}

func TestLoadJSON(t *testing.T) {
	doc := `{"nodes":[{"id":"p","kind":"Protein","names":["a","b"]}]}`
	g, err := Load(strings.NewReader(doc), "json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p, _ := g.Node("p")
	if len(p.Names) != 2 {
		t.Errorf("Names = %v", p.Names)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantEmpty bool
	}{
		{"empty input", "", true},
		{"no nodes", "nodes: []\n", true},
		{"malformed", "nodes: [", false},
		{"unknown field", "nodes:\n  - id: a\n    kind: Protein\n    colour: red\n", false},
		{"unknown kind", "nodes:\n  - id: a\n    kind: Gizmo\n", false},
		{"duplicate id", "nodes:\n  - {id: a, kind: Protein}\n  - {id: a, kind: Protein}\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), tt.name)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			var emptyErr *EmptyModelError
			var loadErr *LoadError
			if tt.wantEmpty {
				if !errors.As(err, &emptyErr) {
					t.Errorf("error = %v, want EmptyModelError", err)
				}
				if !IsEmptyModel(err) {
					t.Error("IsEmptyModel() = false")
				}
			} else {
				if !errors.As(err, &loadErr) {
					t.Errorf("error = %v, want LoadError", err)
				}
				if !errors.Is(err, ErrMalformedModel) {
					t.Error("LoadError should wrap ErrMalformedModel")
				}
			}
		})
	}
}

func TestLoadFileSnappy(t *testing.T) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write([]byte(sampleYAML)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "model.yaml"+SnappySuffix)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if g.Len() != 5 {
		t.Errorf("Len() = %d, want 5", g.Len())
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("LoadFile() error = %v, want LoadError", err)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	g, err := Load(strings.NewReader(sampleYAML), "sample")
	if err != nil {
		t.Fatal(err)
	}
	doc := DocumentOf(g)
	again, err := doc.Graph()
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}
	if again.Len() != g.Len() {
		t.Errorf("round trip Len() = %d, want %d", again.Len(), g.Len())
	}
}
