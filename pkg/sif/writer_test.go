package sif

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-sif/pkg/model"
)

var sample = []Edge{
	{Source: "erA", Target: "erB", Type: "controls-state-change-of", Directed: true, Mediators: []string{"cat", "conv"}},
	{Source: "erA", Target: "erC", Type: "in-complex-with"},
}

func TestWriteSIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSIF(&buf, sample, false))
	assert.Equal(t, "erA\tcontrols-state-change-of\terB\nerA\tin-complex-with\terC\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSIF(&buf, sample, true))
	assert.Equal(t, "erA\tcontrols-state-change-of\terB\tcat conv\nerA\tin-complex-with\terC\t\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSIF(&buf, nil, true))
	assert.Empty(t, buf.String())
}

func TestWriteJSONRoundTrip(t *testing.T) {
	g := expression()
	for _, n := range g.Nodes() {
		if n.ID == "a" {
			n.SetDisplayName("MDM2")
		}
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, g))

	back, err := model.Load(&buf, "roundtrip")
	require.NoError(t, err)
	require.Equal(t, g.Len(), back.Len())

	a, ok := back.Node("a")
	require.True(t, ok)
	name, set := a.DisplayName()
	assert.True(t, set)
	assert.Equal(t, "MDM2", name)

	reg, ok := back.Node("reg")
	require.True(t, ok)
	assert.Equal(t, "tr", reg.Controlled)
	assert.Equal(t, []string{"a"}, reg.Controllers)
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "out.sif")
	require.NoError(t, WriteSIFFile(plain, sample, false))
	data, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "erA\tcontrols-state-change-of\terB\nerA\tin-complex-with\terC\n", string(data))

	framed := filepath.Join(dir, "out.sif"+model.SnappySuffix)
	require.NoError(t, WriteSIFFile(framed, sample, false))
	f, err := os.Open(framed)
	require.NoError(t, err)
	defer f.Close()
	var got bytes.Buffer
	_, err = got.ReadFrom(snappy.NewReader(f))
	require.NoError(t, err)
	assert.Equal(t, string(data), got.String())

	sub := filepath.Join(dir, "sub.json"+model.SnappySuffix)
	require.NoError(t, WriteJSONFile(sub, expression()))
	back, err := model.LoadFile(sub)
	require.NoError(t, err)
	assert.Equal(t, 6, back.Len())

	require.Error(t, WriteSIFFile(filepath.Join(dir, "missing", "out.sif"), sample, false))
}
