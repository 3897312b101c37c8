package sif

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-sif/pkg/logging"
	"github.com/dd0wney/cluso-sif/pkg/metrics"
	"github.com/dd0wney/cluso-sif/pkg/miner"
	"github.com/dd0wney/cluso-sif/pkg/model"
)

func sealed(nodes ...*model.Node) *model.Graph {
	g := model.NewGraph().MustAdd(nodes...)
	g.Seal()
	return g
}

// expression builds protein a regulating the template reaction that makes g.
func expression(extra ...*model.Node) *model.Graph {
	nodes := []*model.Node{
		{ID: "erA", Kind: model.KindProteinReference},
		{ID: "erG", Kind: model.KindProteinReference},
		{ID: "a", Kind: model.KindProtein, EntityReference: "erA"},
		{ID: "g", Kind: model.KindProtein, EntityReference: "erG"},
		{ID: "tr", Kind: model.KindTemplateReaction, Products: []string{"g"}},
		{ID: "reg", Kind: model.KindTemplateReactionRegulation, Controllers: []string{"a"}, Controlled: "tr"},
	}
	return sealed(append(nodes, extra...)...)
}

func newTestEngine(t *testing.T) (*Engine, *metrics.Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	m := metrics.NewRegistry()
	e := NewEngine(EngineConfig{
		Logger:  logging.NewJSONLogger(&buf, logging.DebugLevel),
		Metrics: m,
		Workers: 4,
	})
	return e, m, &buf
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.Counter.GetValue()
}

func TestMineControlsExpression(t *testing.T) {
	e, m, _ := newTestEngine(t)

	edges, err := e.Mine(context.Background(), expression(), "controls-expression-of")
	require.NoError(t, err)
	assert.Equal(t, []Edge{{
		Source:    "erA",
		Target:    "erG",
		Type:      "controls-expression-of",
		Directed:  true,
		Mediators: []string{"reg", "tr"},
	}}, edges)

	assert.Equal(t, 1.0, counterValue(t, m.EdgesTotal.WithLabelValues("controls-expression-of")))
	assert.Equal(t, 1.0, counterValue(t, m.SearchesTotal.WithLabelValues(miner.ControlsExpressionWithTemplateReaction, metrics.StatusOK)))
	assert.Equal(t, 1.0, counterValue(t, m.SearchesTotal.WithLabelValues(miner.ControlsExpressionWithConversion, metrics.StatusOK)))
}

func TestMineDedupsAcrossMatches(t *testing.T) {
	e, _, _ := newTestEngine(t)
	g := sealed(
		&model.Node{ID: "erA", Kind: model.KindProteinReference},
		&model.Node{ID: "erB", Kind: model.KindProteinReference},
		&model.Node{ID: "a", Kind: model.KindProtein, EntityReference: "erA"},
		&model.Node{ID: "b", Kind: model.KindProtein, EntityReference: "erB"},
		&model.Node{ID: "cx1", Kind: model.KindComplex, Components: []string{"a", "b"}},
		&model.Node{ID: "cx2", Kind: model.KindComplex, Components: []string{"b", "a"}},
	)

	edges, err := e.Mine(context.Background(), g, "in-complex-with")
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "erA", edges[0].Source)
	assert.Equal(t, "erB", edges[0].Target)
	assert.False(t, edges[0].Directed)
	assert.ElementsMatch(t, []string{"cx1", "cx2"}, edges[0].Mediators)
}

func TestMineUnknownTag(t *testing.T) {
	e, m, buf := newTestEngine(t)

	edges, err := e.Mine(context.Background(), expression(), "controls-everything")
	require.NoError(t, err)
	assert.NotNil(t, edges)
	assert.Empty(t, edges)
	assert.Equal(t, 1.0, counterValue(t, m.UnknownTypesTotal))
	assert.Contains(t, buf.String(), `unknown relation type \"controls-everything\"`)
}

func TestMineSkipsVariantOnIntegrityError(t *testing.T) {
	e, m, buf := newTestEngine(t)
	g := expression(
		&model.Node{ID: "conv", Kind: model.KindBiochemicalReaction, Left: []string{"g"}, Right: []string{"ghost"}},
		&model.Node{ID: "cat", Kind: model.KindCatalysis, Controllers: []string{"a"}, Controlled: "conv"},
	)

	edges, err := e.Mine(context.Background(), g, "controls-expression-of")
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, []string{"reg", "tr"}, edges[0].Mediators)

	assert.Equal(t, 1.0, counterValue(t, m.IntegrityErrors))
	assert.Equal(t, 1.0, counterValue(t, m.SearchesTotal.WithLabelValues(miner.ControlsExpressionWithConversion, metrics.StatusIntegrity)))
	assert.Contains(t, buf.String(), "variant skipped")
	assert.Contains(t, buf.String(), "ghost")
}

func TestMineCancelled(t *testing.T) {
	e, m, _ := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Mine(ctx, expression(), "controls-expression-of")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1.0, counterValue(t, m.SearchesTotal.WithLabelValues(miner.ControlsExpressionWithTemplateReaction, metrics.StatusCancelled)))

	_, err = e.MineAll(ctx, expression(), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMineUnsealedGraph(t *testing.T) {
	e, _, _ := newTestEngine(t)
	g := model.NewGraph().MustAdd(&model.Node{ID: "a", Kind: model.KindProtein})

	_, err := e.Mine(context.Background(), g, "interacts-with")
	require.Error(t, err)
}

func TestMineAll(t *testing.T) {
	e, _, _ := newTestEngine(t)
	g := expression(
		&model.Node{ID: "erB", Kind: model.KindProteinReference},
		&model.Node{ID: "b", Kind: model.KindProtein, EntityReference: "erB"},
		&model.Node{ID: "cx", Kind: model.KindComplex, Components: []string{"a", "b"}},
	)

	edges, err := e.MineAll(context.Background(), g, []string{"in-complex-with", "controls-expression-of", "in-complex-with", "bogus"})
	require.NoError(t, err)
	assert.Equal(t, []Edge{
		{Source: "erA", Target: "erG", Type: "controls-expression-of", Directed: true, Mediators: []string{"reg", "tr"}},
		{Source: "erA", Target: "erB", Type: "in-complex-with", Mediators: []string{"cx"}},
	}, edges)

	all, err := e.MineAll(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Subset(t, all, edges)

	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		assert.LessOrEqual(t, prev.Type, cur.Type, "edges sorted by type")
	}
}

func TestMineAllMatchesSequential(t *testing.T) {
	e, _, _ := newTestEngine(t)
	g := expression(
		&model.Node{ID: "erB", Kind: model.KindProteinReference},
		&model.Node{ID: "b", Kind: model.KindProtein, EntityReference: "erB"},
		&model.Node{ID: "mi", Kind: model.KindMolecularInteraction, Participants: []string{"a", "b"}},
		&model.Node{ID: "s1", Kind: model.KindSmallMolecule},
		&model.Node{ID: "s2", Kind: model.KindSmallMolecule},
		&model.Node{ID: "conv", Kind: model.KindBiochemicalReaction, Left: []string{"s1"}, Right: []string{"s2"}},
		&model.Node{ID: "cat", Kind: model.KindCatalysis, Controllers: []string{"b"}, Controlled: "conv"},
	)

	var want []Edge
	for _, tag := range e.Registry().Tags() {
		edges, err := e.Mine(context.Background(), g, tag)
		require.NoError(t, err)
		want = append(want, edges...)
	}
	SortEdges(want)

	got, err := e.MineAll(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExtract(t *testing.T) {
	e, m, _ := newTestEngine(t)
	g := expression(&model.Node{ID: "unrelated", Kind: model.KindSmallMolecule})

	for _, name := range []string{
		miner.ControlsExpressionWithTemplateReaction,
		"controls-expression-of",
		"CONTROLS_EXPRESSION_OF",
	} {
		t.Run(name, func(t *testing.T) {
			ex, err := e.Extract(context.Background(), g, name)
			require.NoError(t, err)
			require.Len(t, ex.Edges, 1)
			assert.Equal(t, "controls-expression-of", ex.Edges[0].Type)

			var ids []string
			for _, n := range ex.Model.Nodes() {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, []string{"a", "g", "tr", "reg"}, ids)
			assert.True(t, ex.Model.Sealed())
		})
	}

	var gm dto.Metric
	require.NoError(t, m.ExtractedNodes.Write(&gm))
	assert.Equal(t, 4.0, gm.Gauge.GetValue())
}

func TestExtractUnknown(t *testing.T) {
	e, m, buf := newTestEngine(t)

	ex, err := e.Extract(context.Background(), expression(), "no-such-pattern")
	require.NoError(t, err)
	assert.NotNil(t, ex.Edges)
	assert.Empty(t, ex.Edges)
	assert.Equal(t, 0, ex.Model.Len())
	assert.Equal(t, 1.0, counterValue(t, m.UnknownTypesTotal))
	assert.Contains(t, buf.String(), `unknown relation type \"no-such-pattern\"`)
}

func TestMineUnionsSiblingVariants(t *testing.T) {
	r, err := NewRegistry(
		RelationType{Tag: "in-complex-with", Variants: []string{miner.InComplexWith, miner.InComplexWith}},
		RelationType{
			Tag:      "controls-expression-of",
			Directed: true,
			Variants: []string{miner.ControlsExpressionWithTemplateReaction, miner.ControlsExpressionWithTemplateReaction},
		},
	)
	require.NoError(t, err)
	e := NewEngine(EngineConfig{Registry: r, Logger: logging.NewNopLogger(), Metrics: metrics.NewRegistry()})

	complexes := sealed(
		&model.Node{ID: "erA", Kind: model.KindProteinReference},
		&model.Node{ID: "erB", Kind: model.KindProteinReference},
		&model.Node{ID: "a", Kind: model.KindProtein, EntityReference: "erA"},
		&model.Node{ID: "b", Kind: model.KindProtein, EntityReference: "erB"},
		&model.Node{ID: "cx", Kind: model.KindComplex, Components: []string{"a", "b"}},
	)
	edges, err := e.Mine(context.Background(), complexes, "in-complex-with")
	require.NoError(t, err)
	assert.Equal(t, []Edge{{Source: "erA", Target: "erB", Type: "in-complex-with", Mediators: []string{"cx"}}}, edges)

	edges, err = e.Mine(context.Background(), expression(), "controls-expression-of")
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, []string{"reg", "tr"}, edges[0].Mediators)

	ex, err := e.Extract(context.Background(), expression(), "controls-expression-of")
	require.NoError(t, err)
	require.Len(t, ex.Edges, 1)
	assert.Equal(t, edges[0], ex.Edges[0])
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(EngineConfig{})
	assert.Same(t, DefaultRegistry(), e.Registry())
	assert.NotNil(t, e.logger)
	assert.Same(t, metrics.DefaultRegistry(), e.metrics)
}

func TestEngineLogsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, logging.DebugLevel).With(logging.RunID("run-1"))
	e := NewEngine(EngineConfig{Logger: logger, Metrics: metrics.NewRegistry()})

	_, err := e.Mine(context.Background(), expression(), "controls-expression-of")
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Contains(t, line, `"run_id":"run-1"`)
		assert.Contains(t, line, `"component":"sif"`)
	}
}
