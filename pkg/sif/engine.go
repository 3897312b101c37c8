package sif

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dd0wney/cluso-sif/pkg/logging"
	"github.com/dd0wney/cluso-sif/pkg/metrics"
	"github.com/dd0wney/cluso-sif/pkg/miner"
	"github.com/dd0wney/cluso-sif/pkg/model"
	"github.com/dd0wney/cluso-sif/pkg/parallel"
	"github.com/dd0wney/cluso-sif/pkg/pattern"
)

// EngineConfig configures an Engine. Zero fields take defaults.
type EngineConfig struct {
	Registry *Registry         // defaults to DefaultRegistry()
	Logger   logging.Logger    // defaults to logging.DefaultLogger()
	Metrics  *metrics.Registry // defaults to metrics.DefaultRegistry()
	Workers  int               // relation types mined at once by MineAll; 0 means GOMAXPROCS
}

// Engine mines relation types from sealed model graphs. It holds no per-graph
// state and is safe for concurrent use.
type Engine struct {
	registry *Registry
	logger   logging.Logger
	metrics  *metrics.Registry
	workers  int
}

// Extraction is the outcome of extracting one relation type or variant.
type Extraction struct {
	Edges []Edge
	Model *model.Graph // every node bound by a match, in input order
}

// NewEngine creates an engine
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		registry: cfg.Registry,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		workers:  cfg.Workers,
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if e.logger == nil {
		e.logger = logging.DefaultLogger()
	}
	if e.metrics == nil {
		e.metrics = metrics.DefaultRegistry()
	}
	e.logger = e.logger.With(logging.Component("sif"))
	return e
}

// Registry returns the relation types the engine mines
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Mine runs every variant of the relation type tag, in order, and returns the
// deduplicated edges sorted by source and target.
//
// An unknown tag is logged and yields no edges. A variant whose search meets a
// dangling reference is logged and skipped; the other variants still run.
// Cancellation of ctx is returned as is.
func (e *Engine) Mine(ctx context.Context, g *model.Graph, tag string) ([]Edge, error) {
	rt, ok := e.registry.Lookup(tag)
	if !ok {
		e.unknown(tag)
		return []Edge{}, nil
	}

	start := time.Now()
	set := NewEdgeSet()
	for _, m := range e.registry.Miners(rt.Tag) {
		res, err := e.search(ctx, g, rt, m)
		if err != nil {
			if model.IsIntegrityError(err) {
				continue
			}
			return nil, err
		}
		for _, match := range res.All() {
			set.AddAll(edgesOf(rt, m.Mine(match)))
		}
	}

	edges := set.Edges()
	e.metrics.RecordMining(rt.Tag, time.Since(start), len(edges))
	e.logger.Debug("relation type mined",
		logging.Tag(rt.Tag),
		logging.Edges(len(edges)),
		logging.Latency(time.Since(start)),
	)
	return edges, nil
}

// MineAll mines the given relation types in parallel and returns the union of
// their edges. No tags means every registered type. The first error cancels
// the types still running.
func (e *Engine) MineAll(ctx context.Context, g *model.Graph, tags []string) ([]Edge, error) {
	if len(tags) == 0 {
		tags = e.registry.Tags()
	}
	tags = unique(tags)

	pool, err := parallel.NewWorkerPool(min(e.workers, len(tags)), e.logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		all      []Edge
		firstErr error
	)
	timer := logging.StartTimer(e.logger, "mining complete", logging.Count(len(tags)))

	for _, tag := range tags {
		pool.Submit(func() {
			edges, err := e.Mine(ctx, g, tag)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("mine %s: %w", tag, err)
					cancel()
				}
				return
			}
			all = append(all, edges...)
		})
	}
	pool.Close()

	if pool.Panics() > 0 && firstErr == nil {
		firstErr = fmt.Errorf("%d mining tasks panicked", pool.Panics())
	}
	if firstErr != nil {
		timer.EndError(firstErr)
		return nil, firstErr
	}

	SortEdges(all)
	timer.End(logging.Edges(len(all)))
	return all, nil
}

// Extract mines one relation type, or one variant when name is a variant
// name, and also returns the sub-model induced by every node of every match.
// An unknown name is logged and yields an empty extraction; callers that
// need the name to exist check Registry().Resolve first.
func (e *Engine) Extract(ctx context.Context, g *model.Graph, name string) (*Extraction, error) {
	rt, miners, ok := e.registry.Resolve(name)
	if !ok {
		e.unknown(name)
		return &Extraction{Edges: []Edge{}, Model: g.Subgraph(nil)}, nil
	}

	set := NewEdgeSet()
	ids := make(map[string]bool)
	for _, m := range miners {
		res, err := e.search(ctx, g, rt, m)
		if err != nil {
			if model.IsIntegrityError(err) {
				continue
			}
			return nil, err
		}
		for _, match := range res.All() {
			set.AddAll(edgesOf(rt, m.Mine(match)))
		}
		for id := range res.NodeIDs() {
			ids[id] = true
		}
	}

	sub := g.Subgraph(ids)
	e.metrics.RecordExtraction(sub.Len())
	e.logger.Info("extracted",
		logging.String("name", name),
		logging.Tag(rt.Tag),
		logging.Nodes(sub.Len()),
		logging.Edges(set.Len()),
	)
	return &Extraction{Edges: set.Edges(), Model: sub}, nil
}

// search runs one variant and records it. Integrity errors are logged here.
func (e *Engine) search(ctx context.Context, g *model.Graph, rt RelationType, m miner.Miner) (*pattern.Result, error) {
	start := time.Now()
	res, st, err := pattern.SearchWithStats(ctx, g, m.Pattern())

	status := metrics.StatusOK
	switch {
	case err == nil:
	case model.IsIntegrityError(err):
		status = metrics.StatusIntegrity
		e.logger.Warn("variant skipped",
			logging.Tag(rt.Tag),
			logging.Variant(m.Name()),
			logging.Error(err),
		)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = metrics.StatusCancelled
	default:
		status = metrics.StatusError
	}
	e.metrics.RecordSearch(m.Name(), status, time.Since(start), st.Anchors, st.Matches)

	if err != nil {
		return nil, err
	}
	e.logger.Debug("variant searched",
		logging.Tag(rt.Tag),
		logging.Variant(m.Name()),
		logging.Anchors(st.Anchors),
		logging.Matches(st.Matches),
	)
	return res, nil
}

func (e *Engine) unknown(tag string) {
	e.metrics.RecordUnknownType()
	e.logger.Warn("relation type ignored", logging.Error(&UnknownRelationTypeError{Tag: tag}))
}

func edgesOf(rt RelationType, pairs []miner.Pair) []Edge {
	out := make([]Edge, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Edge{
			Source:    p.Source,
			Target:    p.Target,
			Type:      rt.Tag,
			Directed:  rt.Directed,
			Mediators: p.Mediators,
		})
	}
	return out
}

func unique(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
