package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-sif/pkg/config"
	"github.com/dd0wney/cluso-sif/pkg/logging"
	"github.com/dd0wney/cluso-sif/pkg/metrics"
	"github.com/dd0wney/cluso-sif/pkg/model"
	"github.com/dd0wney/cluso-sif/pkg/naming"
	"github.com/dd0wney/cluso-sif/pkg/sif"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("sifminer: %v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sifminer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML settings file")
	input := fs.String("input", "", "Model document (YAML or JSON, .sz for snappy)")
	output := fs.String("output", "", "Output file (default stdout)")
	format := fs.String("format", config.FormatSIF, "Output format: sif or json")
	types := fs.String("types", "", "Comma separated relation type tags (default all)")
	extract := fs.String("extract", "", "Relation type or variant to extract")
	mediators := fs.Bool("mediators", false, "Add a mediator column to SIF output")
	skipNormalize := fs.Bool("skip-normalize", false, "Keep display names as loaded")
	workers := fs.Int("workers", 0, "Relation types mined in parallel (default GOMAXPROCS)")
	timeout := fs.Duration("timeout", config.DefaultTimeout, "Mining deadline")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides LOG_LEVEL and the file)")
	metricsFile := fs.String("metrics-file", "", "Write Prometheus metrics to this file")
	list := fs.Bool("list", false, "Print the relation types and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		return printCatalog(stdout, sif.DefaultRegistry())
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		cfg.LogLevel = env
	}

	// flags given on the command line win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output = *output
		case "format":
			cfg.Format = *format
		case "types":
			cfg.Types = splitTags(*types)
		case "extract":
			cfg.Extract = *extract
		case "mediators":
			cfg.Mediators = *mediators
		case "skip-normalize":
			cfg.SkipNormalize = *skipNormalize
		case "workers":
			cfg.Workers = *workers
		case "timeout":
			cfg.Timeout = *timeout
		case "log-level":
			cfg.LogLevel = *logLevel
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(cfg.LogLevel)).
		With(logging.RunID(uuid.NewString()))
	reg := metrics.NewRegistry()

	err := mine(ctx, cfg, logger, reg, stdout)
	if cfg.MetricsFile != "" {
		if werr := reg.WriteTextfile(cfg.MetricsFile); werr != nil {
			logger.Error("metrics not written", logging.Path(cfg.MetricsFile), logging.Error(werr))
		}
	}
	return err
}

func mine(ctx context.Context, cfg config.Config, logger logging.Logger, reg *metrics.Registry, stdout io.Writer) error {
	timer := logging.StartTimer(logger, "model loaded", logging.Path(cfg.Input))
	g, err := model.LoadFile(cfg.Input)
	if err != nil {
		timer.EndError(err)
		return err
	}
	timer.End(logging.Nodes(g.Len()))
	reg.RecordModel(g.Len())

	if err := g.Validate(); err != nil {
		logger.Warn("model has dangling references", logging.Error(err))
	}

	if !cfg.SkipNormalize {
		st := naming.Normalize(g)
		reg.RecordNames("assign", st.Assigned)
		reg.RecordNames("backfill", st.Backfilled)
		logger.Info("display names normalized",
			logging.Int("assigned", st.Assigned),
			logging.Int("backfilled", st.Backfilled),
		)
	}

	engine := sif.NewEngine(sif.EngineConfig{
		Logger:  logger,
		Metrics: reg,
		Workers: cfg.Workers,
	})

	if cfg.Extract != "" {
		if _, _, ok := engine.Registry().Resolve(cfg.Extract); !ok {
			return &sif.UnknownRelationTypeError{Tag: cfg.Extract}
		}
		ex, err := engine.Extract(ctx, g, cfg.Extract)
		if err != nil {
			return err
		}
		if cfg.Format == config.FormatJSON {
			return writeModel(cfg.Output, ex.Model, stdout)
		}
		return writeEdges(cfg.Output, ex.Edges, cfg.Mediators, stdout)
	}

	edges, err := engine.MineAll(ctx, g, cfg.Types)
	if err != nil {
		return err
	}
	return writeEdges(cfg.Output, edges, cfg.Mediators, stdout)
}

func writeEdges(path string, edges []sif.Edge, mediators bool, stdout io.Writer) error {
	if path == "" {
		return sif.WriteSIF(stdout, edges, mediators)
	}
	return sif.WriteSIFFile(path, edges, mediators)
}

func writeModel(path string, g *model.Graph, stdout io.Writer) error {
	if path == "" {
		return sif.WriteJSON(stdout, g)
	}
	return sif.WriteJSONFile(path, g)
}

func printCatalog(w io.Writer, r *sif.Registry) error {
	for _, rt := range r.Catalog() {
		kind := "undirected"
		if rt.Directed {
			kind = "directed"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", rt.Tag, kind, rt.Description); err != nil {
			return err
		}
		for _, v := range rt.Variants {
			if _, err := fmt.Fprintf(w, "\t%s\n", v); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
