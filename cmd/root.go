// Package cmd implements trackast's CLI surface: a single cobra root
// command that drives loader → callgraph.Build → encode, grounded on the
// teacher's cmd/root.go (PersistentPreRun analytics init) and
// cmd/scan.go (staged log.Printf progress through a multi-phase pipeline).
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/shivasurya/trackast/analytics"
	"github.com/shivasurya/trackast/callgraph"
	"github.com/shivasurya/trackast/encode"
	"github.com/shivasurya/trackast/frontend"
	"github.com/shivasurya/trackast/frontend/javascript"
	"github.com/shivasurya/trackast/frontend/python"
	"github.com/shivasurya/trackast/frontend/rust"
	"github.com/shivasurya/trackast/loader"
	"github.com/shivasurya/trackast/output"
	"github.com/shivasurya/trackast/past"
)

var rootCmd = &cobra.Command{
	Use:   "trackast",
	Short: "Trackast builds a call dependency graph from multi-language source",
	Long: `Trackast analyzes source code across multiple programming languages
and produces a directed call dependency graph: vertices are function
definitions, edges are "calls" relationships.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics") //nolint:all
		analytics.LoadEnvFile()
		analytics.Init(disableMetrics)
	},
	RunE: runBuild,
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "Disable metrics collection")

	rootCmd.Flags().String("input", "", "Entry source file (required)")
	rootCmd.Flags().String("root", "", "Module-resolution root (default: directory of --input)")
	rootCmd.Flags().String("language", "", "Force language (rust, python, javascript); default auto-detect")
	rootCmd.Flags().Bool("no-discover", false, "Disable import-following discovery")
	rootCmd.Flags().StringSlice("entry", nil, "Entry-point FunctionIds to restrict output to (repeatable)")
	rootCmd.Flags().String("format", "json", "Output format: json | dot")
	rootCmd.Flags().String("output", "-", "Output file, - for stdout")
	rootCmd.Flags().Int("cache-size", loader.DefaultCacheSize, "Loader per-file cache capacity")
	rootCmd.Flags().Bool("verbose", false, "Show progress and statistics")
	rootCmd.Flags().Bool("debug", false, "Show debug diagnostics (implies --verbose)")

	_ = rootCmd.MarkFlagRequired("input")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func runBuild(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	input, _ := cmd.Flags().GetString("input")
	root, _ := cmd.Flags().GetString("root")
	lang, _ := cmd.Flags().GetString("language")
	noDiscover, _ := cmd.Flags().GetBool("no-discover")
	entries, _ := cmd.Flags().GetStringSlice("entry")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	cacheSize, _ := cmd.Flags().GetInt("cache-size")
	verbose, _ := cmd.Flags().GetBool("verbose")
	debug, _ := cmd.Flags().GetBool("debug")

	opts := output.NewDefaultOptions()
	if verbose {
		opts.Verbosity = output.VerbosityVerbose
	}
	if debug {
		opts.Verbosity = output.VerbosityDebug
	}
	switch output.OutputFormat(strings.ToLower(format)) {
	case output.FormatDOT:
		opts.Format = output.FormatDOT
	case output.FormatJSON, "":
		opts.Format = output.FormatJSON
	default:
		return fmt.Errorf("unsupported --format %q: must be json or dot", format)
	}
	logger := output.NewLogger(opts.Verbosity)

	if root == "" {
		root = filepath.Dir(input)
	}

	fe, resolvedLang, err := resolveFrontend(input, lang)
	if err != nil {
		analytics.ReportEvent(analytics.ErrorBuildingGraph)
		return err
	}
	logger.Debug("using %s frontend for %s", resolvedLang, input)
	if opts.ShouldShowDebug() {
		logger.Debug("loader config: root=%s discover=%v cache-size=%d", root, !noDiscover, cacheSize)
	}

	ld := loader.New(fe, root, !noDiscover, loader.WithLogger(logger), loader.WithCacheSize(cacheSize))
	doneLoad := logger.StartTiming("load")
	asts, err := ld.Load(input)
	doneLoad()
	if err != nil {
		analytics.ReportEvent(analytics.ErrorBuildingGraph)
		return fmt.Errorf("loading %s: %w", input, err)
	}
	logger.Progress("Loaded %d file(s)", len(asts))

	defs := past.Merge(asts)
	doneBuild := logger.StartTiming("build")
	g, err := callgraph.Build(defs)
	doneBuild()
	if err != nil {
		analytics.ReportEvent(analytics.ErrorBuildingGraph)
		return fmt.Errorf("building call graph: %w", err)
	}

	stats := g.Stats()
	logger.Statistic("Call graph built: %d nodes, %d edges, %d external, %d cycles",
		stats.Nodes, stats.Edges, stats.ExternalNodes, stats.Cycles)

	if len(entries) > 0 {
		g, err = restrictToEntries(g, entries)
		if err != nil {
			analytics.ReportEvent(analytics.ErrorBuildingGraph)
			return err
		}
	}

	doneEncode := logger.StartTiming("encode")
	var payload []byte
	switch opts.Format {
	case output.FormatDOT:
		payload = encode.EncodeDOT(g)
	case output.FormatJSON:
		payload, err = encode.EncodeJSON(g)
		if err != nil {
			doneEncode()
			return fmt.Errorf("encoding JSON: %w", err)
		}
	}
	doneEncode()

	if err := writeOutput(outputPath, payload); err != nil {
		return err
	}

	if opts.ShouldShowStatistics() {
		logger.PrintTimingSummary()
	}
	if logger.IsVerbose() && isatty.IsTerminal(os.Stdout.Fd()) {
		printStatsTable(stats)
	}

	analytics.ReportEvent(analytics.BuildCommand)
	logger.Debug("done in %s", time.Since(start))
	return nil
}

// resolveFrontend picks the frontend by explicit --language, falling back
// to extension-based detection.
func resolveFrontend(input, lang string) (frontend.Frontend, string, error) {
	registry := frontend.NewRegistry()
	registry.Register(rust.New())
	registry.Register(python.New())
	registry.Register(javascript.New())

	if lang != "" {
		fe, ok := registry.ByLanguage(lang)
		if !ok {
			return nil, "", fmt.Errorf("unknown --language %q", lang)
		}
		return fe, lang, nil
	}

	detected, err := loader.DetectLanguage(input)
	if err != nil {
		return nil, "", err
	}
	fe, ok := registry.ByLanguage(detected)
	if !ok {
		return nil, "", fmt.Errorf("no frontend registered for detected language %q", detected)
	}
	return fe, detected, nil
}

// restrictToEntries rebuilds a graph containing only nodes reachable from
// the given entry FunctionIds, preserving edges between kept nodes.
func restrictToEntries(g *callgraph.Graph, entries []string) (*callgraph.Graph, error) {
	keep := make(map[past.ID]bool)
	for _, e := range entries {
		reached, err := g.ReachableFrom(past.ID(e))
		if err != nil {
			return nil, err
		}
		for _, id := range reached {
			keep[id] = true
		}
	}

	restricted := callgraph.NewGraph()
	for id, n := range g.Nodes {
		if keep[id] {
			restricted.AddNode(n)
		}
	}
	for _, e := range g.Edges {
		if keep[e.From] && keep[e.To] {
			restricted.AddEdge(e)
		}
	}
	return restricted, nil
}

func writeOutput(path string, payload []byte) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(append(payload, '\n'))
	return err
}

func printStatsTable(stats callgraph.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.AppendHeader(table.Row{"Nodes", "Edges", "External", "Cycles"})
	t.AppendRow(table.Row{stats.Nodes, stats.Edges, stats.ExternalNodes, stats.Cycles})
	t.SetStyle(table.StyleLight)
	t.Render()
}
