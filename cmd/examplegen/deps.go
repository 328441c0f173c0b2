package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	examplegen "github.com/goliatone/go-examplegen"
)

var depsOpts struct {
	Limit      int
	DB         string
	Dependents string
	Depends    string
	Show       string
}

var depsCmd = &cobra.Command{
	Use:   "deps <locale>",
	Short: "Find which examples depend on which values",
	Long: `Mutate one value at a time and record every other example whose
rendering changes. This is slow: each mutated value re-renders the whole
locale. The results are hints, not ground truth.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	flags := depsCmd.Flags()
	flags.IntVar(&depsOpts.Limit, "limit", examplegen.DefaultDependencyLimit, "maximum number of values to mutate (0 = all)")
	flags.StringVar(&depsOpts.DB, "db", "", "SQLite file to store the run in")
	flags.StringVar(&depsOpts.Dependents, "dependents-out", "", "write per-path dependent counts as JSON")
	flags.StringVar(&depsOpts.Depends, "dependencies-out", "", "write per-path dependency counts as JSON")
	flags.StringVar(&depsOpts.Show, "show", "", "print a stored run by id instead of analysing (needs --db)")
}

func runDeps(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if depsOpts.Show != "" {
		return showRun(cmd, depsOpts.Show)
	}

	store, err := loadStore()
	if err != nil {
		return err
	}
	snap, err := store.Resolve(args[0])
	if err != nil {
		return err
	}
	logger := newLogger()
	analyzer := examplegen.NewDependencyAnalyzer(snap,
		examplegen.WithDependencyLimit(depsOpts.Limit),
		examplegen.WithDependencyLogger(logger),
		examplegen.WithEngineOptions(engineOptions(store, logger)...),
	)
	graph, err := analyzer.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := writeCountsFile(depsOpts.Dependents, graph.DependentCounts()); err != nil {
		return err
	}
	if err := writeCountsFile(depsOpts.Depends, graph.DependencyCounts()); err != nil {
		return err
	}

	if depsOpts.DB != "" {
		reports, err := examplegen.NewSQLiteReportStore(depsOpts.DB)
		if err != nil {
			return err
		}
		defer reports.Close()
		if err := reports.Save(graph); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "run %s: %s, %d values mutated, %d skipped, %d edges\n",
		graph.RunID, graph.Locale, graph.Candidates, graph.Skipped, graph.Edges())
	return nil
}

func showRun(cmd *cobra.Command, runID string) error {
	if depsOpts.DB == "" {
		return fmt.Errorf("--show needs --db")
	}
	reports, err := examplegen.NewSQLiteReportStore(depsOpts.DB)
	if err != nil {
		return err
	}
	defer reports.Close()

	graph, err := reports.Load(runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if globals.Output == "json" {
		return examplegen.WriteCounts(out, graph.DependentCounts())
	}
	for _, source := range graph.Sources() {
		fmt.Fprintln(out, source)
		for _, target := range graph.Dependents(source) {
			fmt.Fprintf(out, "\t%s\n", target)
		}
	}
	return nil
}

func writeCountsFile(path string, counts map[string]int) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := examplegen.WriteCounts(f, counts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
