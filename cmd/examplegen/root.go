package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	examplegen "github.com/goliatone/go-examplegen"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	DataDir      string
	English      string
	Supplemental string
	Exclusions   string
	Verbose      bool
	Metrics      bool
	Output       string
}

var globals = &globalOptions{}

var rootCmd = &cobra.Command{
	Use:   "examplegen",
	Short: "Render and audit examples for locale data",
	Long: `examplegen renders the example shown next to a locale data value,
sweeps a whole locale for missing or broken examples, and measures which
values each example depends on.

Locale data is read from the bundled files unless --data points to a
directory of locale YAML or JSON files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		switch globals.Output {
		case "text", "json":
			return nil
		default:
			return fmt.Errorf("unknown output format %q (text|json)", globals.Output)
		}
	},
}

// Execute runs the root command, cancelling on SIGINT or SIGTERM.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globals.DataDir, "data", "", "directory of locale files (default: bundled data)")
	flags.StringVar(&globals.English, "english", "en", "locale used for the english render target")
	flags.StringVar(&globals.Supplemental, "supplemental", "", "supplemental data file layered over the bundled data")
	flags.StringVar(&globals.Exclusions, "exclusions", "", "exclusion list replacing the bundled one")
	flags.BoolVarP(&globals.Verbose, "verbose", "v", false, "log debug output to stderr")
	flags.BoolVar(&globals.Metrics, "metrics", false, "record render metrics through OpenTelemetry")
	flags.StringVarP(&globals.Output, "output", "o", "text", "output format (text|json)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(importCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if globals.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadStore() (*examplegen.DataStore, error) {
	if globals.DataDir == "" {
		return examplegen.LoadEmbeddedStore()
	}
	bundle, err := examplegen.LoadDirectory(globals.DataDir)
	if err != nil {
		return nil, err
	}
	return examplegen.NewDataStore(bundle), nil
}

// engineOptions builds the options shared by every command.
func engineOptions(store *examplegen.DataStore, logger *slog.Logger) []examplegen.Option {
	opts := []examplegen.Option{
		examplegen.WithStore(store),
		examplegen.WithEnglishLocale(globals.English),
		examplegen.WithSupplementalFile(globals.Supplemental),
		examplegen.WithLogger(logger),
	}
	if globals.Exclusions != "" {
		opts = append(opts, examplegen.WithExclusionsFile(globals.Exclusions))
	}
	if globals.Metrics {
		opts = append(opts, examplegen.WithMetrics(examplegen.NewMetricsRecorder()))
	}
	return opts
}

// openEngine resolves locale from the store and builds an engine over it.
func openEngine(locale string, extra ...examplegen.Option) (*examplegen.Engine, *examplegen.ResolvedFile, error) {
	store, err := loadStore()
	if err != nil {
		return nil, nil, err
	}
	snap, err := store.Resolve(locale)
	if err != nil {
		return nil, nil, err
	}
	opts := append(engineOptions(store, newLogger()), extra...)
	engine, err := examplegen.New(snap, opts...)
	if err != nil {
		return nil, nil, err
	}
	return engine, snap, nil
}
