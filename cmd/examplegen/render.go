package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	examplegen "github.com/goliatone/go-examplegen"
)

var renderOpts struct {
	Target    string
	Normalize bool
	Help      bool
}

var renderCmd = &cobra.Command{
	Use:   "render <locale> <path> [value]",
	Short: "Render the example for one path",
	Long: `Render the example for one path of a locale. The value stored in the
locale data is used unless a value is given on the command line, which
lets you preview an edit before making it.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderOpts.Target, "target", "native", "render target (native|english)")
	renderCmd.Flags().BoolVar(&renderOpts.Normalize, "normalize", false, "print the plain text form instead of HTML")
	renderCmd.Flags().BoolVar(&renderOpts.Help, "help-text", false, "also print the help text for the path")
}

type renderResult struct {
	Path     string `json:"path"`
	Value    string `json:"value"`
	Category string `json:"category"`
	Example  string `json:"example,omitempty"`
	Help     string `json:"help,omitempty"`
	Found    bool   `json:"found"`
}

func runRender(cmd *cobra.Command, args []string) error {
	target, err := examplegen.ParseRenderTarget(renderOpts.Target)
	if err != nil {
		return err
	}
	engine, snap, err := openEngine(args[0])
	if err != nil {
		return err
	}

	path := args[1]
	value, ok := snap.Value(path)
	if len(args) == 3 {
		value = args[2]
	} else if !ok {
		return fmt.Errorf("%s has no value for %s", args[0], path)
	}

	result := renderResult{
		Path:     path,
		Value:    value,
		Category: string(engine.Classify(path)),
	}
	result.Example, result.Found = engine.RenderExample(path, value, target)
	if result.Found && renderOpts.Normalize {
		result.Example = examplegen.Normalize(result.Example, true)
	}
	if renderOpts.Help {
		result.Help, _ = engine.RenderHelp(path, value)
	}

	out := cmd.OutOrStdout()
	if globals.Output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if !result.Found {
		fmt.Fprintf(out, "no example for %s (%s)\n", path, displayCategory(result.Category))
		return nil
	}
	fmt.Fprintln(out, result.Example)
	if result.Help != "" {
		fmt.Fprintln(out, result.Help)
	}
	return nil
}

func displayCategory(category string) string {
	if category == "" {
		return "unclassified"
	}
	return category
}
