package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	examplegen "github.com/goliatone/go-examplegen"
)

var sweepOpts struct {
	Target string
	Fail   bool
}

var sweepCmd = &cobra.Command{
	Use:   "sweep <locale>",
	Short: "Render every path of a locale and report defects",
	Long: `Render every path of a locale and list the paths whose example is
missing, shows "null", lacks sample data, or is shown without its
enclosing pattern. Paths on the exclusion lists are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepOpts.Target, "target", "native", "render target (native|english)")
	sweepCmd.Flags().BoolVar(&sweepOpts.Fail, "fail", false, "exit non-zero when defects are found")
}

func runSweep(cmd *cobra.Command, args []string) error {
	target, err := examplegen.ParseRenderTarget(sweepOpts.Target)
	if err != nil {
		return err
	}
	engine, _, err := openEngine(args[0])
	if err != nil {
		return err
	}
	report, err := engine.Sweep(cmd.Context(), target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if globals.Output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		for _, problem := range report.Problems {
			fmt.Fprintln(out, problem.String())
		}
		fmt.Fprintf(out, "%s: checked %d, skipped %d, rendered %d, problems %d\n",
			report.Locale, report.Checked, report.Skipped, report.Rendered, len(report.Problems))
	}

	if sweepOpts.Fail && report.HasDefects() {
		return fmt.Errorf("%d defects in %s", len(report.Problems), report.Locale)
	}
	return nil
}
