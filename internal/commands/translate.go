// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/svxlab/cli/internal/prompts"
	"github.com/svxlab/cli/internal/session"
	"github.com/svxlab/cli/internal/translate"

	// Import translator to auto-register
	_ "github.com/svxlab/cli/internal/translate/pyvsc"
)

type translateOptions struct {
	format string
	output string
	report bool
}

func newTranslateCmd() *cobra.Command {
	opts := &translateOptions{}

	cmd := &cobra.Command{
		Use:   "translate <input.sv>",
		Short: "Translate SystemVerilog constraints to a target dialect",
		Long: fmt.Sprintf(`Translate SystemVerilog constraint classes to a target dialect.

Available formats: %s`, strings.Join(translate.Available(), ", ")),
		Example: `  # Translate with defaults (output next to the input)
  svx translate design.sv

  # Explicit output path and format
  svx translate design.sv --output design_model.py --format pyvsc

  # Verbose mode: embedded source, per-constraint metrics, full report
  svx translate design.sv --report`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: session.PreRunLoadOptional,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: input name with the dialect extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(translate.Available(), ", ")))
	cmd.Flags().BoolVarP(&opts.report, "report", "r", false, "Embed source in output and print the fidelity report")

	return cmd
}

func runTranslate(cmd *cobra.Command, input string, opts *translateOptions) error {
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file not found: %s", input)
	}

	// Project config supplies defaults; translation works without one.
	if opts.format == "" {
		if svxCtx := session.FromCommand(cmd); svxCtx != nil {
			opts.format = svxCtx.Config.Format
		}
	}
	if opts.format == "" && len(translate.Available()) == 1 {
		opts.format = translate.Available()[0]
	}
	if err := prompts.RunTranslateForm(&opts.format, translate.Available()); err != nil {
		return err
	}

	translator, err := translate.Get(opts.format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			opts.format, strings.Join(translate.Available(), ", "))
	}

	if opts.output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		opts.output = base + translator.FileExtension()
	}

	result, err := translate.TranslateFile(input, opts.output, opts.format, translate.Options{Verbose: opts.report})
	if err != nil {
		return err
	}

	if opts.report {
		translate.PrintReport(os.Stdout, result)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Input", Value: input},
		{Label: "Output", Value: opts.output},
		{Label: "Classes", Value: strconv.Itoa(result.Stats.Classes)},
		{Label: "Constraints", Value: strconv.Itoa(result.Stats.Constraints)},
		{Label: "Warnings", Value: strconv.Itoa(len(result.Warnings))},
	}, "Translation completed")

	if !opts.report && (len(result.Warnings) > 0 || len(result.ManualReview) > 0) {
		fmt.Printf("\nRun with --report for %d warning(s) and %d review item(s)\n",
			len(result.Warnings), len(result.ManualReview))
	}

	return nil
}
