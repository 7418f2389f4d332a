// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package commands

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/svxlab/cli/internal/prompts"
	"github.com/svxlab/cli/internal/xmlconv"
)

type convertOptions struct {
	output string
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <input.xml>",
		Short: "Convert a register XML export to a SystemVerilog class",
		Long: `Convert a vendor XML register/parameter export into a SystemVerilog
constraint class that svx translate can consume.`,
		Example: `  # Convert with a derived output name
  svx convert registers.xml

  # Explicit output path
  svx convert registers.xml --output design.sv`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConvert(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: input name with .sv)")

	return cmd
}

func runConvert(input string, opts *convertOptions) error {
	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".sv"
	}

	count, err := xmlconv.ConvertFile(input, output)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Input", Value: input},
		{Label: "Output", Value: output},
		{Label: "Registers", Value: strconv.Itoa(count)},
	}, "Conversion completed")

	return nil
}
