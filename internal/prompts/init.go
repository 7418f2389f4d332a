// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package prompts

import "github.com/charmbracelet/huh"

// RunInitForm collects the svx.yaml project settings interactively.
func RunInitForm(input, output, format *string, formats []string) error {
	options := make([]huh.Option[string], len(formats))
	for i, f := range formats {
		options[i] = huh.NewOption(f, f)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Input directory").
				Description("Where SystemVerilog sources live").
				Validate(requiredValidator("input directory")).
				Value(input),
			huh.NewInput().
				Title("Output directory").
				Description("Where translated models are written").
				Validate(requiredValidator("output directory")).
				Value(output),
			huh.NewSelect[string]().
				Title("Default format").
				Options(options...).
				Value(format),
		),
	).WithTheme(Theme())

	return form.Run()
}
