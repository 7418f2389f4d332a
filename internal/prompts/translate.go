// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package prompts

import "github.com/charmbracelet/huh"

// RunTranslateForm prompts for the output format when neither flags nor the
// project config supplied one. A format that is already set is kept.
func RunTranslateForm(format *string, formats []string) error {
	if *format != "" {
		return nil
	}

	options := make([]huh.Option[string], len(formats))
	for i, f := range formats {
		options[i] = huh.NewOption(f, f)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Options(options...).
				Value(format),
		),
	).WithTheme(Theme())

	return form.Run()
}
