// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package prompts

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/svxlab/cli/internal/override"
)

// RunOverrideEditForm walks every entry of the set and lets the user type
// new override bounds. Empty input keeps the current value. Returns how
// many entries were changed.
func RunOverrideEditForm(set *override.Set) (int, error) {
	changed := 0

	for _, spec := range set.Specs() {
		var minIn, maxIn string

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("%s  OverrideMin [%d]", spec.Name, spec.OverrideMin)).
					Description(fmt.Sprintf("Original range [%d, %d]; leave empty to keep", spec.OrigMin, spec.OrigMax)).
					Validate(optionalIntValidator).
					Value(&minIn),
				huh.NewInput().
					Title(fmt.Sprintf("%s  OverrideMax [%d]", spec.Name, spec.OverrideMax)).
					Validate(optionalIntValidator).
					Value(&maxIn),
			),
		).WithTheme(Theme())

		if err := form.Run(); err != nil {
			return changed, err
		}

		if minIn != "" {
			if v, err := strconv.ParseInt(minIn, 10, 64); err == nil && v != spec.OverrideMin {
				spec.OverrideMin = v
				changed++
			}
		}
		if maxIn != "" {
			if v, err := strconv.ParseInt(maxIn, 10, 64); err == nil && v != spec.OverrideMax {
				spec.OverrideMax = v
				changed++
			}
		}
	}

	return changed, nil
}
