// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package override

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// PatchVector clamps observed values into their override ranges. Only
// fields that are present in both the vector and the set, and that are
// actually overridden, change. Returns the patched copy and a note per
// clamped field.
func PatchVector(vector map[string]int64, set *Set) (map[string]int64, []string) {
	patched := make(map[string]int64, len(vector))
	for k, v := range vector {
		patched[k] = v
	}

	var notes []string
	for _, spec := range set.Specs() {
		val, present := patched[spec.Name]
		if !present || !spec.IsOverridden() {
			continue
		}
		clamped := val
		if clamped < spec.OverrideMin {
			clamped = spec.OverrideMin
		}
		if clamped > spec.OverrideMax {
			clamped = spec.OverrideMax
		}
		if clamped != val {
			patched[spec.Name] = clamped
			notes = append(notes, fmt.Sprintf("%s: %d -> %d (range [%d, %d])",
				spec.Name, val, clamped, spec.OverrideMin, spec.OverrideMax))
		}
	}

	return patched, notes
}

var rangeConstraintLine = regexp.MustCompile(
	`^(\s*)\(\s*(\w+)\s*>=\s*(-?\d+)\s*&&\s*(\w+)\s*<=\s*(-?\d+)\s*\)\s*;\s*(.*)$`)

// ApplyToSVFile rewrites range-constraint lines of the shape
// "(name >= lo && name <= hi);" with the override bounds for names present
// in the set. When backup is true and anything changed, the original text
// is kept next to the file as <path>.bak before the rewrite.
func ApplyToSVFile(path string, set *Set, backup bool) (matched, updated int, err error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return 0, 0, fmt.Errorf("SystemVerilog source not found: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		m := rangeConstraintLine.FindStringSubmatch(line)
		if m == nil || m[2] != m[4] {
			out = append(out, line)
			continue
		}

		matched++
		spec, known := set.Get(m[2])
		if !known {
			out = append(out, line)
			continue
		}

		rewritten := fmt.Sprintf("%s(%s >= %d && %s <= %d);",
			m[1], m[2], spec.OverrideMin, m[2], spec.OverrideMax)
		if trail := strings.TrimSpace(m[6]); trail != "" {
			rewritten += " " + trail
		}
		out = append(out, rewritten)

		oldLo, _ := strconv.ParseInt(m[3], 10, 64)
		oldHi, _ := strconv.ParseInt(m[5], 10, 64)
		if oldLo != spec.OverrideMin || oldHi != spec.OverrideMax {
			updated++
		}
	}

	if updated > 0 {
		if backup {
			if err := os.WriteFile(path+".bak", data, 0o600); err != nil {
				return matched, 0, fmt.Errorf("failed to write backup: %w", err)
			}
		}
		if err := os.WriteFile(path, []byte(strings.Join(out, "\n")), 0o600); err != nil {
			return matched, 0, fmt.Errorf("failed to write source: %w", err)
		}
	}

	return matched, updated, nil
}

// Summary writes a formatted override table. When showAll is false only
// overridden entries are listed.
func Summary(w io.Writer, set *Set, showAll bool) {
	rule := strings.Repeat("=", 90)

	fmt.Fprintf(w, "\n%s\nPARAMETER RANGE OVERRIDES\n%s\n", rule, rule)
	fmt.Fprintf(w, "  %-25s %10s %10s %10s %10s %8s\n",
		"Name", "OrigMin", "OrigMax", "OvrMin", "OvrMax", "Changed")
	fmt.Fprintf(w, "  %s %s %s %s %s %s\n",
		strings.Repeat("-", 25), strings.Repeat("-", 10), strings.Repeat("-", 10),
		strings.Repeat("-", 10), strings.Repeat("-", 10), strings.Repeat("-", 8))

	for _, spec := range set.Specs() {
		if !showAll && !spec.IsOverridden() {
			continue
		}
		changed := "no"
		if spec.IsOverridden() {
			changed = "YES"
		}
		fmt.Fprintf(w, "  %-25s %10d %10d %10d %10d %8s\n",
			spec.Name, spec.OrigMin, spec.OrigMax, spec.OverrideMin, spec.OverrideMax, changed)
	}

	fmt.Fprintf(w, "\n  Active overrides: %d/%d\n%s\n", set.ActiveCount(), set.Len(), rule)
}
