// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package translate

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const reportFallbackWidth = 80

// reportWidth returns the terminal width for report rules, capped at the
// fallback so redirected output stays readable.
func reportWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 && w < reportFallbackWidth {
		return w
	}
	return reportFallbackWidth
}

// PrintReport writes the full fidelity report for a translation: conversion
// metrics, statistics, mapping notes, warnings and manual-review items.
func PrintReport(w io.Writer, result *Result) {
	width := reportWidth()
	rule := strings.Repeat("=", width)
	thin := strings.Repeat("-", width)

	m := result.Metrics

	fmt.Fprintf(w, "\n%s\nSV TO %s TRANSLATION REPORT\n%s\n", rule, "PYVSC", rule)

	fmt.Fprintf(w, "\n%s\nCONVERSION METRICS\n%s\n", thin, thin)

	fmt.Fprintf(w, "\n  Lines:\n")
	fmt.Fprintf(w, "     Source SV:     %6d\n", m.Source.Lines)
	fmt.Fprintf(w, "     Output:        %6d\n", m.Output.Lines)

	fmt.Fprintf(w, "\n  Variables:\n")
	fmt.Fprintf(w, "     Detected in source:  %6d\n", len(m.Source.Variables))
	fmt.Fprintf(w, "     Present in output:   %6d\n", len(m.Output.Variables))

	fmt.Fprintf(w, "\n  Conditionals:\n")
	fmt.Fprintf(w, "     Detected (if/else if):       %6d\n", m.Source.Conditionals)
	fmt.Fprintf(w, "     Converted (if_then/else_if): %6d\n", m.Output.IfThen+m.Output.ElseIf)

	fmt.Fprintf(w, "\n  Logical Operators:\n")
	fmt.Fprintf(w, "     && detected: %4d  ->  '&' converted:   %4d\n", m.Source.LogicalAnd, m.Output.LogicalAnd)
	fmt.Fprintf(w, "     || detected: %4d  ->  '|' converted:   %4d\n", m.Source.LogicalOr, m.Output.LogicalOr)
	fmt.Fprintf(w, "     !  detected: %4d  ->  '~' converted:   %4d\n", m.Source.LogicalNot, m.Output.LogicalNot)

	fmt.Fprintf(w, "\n  Constraint Constructs:\n")
	fmt.Fprintf(w, "     %-20s %12s %18s\n", "Construct", "SV Detected", "Generated")
	fmt.Fprintf(w, "     %s %s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 18))
	rows := []struct {
		name     string
		src, out int
	}{
		{"inside", m.Source.Inside, m.Output.Rangelist},
		{"implication (->)", m.Source.Implies, m.Output.Implies},
		{"dist", m.Source.Dist, m.Output.Dist},
		{"solve_order", m.Source.SolveOrder, m.Output.SolveOrder},
		{"foreach", m.Source.Foreach, m.Output.Foreach},
		{"unique", m.Source.Unique, m.Output.Unique},
		{"soft", m.Source.Soft, m.Output.Soft},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "     %-20s %12d %18d\n", r.name, r.src, r.out)
	}

	fmt.Fprintf(w, "\n  Special Conversions:\n")
	fmt.Fprintf(w, "     Bit slices detected:   %6d\n", m.Source.BitSlices)
	fmt.Fprintf(w, "     Number formats (N'h):  %6d\n", m.Source.NumberFormats)

	fmt.Fprintf(w, "\n%s\nTRANSLATION STATISTICS\n%s\n", thin, thin)
	fmt.Fprintf(w, "   * Classes: %d\n", result.Stats.Classes)
	fmt.Fprintf(w, "   * Fields: %d\n", result.Stats.Fields)
	fmt.Fprintf(w, "   * Constraints: %d\n", result.Stats.Constraints)
	fmt.Fprintf(w, "   * Enums: %d\n", result.Stats.Enums)

	printSection(w, thin, "MAPPING NOTES", result.MappingNotes, width)
	printSection(w, thin, "WARNINGS", result.Warnings, width)
	printSection(w, thin, "MANUAL REVIEW REQUIRED", result.ManualReview, width)

	fmt.Fprintf(w, "\n%s\n", rule)
}

func printSection(w io.Writer, thin, title string, items []string, width int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", thin, title, thin)
	for _, item := range items {
		for i, line := range wrap(item, width-5) {
			if i == 0 {
				fmt.Fprintf(w, "   * %s\n", line)
			} else {
				fmt.Fprintf(w, "     %s\n", line)
			}
		}
	}
}

// wrap breaks a message at word boundaries to fit the report width.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
