// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package translate

// Options controls how a translator renders its output.
type Options struct {
	// Verbose embeds the original source as comments/docstrings under every
	// translated field and constraint, plus per-constraint fidelity metrics.
	Verbose bool
}

// Stats tallies what a translation produced.
type Stats struct {
	Classes     int
	Fields      int
	Constraints int
	Enums       int
}

// SourceMetrics counts constructs detected in the SystemVerilog input.
type SourceMetrics struct {
	Lines        int
	Variables    map[string]struct{}
	Conditionals int

	LogicalAnd int
	LogicalOr  int
	LogicalNot int

	Inside     int
	Implies    int
	Dist       int
	SolveOrder int
	Foreach    int
	Unique     int
	Soft       int

	BitSlices     int
	NumberFormats int
}

// OutputMetrics counts constructs emitted into the generated code.
type OutputMetrics struct {
	Lines     int
	Variables map[string]struct{}

	IfThen   int
	ElseIf   int
	ElseThen int

	Rangelist  int
	Implies    int
	Dist       int
	SolveOrder int
	Foreach    int
	Unique     int
	Soft       int

	LogicalAnd int
	LogicalOr  int
	LogicalNot int
}

// Metrics is the fidelity-audit comparison data for a whole translation.
type Metrics struct {
	Source SourceMetrics
	Output OutputMetrics
}

// Result is the structured outcome of one translation: the generated text
// plus everything a reviewer needs to judge its fidelity.
type Result struct {
	Code         string
	Warnings     []string
	ManualReview []string
	MappingNotes []string
	Stats        Stats
	Metrics      Metrics
}
