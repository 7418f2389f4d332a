// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

// Package sv parses the restricted SystemVerilog subset used by
// constraint-randomization classes: enums, field declarations and
// constraint blocks.
package sv

import "regexp"

// FieldKind classifies how a field participates in randomization.
type FieldKind int

const (
	// NonRand fields are plain state, never randomized.
	NonRand FieldKind = iota
	// Rand fields are normal random variables.
	Rand
	// Randc fields are cyclic-random variables.
	Randc
)

func (k FieldKind) String() string {
	switch k {
	case Rand:
		return "rand"
	case Randc:
		return "randc"
	default:
		return ""
	}
}

// Field is a single declared class member. Comma-separated declarations
// produce one Field per name.
type Field struct {
	Name      string
	Width     int
	Kind      FieldKind
	DataType  string // bit, logic, byte, shortint, int, longint, or enum type
	Signed    bool
	IsArray   bool
	ArraySize int // 0 for dynamic arrays
	IsDynamic bool
	IsEnum    bool
	EnumType  string
	Original  string // declaration text, kept for diagnostics
}

// EnumMember is one enum value; Explicit marks a declared "= N" value.
type EnumMember struct {
	Name     string
	Value    int64
	Explicit bool
}

// Enum is a file-scoped typedef enum. Member values auto-increment from the
// previous explicit or implicit value, starting at 0.
type Enum struct {
	Name     string
	Members  []EnumMember
	Width    int
	Original string
}

// ConstructKind tags a constraint construct detected in a block body.
type ConstructKind int

const (
	ConstructSolveOrder ConstructKind = iota
	ConstructSoft
	ConstructUnique
	ConstructForeach
	ConstructDistribution
	ConstructInside
	ConstructImplication
	ConstructConditional
	ConstructEquality
	ConstructInequality
	ConstructRelational
)

func (k ConstructKind) String() string {
	switch k {
	case ConstructSolveOrder:
		return "solve_order"
	case ConstructSoft:
		return "soft"
	case ConstructUnique:
		return "unique"
	case ConstructForeach:
		return "foreach"
	case ConstructDistribution:
		return "dist"
	case ConstructInside:
		return "inside"
	case ConstructImplication:
		return "implication"
	case ConstructConditional:
		return "conditional"
	case ConstructEquality:
		return "equality"
	case ConstructInequality:
		return "inequality"
	case ConstructRelational:
		return "relational"
	default:
		return "unknown"
	}
}

// Construct pairs a detected kind with the first substring that matched.
type Construct struct {
	Kind  ConstructKind
	Match string
}

// constructPatterns is the fixed ordered construct-detection list. Detection
// records presence, not counts; it feeds diagnostics only.
var constructPatterns = []struct {
	kind    ConstructKind
	pattern *regexp.Regexp
}{
	{ConstructSolveOrder, regexp.MustCompile(`solve\s+\w+\s+before\s+\w+`)},
	{ConstructSoft, regexp.MustCompile(`soft\s+`)},
	{ConstructUnique, regexp.MustCompile(`unique\s*\{`)},
	{ConstructForeach, regexp.MustCompile(`foreach\s*\(`)},
	{ConstructDistribution, regexp.MustCompile(`\bdist\s*\{`)},
	{ConstructInside, regexp.MustCompile(`\binside\s*\{`)},
	{ConstructImplication, regexp.MustCompile(`->`)},
	{ConstructConditional, regexp.MustCompile(`\bif\s*\(`)},
	{ConstructEquality, regexp.MustCompile(`[^!<>=]==[^=]`)},
	{ConstructInequality, regexp.MustCompile(`!=`)},
	{ConstructRelational, regexp.MustCompile(`[<>]=?`)},
}

// Constraint is one named constraint block, pre-annotated with detected
// constructs and structural warnings.
type Constraint struct {
	Name       string
	Body       string
	Original   string
	Constructs []Construct
	Warnings   []string
}

// Class is one class ... endclass region. Enums are shared by reference
// across all classes in the file.
type Class struct {
	Name          string
	Parent        string
	Fields        []Field
	Constraints   []Constraint
	Enums         []*Enum
	Original      string
	PreRandomize  string
	PostRandomize string
}
