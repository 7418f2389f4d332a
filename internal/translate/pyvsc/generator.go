// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package pyvsc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/svxlab/cli/internal/sv"
	"github.com/svxlab/cli/internal/translate"
)

const indent = "    "

// pythonKeywords never receive the self. field-access prefix: Python
// keywords, PyVSC entry points, and the SV block/constraint keywords that
// survive into intermediate rewrite stages.
var pythonKeywords = map[string]struct{}{
	"if": {}, "else": {}, "for": {}, "while": {}, "in": {}, "not": {},
	"and": {}, "or": {}, "True": {}, "False": {}, "None": {}, "pass": {},
	"break": {}, "continue": {}, "return": {},
	"inside": {}, "dist": {}, "solve": {}, "before": {}, "soft": {},
	"unique": {}, "foreach": {}, "vsc": {}, "self": {}, "with": {}, "as": {},
	"begin": {}, "end": {},
}

// generator holds the mutable state of one translation. A fresh generator
// is built per Translate call so nothing leaks between documents.
type generator struct {
	verbose bool

	warnings   []string
	warningSet map[string]struct{}
	review     []string
	reviewSet  map[string]struct{}
	notes      []string

	stats   translate.Stats
	metrics translate.Metrics

	enumValueMap   map[string]string   // member name -> python enum class
	enumClassNames map[string]struct{} // python enum class names
	loopVars       map[string]struct{} // foreach index names, excluded from self. scoping

	normalize Normalizer
}

func newGenerator(opts translate.Options) *generator {
	return &generator{
		verbose:        opts.Verbose,
		warningSet:     make(map[string]struct{}),
		reviewSet:      make(map[string]struct{}),
		enumValueMap:   make(map[string]string),
		enumClassNames: make(map[string]struct{}),
		loopVars:       make(map[string]struct{}),
		metrics: translate.Metrics{
			Source: translate.SourceMetrics{Variables: make(map[string]struct{})},
			Output: translate.OutputMetrics{Variables: make(map[string]struct{})},
		},
		normalize: DefaultNormalizer,
	}
}

func (g *generator) addWarning(w string) {
	if _, dup := g.warningSet[w]; dup {
		return
	}
	g.warningSet[w] = struct{}{}
	g.warnings = append(g.warnings, w)
}

func (g *generator) addReviewItem(item string) {
	if _, dup := g.reviewSet[item]; dup {
		return
	}
	g.reviewSet[item] = struct{}{}
	g.review = append(g.review, item)
}

func (g *generator) generate(classes []*sv.Class) *translate.Result {
	g.analyzeSource(classes)
	g.buildEnumMaps(classes)

	parts := []string{
		header(),
		imports(),
	}

	// Enums are file-scoped; emit each once.
	seenEnums := make(map[string]struct{})
	for _, class := range classes {
		for _, enum := range class.Enums {
			if _, seen := seenEnums[enum.Name]; seen {
				continue
			}
			seenEnums[enum.Name] = struct{}{}
			parts = append(parts, g.emitEnum(enum))
			g.stats.Enums++
		}
	}

	// Parents not defined anywhere in the input get stub base classes.
	defined := make(map[string]struct{}, len(classes))
	for _, class := range classes {
		defined[class.Name] = struct{}{}
	}
	parents := make(map[string]struct{})
	for _, class := range classes {
		if class.Parent != "" {
			if _, ok := defined[class.Parent]; !ok {
				parents[class.Parent] = struct{}{}
			}
		}
	}
	if len(parents) > 0 {
		parts = append(parts, g.emitStubBases(parents))
	}

	for _, class := range classes {
		code := g.emitClass(class)
		for _, issue := range g.validateGeneratedCode(class, code) {
			g.addWarning(issue)
		}
		parts = append(parts, code)
		g.stats.Classes++
	}

	parts = append(parts, g.usageExample(classes))

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	code := strings.Join(nonEmpty, "\n\n")

	g.analyzeOutput(code)
	for _, issue := range checkSyntaxLeaks(code) {
		g.addWarning(issue)
	}

	log.WithFields(log.Fields{
		"classes":     g.stats.Classes,
		"constraints": g.stats.Constraints,
		"warnings":    len(g.warnings),
	}).Debug("generation complete")

	return &translate.Result{
		Code:         code,
		Warnings:     g.warnings,
		ManualReview: g.review,
		MappingNotes: g.notes,
		Stats:        g.stats,
		Metrics:      g.metrics,
	}
}

// buildEnumMaps populates the member->class map used by enum qualification.
// A member appearing in more than one enum keeps its first owner and is
// reported, since qualification would otherwise be ambiguous.
func (g *generator) buildEnumMaps(classes []*sv.Class) {
	for _, class := range classes {
		for _, enum := range class.Enums {
			className := pythonClassName(enum.Name)
			g.enumClassNames[className] = struct{}{}
			for _, member := range enum.Members {
				if owner, dup := g.enumValueMap[member.Name]; dup && owner != className {
					g.addWarning(fmt.Sprintf(
						"enum value '%s' appears in multiple enums; using '%s'", member.Name, owner))
					continue
				}
				g.enumValueMap[member.Name] = className
			}
		}
	}
}

func header() string {
	return `#!/usr/bin/env python3
"""
Auto-generated pyvsc translation from SystemVerilog

IMPORTANT: This is a SUGGESTED translation that requires manual review.
Please verify:
1. All constraint semantics are preserved
2. Data type mappings are correct
3. Distribution weights match original intent
4. Solve order effects are equivalent
"""`
}

func imports() string {
	return `import vsc
from enum import IntEnum
import random
from typing import Optional`
}

func (g *generator) emitEnum(enum *sv.Enum) string {
	className := pythonClassName(enum.Name)
	lines := []string{
		fmt.Sprintf("class %s(IntEnum):", className),
		fmt.Sprintf(`%s"""Translated from SV enum: %s"""`, indent, enum.Name),
	}

	current := int64(0)
	for _, member := range enum.Members {
		if member.Explicit {
			current = member.Value
		}
		lines = append(lines, fmt.Sprintf("%s%s = %d", indent, member.Name, current))
		current++
	}

	g.notes = append(g.notes, fmt.Sprintf("Enum '%s' -> IntEnum '%s'", enum.Name, className))
	return strings.Join(lines, "\n")
}

func (g *generator) emitStubBases(parents map[string]struct{}) string {
	lines := []string{
		"# =============================================================================",
		"# BASE CLASS STUBS (from UVM or other libraries)",
		"# Replace these with actual implementations or imports as needed",
		"# =============================================================================",
		"",
	}

	names := make([]string, 0, len(parents))
	for parent := range parents {
		names = append(names, parent)
	}
	sort.Strings(names)

	for _, parent := range names {
		pyName := pythonClassName(parent)
		lines = append(lines,
			"@vsc.randobj",
			fmt.Sprintf("class %s:", pyName),
			indent+`"""`,
			fmt.Sprintf("%sStub for %s base class.", indent, parent),
			indent+"Replace with actual implementation or import from your UVM library.",
			indent+`"""`,
			indent+"def __init__(self):",
			indent+indent+"pass  # TODO: Add base class fields if needed",
			"",
		)
		g.addReviewItem(fmt.Sprintf("Base class '%s' stub generated - replace with actual implementation", parent))
		g.notes = append(g.notes, fmt.Sprintf("Generated stub for base class '%s' -> '%s'", parent, pyName))
	}

	return strings.Join(lines, "\n")
}

func (g *generator) emitClass(class *sv.Class) string {
	className := pythonClassName(class.Name)
	parent := ""
	if class.Parent != "" {
		parent = "(" + pythonClassName(class.Parent) + ")"
		g.notes = append(g.notes, fmt.Sprintf("Class '%s' extends '%s'", class.Name, class.Parent))
	}

	lines := []string{
		"@vsc.randobj",
		fmt.Sprintf("class %s%s:", className, parent),
		fmt.Sprintf(`%s"""Translated from SV class: %s"""`, indent, class.Name),
		"",
		indent + "def __init__(self):",
	}

	if class.Parent != "" {
		lines = append(lines, indent+indent+"super().__init__()")
	}

	if len(class.Fields) > 0 {
		for _, field := range class.Fields {
			lines = append(lines, indent+indent+g.emitField(field))
			g.stats.Fields++
		}
	} else {
		lines = append(lines, indent+indent+"pass  # No fields found")
	}

	// Whole-block range shorthands are grouped into one parameter_range
	// constraint; everything else keeps its own method.
	var rangeLines []string
	var others []sv.Constraint
	for _, constraint := range class.Constraints {
		if line := extractSimpleRangeConstraint(constraint.Body); line != "" {
			rangeLines = append(rangeLines, line)
		} else {
			others = append(others, constraint)
		}
	}

	if len(rangeLines) > 0 {
		lines = append(lines, "", indent+"@vsc.constraint", indent+"def parameter_range(self):")
		for _, rl := range rangeLines {
			lines = append(lines, indent+indent+rl)
		}
		g.stats.Constraints++
	}

	for _, constraint := range others {
		lines = append(lines, "")
		lines = append(lines, g.emitConstraint(constraint)...)
		g.stats.Constraints++
		for _, warning := range constraint.Warnings {
			g.addWarning(warning)
		}
	}

	if class.PreRandomize != "" {
		lines = append(lines, "")
		lines = append(lines, g.emitHook("pre_randomize", class.PreRandomize)...)
	}
	if class.PostRandomize != "" {
		lines = append(lines, "")
		lines = append(lines, g.emitHook("post_randomize", class.PostRandomize)...)
	}

	return strings.Join(lines, "\n")
}

func (g *generator) emitField(field sv.Field) string {
	comment := ""
	if g.verbose && field.Original != "" {
		comment = "  # " + strings.TrimSpace(field.Original)
	}

	if field.IsEnum {
		enumType := field.EnumType
		if enumType == "" {
			enumType = "UnknownEnum"
		}
		enumClass := pythonClassName(enumType)
		prefix := "vsc.enum_t"
		if field.Kind == sv.Rand {
			prefix = "vsc.rand_enum_t"
		}
		return fmt.Sprintf("self.%s = %s(%s)%s", field.Name, prefix, enumClass, comment)
	}

	if field.IsArray {
		prefix := "vsc.list_t"
		if field.Kind == sv.Rand {
			prefix = "vsc.rand_list_t"
		}
		sizeArg := ""
		if field.ArraySize > 0 {
			sizeArg = fmt.Sprintf(", sz=%d", field.ArraySize)
		}
		return fmt.Sprintf("self.%s = %s(%s%s)%s", field.Name, prefix, innerPyType(field), sizeArg, comment)
	}

	return fmt.Sprintf("self.%s = %s%s", field.Name, pyType(field), comment)
}

// pyType maps a field to its PyVSC type expression. Signed bit/logic
// vectors become int_t because PyVSC has no signed bit_t; standard integer
// types use the fixed-width (u)intN_t constructors.
func pyType(field sv.Field) string {
	if field.Kind == sv.Randc {
		// randc only supports bit_t in PyVSC
		return fmt.Sprintf("vsc.randc_bit_t(%d)", field.Width)
	}

	prefix := "vsc."
	if field.Kind == sv.Rand {
		prefix = "vsc.rand_"
	}

	switch {
	case (field.DataType == "bit" || field.DataType == "logic") && field.Signed:
		return fmt.Sprintf("%sint_t(%d)", prefix, field.Width)
	case field.DataType == "bit" || field.DataType == "logic":
		return fmt.Sprintf("%sbit_t(%d)", prefix, field.Width)
	}

	if name, ok := intTypeName(field); ok {
		return prefix + name
	}
	return fmt.Sprintf("%sbit_t(%d)", prefix, field.Width)
}

// innerPyType maps a field to the element type used inside list_t.
func innerPyType(field sv.Field) string {
	switch {
	case (field.DataType == "bit" || field.DataType == "logic") && field.Signed:
		return fmt.Sprintf("vsc.int_t(%d)", field.Width)
	case field.DataType == "bit" || field.DataType == "logic":
		return fmt.Sprintf("vsc.bit_t(%d)", field.Width)
	}
	if name, ok := intTypeName(field); ok {
		return "vsc." + name
	}
	return fmt.Sprintf("vsc.bit_t(%d)", field.Width)
}

func intTypeName(field sv.Field) (string, bool) {
	widths := map[string]int{"byte": 8, "shortint": 16, "int": 32, "longint": 64}
	w, ok := widths[field.DataType]
	if !ok {
		return "", false
	}
	if field.Signed {
		return fmt.Sprintf("int%d_t()", w), true
	}
	return fmt.Sprintf("uint%d_t()", w), true
}

var (
	rangeFirstPattern  = regexp.MustCompile(`^(\w+)\s*>=\s*(-?\d+)\s*(?:&&|&)\s*(\w+)\s*<=\s*(-?\d+)$`)
	rangeSecondPattern = regexp.MustCompile(`^(\w+)\s*<=\s*(-?\d+)\s*(?:&&|&)\s*(\w+)\s*>=\s*(-?\d+)$`)
)

// extractSimpleRangeConstraint recognizes a whole constraint body of the
// shape "v >= lo && v <= hi" (either order, & or &&, optionally wrapped in
// parentheses) and returns its rangelist line, or "" when the body is
// anything else.
func extractSimpleRangeConstraint(body string) string {
	body = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body), ";"))
	body = stripOuterParens(body)

	if m := rangeFirstPattern.FindStringSubmatch(body); m != nil && m[1] == m[3] {
		return fmt.Sprintf("self.%s in vsc.rangelist(vsc.rng(%s, %s))", m[1], m[2], m[4])
	}
	if m := rangeSecondPattern.FindStringSubmatch(body); m != nil && m[1] == m[3] {
		return fmt.Sprintf("self.%s in vsc.rangelist(vsc.rng(%s, %s))", m[1], m[4], m[2])
	}
	return ""
}

// stripOuterParens removes balanced outermost parentheses, repeatedly.
func stripOuterParens(s string) string {
	for strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		depth := 0
		outer := true
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 && i < len(s)-1 {
				outer = false
				break
			}
		}
		if !outer {
			break
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func (g *generator) emitHook(name, body string) []string {
	g.addReviewItem(fmt.Sprintf("%s function requires manual translation", name))
	desc := "before"
	if name == "post_randomize" {
		desc = "after successful"
	}
	original := body
	if len(original) > 80 {
		original = original[:80] + "..."
	}
	return []string{
		fmt.Sprintf("%sdef %s(self):", indent, name),
		fmt.Sprintf(`%s%s"""Called %s randomization"""`, indent, indent, desc),
		fmt.Sprintf("%s%s# Original SV: %s", indent, indent, original),
		fmt.Sprintf("%s%spass  # TODO: Translate %s logic", indent, indent, name),
	}
}

func (g *generator) usageExample(classes []*sv.Class) string {
	if len(classes) == 0 {
		return ""
	}

	lines := []string{
		"# " + strings.Repeat("=", 77),
		"# USAGE EXAMPLE",
		"# " + strings.Repeat("=", 77),
		"",
		"if __name__ == '__main__':",
		"    # Set seed for reproducibility (optional)",
		"    # vsc.set_randstate(12345)",
		"",
	}

	for _, class := range classes {
		className := pythonClassName(class.Name)
		varName := strings.ToLower(class.Name)

		lines = append(lines,
			fmt.Sprintf("    # Create and randomize %s", className),
			fmt.Sprintf("    %s = %s()", varName, className),
			fmt.Sprintf("    %s_randomized = False", varName),
			"    try:",
			fmt.Sprintf("        %s.randomize()", varName),
			fmt.Sprintf("        %s_randomized = True", varName),
			fmt.Sprintf("        print(f'%s randomized successfully')", className),
			"    except Exception as e:",
			fmt.Sprintf("        print(f'%s randomize failed: {e}')", className),
			"",
		)

		if len(class.Fields) > 0 {
			lines = append(lines,
				fmt.Sprintf("    if %s_randomized:", varName),
				"        # Print field values")
			limit := len(class.Fields)
			if limit > 5 {
				limit = 5
			}
			for _, field := range class.Fields[:limit] {
				lines = append(lines, fmt.Sprintf("        print(f'  %s = {%s.%s}')", field.Name, varName, field.Name))
			}
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}

var typeSuffix = regexp.MustCompile(`_[te]$`)

// pythonClassName converts an SV type/class name to PascalCase, dropping a
// trailing _t/_e type suffix.
func pythonClassName(svName string) string {
	name := typeSuffix.ReplaceAllString(svName, "")
	var sb strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(strings.ToLower(part[1:]))
	}
	return sb.String()
}
