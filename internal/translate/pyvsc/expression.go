// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package pyvsc

import (
	"fmt"
	"regexp"
	"strings"
)

// translateExpression rewrites one SystemVerilog expression into PyVSC
// Python. The stage order is load-bearing: numbers first so later stages
// see Python literals, operators before set membership, enum qualification
// before self-prefixing so qualified members are not double-prefixed, and
// bare-condition normalization last over the fully rewritten text.
func (g *generator) translateExpression(expr string) string {
	if expr == "" {
		return ""
	}

	expr = convertNumbers(expr)
	expr = convertLogicalOperators(expr)
	expr = g.convertInsideExpression(expr)
	expr = g.qualifyEnumValues(expr)
	expr = g.addSelfPrefix(expr)
	expr = convertBareConditions(expr)
	return expr
}

var svNumber = regexp.MustCompile(`(\d+)'([hHbBdDoO])([0-9a-fA-F_]+)`)

// convertNumbers rewrites sized SV literals (N'hXX and friends) to Python
// numeric literals. Underscores are stripped inside the literal only; they
// are legal in identifiers and must survive everywhere else.
func convertNumbers(expr string) string {
	return svNumber.ReplaceAllStringFunc(expr, func(m string) string {
		sub := svNumber.FindStringSubmatch(m)
		value := strings.ReplaceAll(sub[3], "_", "")
		switch strings.ToLower(sub[2]) {
		case "h":
			return "0x" + value
		case "b":
			return "0b" + value
		case "o":
			return "0o" + value
		default:
			return value
		}
	})
}

var (
	notParen = regexp.MustCompile(`!\s*\(`)
	// A '!' directly before a word character is logical NOT. "!=" never
	// matches because '=' is not a word character.
	notWord = regexp.MustCompile(`!(\w)`)
)

// convertLogicalOperators maps SV logical operators to their PyVSC
// overloaded-operator spellings.
func convertLogicalOperators(expr string) string {
	expr = strings.ReplaceAll(expr, "&&", "&")
	expr = strings.ReplaceAll(expr, "||", "|")
	expr = notParen.ReplaceAllString(expr, "~(")
	expr = notWord.ReplaceAllString(expr, "~$1")
	return expr
}

var insideExpr = regexp.MustCompile(`(\w+)\s+inside\s*\{([^}]+)\}`)

// convertInsideExpression rewrites embedded 'var inside {...}' occurrences,
// for when the sugar appears inside a larger expression rather than as a
// whole statement.
func (g *generator) convertInsideExpression(expr string) string {
	return insideExpr.ReplaceAllStringFunc(expr, func(m string) string {
		sub := insideExpr.FindStringSubmatch(m)
		return fmt.Sprintf("%s in vsc.rangelist(%s)", sub[1], g.translateInside(sub[2]))
	})
}

var allCapsIdent = regexp.MustCompile(`\b[A-Z][A-Z0-9_]*\b`)

// qualifyEnumValues prefixes known enum member literals with their owning
// enum class. Members already behind a dot are left alone.
func (g *generator) qualifyEnumValues(expr string) string {
	if len(g.enumValueMap) == 0 {
		return expr
	}

	locs := allCapsIdent.FindAllStringIndex(expr, -1)
	if locs == nil {
		return expr
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		name := expr[loc[0]:loc[1]]
		owner, known := g.enumValueMap[name]
		if !known || (loc[0] > 0 && expr[loc[0]-1] == '.') {
			continue
		}
		b.WriteString(expr[last:loc[0]])
		b.WriteString(owner)
		b.WriteByte('.')
		b.WriteString(name)
		last = loc[1]
	}
	b.WriteString(expr[last:])
	return b.String()
}

var identWord = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)

// addSelfPrefix scopes bare identifiers to the random object. Keywords,
// attribute accesses, foreach indices and enum class references stay bare.
func (g *generator) addSelfPrefix(expr string) string {
	locs := identWord.FindAllStringIndex(expr, -1)
	if locs == nil {
		return expr
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		word := expr[loc[0]:loc[1]]
		if _, keyword := pythonKeywords[word]; keyword {
			continue
		}
		if _, loopVar := g.loopVars[word]; loopVar {
			continue
		}
		if loc[0] > 0 && expr[loc[0]-1] == '.' {
			continue
		}
		if _, enumClass := g.enumClassNames[word]; enumClass {
			if loc[1] < len(expr) && expr[loc[1]] == '.' {
				continue
			}
		}
		b.WriteString(expr[last:loc[0]])
		b.WriteString("self.")
		b.WriteString(word)
		last = loc[1]
	}
	b.WriteString(expr[last:])

	result := strings.ReplaceAll(b.String(), "self.self.", "self.")
	result = strings.ReplaceAll(result, "self.vsc.", "vsc.")
	return result
}

var (
	bareNotVar = regexp.MustCompile(`^~\s*(self\.\w+)$`)
	bareVar    = regexp.MustCompile(`^(self\.\w+)$`)
)

// convertBareConditions rewrites bare truthiness tests into explicit
// comparisons, which is what the constraint solver accepts.
func convertBareConditions(expr string) string {
	for _, op := range []string{"==", "!=", "<", ">"} {
		if strings.Contains(expr, op) {
			return expr
		}
	}
	if strings.Contains(expr, "vsc.") && !strings.Contains(expr, " in vsc.rangelist") {
		return expr
	}
	if strings.Contains(expr, " in vsc.rangelist") {
		return expr
	}

	trimmed := strings.TrimSpace(expr)
	if m := bareNotVar.FindStringSubmatch(trimmed); m != nil {
		return fmt.Sprintf("(%s == 0)", m[1])
	}
	if m := bareVar.FindStringSubmatch(trimmed); m != nil {
		return fmt.Sprintf("(%s != 0)", m[1])
	}
	return expr
}

// translateInside renders the items of a set-membership body as
// vsc.rangelist arguments: ranges become vsc.rng pairs, scalars pass
// through number conversion.
func (g *generator) translateInside(insideBody string) string {
	rangeItem := regexp.MustCompile(`^\[(.+?):(.+?)\]`)

	var parts []string
	for _, item := range parseInsideItems(insideBody) {
		item = strings.TrimSpace(item)
		if m := rangeItem.FindStringSubmatch(item); m != nil {
			low := convertNumbers(strings.TrimSpace(m[1]))
			high := convertNumbers(strings.TrimSpace(m[2]))
			parts = append(parts, fmt.Sprintf("vsc.rng(%s, %s)", low, high))
		} else {
			parts = append(parts, convertNumbers(item))
		}
	}
	return strings.Join(parts, ", ")
}

// parseInsideItems splits a membership body on commas, ignoring commas
// inside [low:high] range brackets.
func parseInsideItems(body string) []string {
	var items []string
	var current strings.Builder
	bracketDepth := 0

	for i := 0; i < len(body); i++ {
		switch c := body[i]; c {
		case '[':
			bracketDepth++
			current.WriteByte(c)
		case ']':
			bracketDepth--
			current.WriteByte(c)
		case ',':
			if bracketDepth == 0 {
				if s := strings.TrimSpace(current.String()); s != "" {
					items = append(items, s)
				}
				current.Reset()
			} else {
				current.WriteByte(c)
			}
		default:
			current.WriteByte(c)
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		items = append(items, s)
	}
	return items
}
