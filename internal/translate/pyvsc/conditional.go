// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package pyvsc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/svxlab/cli/internal/sv"
)

var (
	errUnbalancedCondition = errors.New("unbalanced parentheses in condition")
	errUnbalancedBody      = errors.New("unbalanced body delimiters")
)

// parseFullConditional walks an if / else-if / else chain and renders it as
// nested vsc.if_then / vsc.else_if / vsc.else_then context blocks. The chain
// is consumed head to tail; each else clause binds to the chain being walked,
// never to an outer statement.
func (g *generator) parseFullConditional(stmt string, level int) ([]string, error) {
	pad := strings.Repeat(indent, level)

	cond, body, rest, err := g.parseIfBlock(stmt)
	if err != nil {
		return nil, err
	}

	lines := []string{pad + fmt.Sprintf("with vsc.if_then(%s):", g.translateExpression(cond))}
	lines = append(lines, g.parseBlockBody(body, level+1)...)

	for {
		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ";"))
		if !sv.WordAt(rest, 0, "else") {
			break
		}
		after := strings.TrimSpace(rest[len("else"):])

		if sv.WordAt(after, 0, "if") {
			cond, body, rest, err = g.parseIfBlock(after)
			if err != nil {
				return nil, err
			}
			lines = append(lines, pad+fmt.Sprintf("with vsc.else_if(%s):", g.translateExpression(cond)))
			lines = append(lines, g.parseBlockBody(body, level+1)...)
			continue
		}

		body, rest, err = g.extractBody(after)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pad+"with vsc.else_then:")
		lines = append(lines, g.parseBlockBody(body, level+1)...)
		break
	}

	return lines, nil
}

// parseIfBlock consumes one "if (cond) body" clause and returns the raw
// condition, the raw body and whatever text follows the clause.
func (g *generator) parseIfBlock(stmt string) (cond, body, rest string, err error) {
	if !sv.WordAt(stmt, 0, "if") {
		return "", "", "", errors.New("not a conditional statement")
	}
	open := strings.IndexByte(stmt, '(')
	if open < 0 {
		return "", "", "", errUnbalancedCondition
	}
	closing := sv.MatchingParen(stmt, open)
	if closing < 0 {
		return "", "", "", errUnbalancedCondition
	}

	cond = strings.TrimSpace(stmt[open+1 : closing])
	body, rest, err = g.extractBody(strings.TrimSpace(stmt[closing+1:]))
	return cond, body, rest, err
}

// extractBody consumes one clause body in any of its three spellings: a
// braced block, a begin/end block, or a single inline statement.
func (g *generator) extractBody(s string) (body, rest string, err error) {
	switch {
	case strings.HasPrefix(s, "{"):
		closing := sv.MatchingBrace(s, 0)
		if closing < 0 {
			return "", "", errUnbalancedBody
		}
		return s[1:closing], s[closing+1:], nil

	case sv.WordAt(s, 0, "begin"):
		last := sv.MatchingBeginEnd(s, 0)
		if last < 0 {
			return "", "", errUnbalancedBody
		}
		return s[len("begin") : last-len("end")+1], s[last+1:], nil

	default:
		end := findStatementEnd(s)
		return s[:end], s[end:], nil
	}
}

// findStatementEnd locates the end of an inline clause body. A nested
// conditional consumes its entire chain, so a following "else" is never
// mistaken for part of the inner statement's text.
func findStatementEnd(s string) int {
	if sv.WordAt(s, 0, "if") {
		if end := findConditionalEnd(s); end >= 0 {
			return end
		}
		return len(s)
	}

	parenDepth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case ';':
			if parenDepth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// findConditionalEnd returns the index just past a complete if/else chain
// starting at s[0], or -1 when the chain is malformed.
func findConditionalEnd(s string) int {
	pos := 0

	consumeBody := func() bool {
		for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n' || s[pos] == '\r') {
			pos++
		}
		switch {
		case pos < len(s) && s[pos] == '{':
			closing := sv.MatchingBrace(s, pos)
			if closing < 0 {
				return false
			}
			pos = closing + 1
		case sv.WordAt(s, pos, "begin"):
			last := sv.MatchingBeginEnd(s, pos)
			if last < 0 {
				return false
			}
			pos = last + 1
		case sv.WordAt(s, pos, "if"):
			end := findConditionalEnd(s[pos:])
			if end < 0 {
				return false
			}
			pos += end
		default:
			depth := 0
			for pos < len(s) {
				switch s[pos] {
				case '(':
					depth++
				case ')':
					depth--
				case ';':
					if depth == 0 {
						pos++
						return true
					}
				}
				pos++
			}
		}
		return true
	}

	if !sv.WordAt(s, pos, "if") {
		return -1
	}
	pos += len("if")
	for pos < len(s) && s[pos] != '(' {
		pos++
	}
	closing := sv.MatchingParen(s, pos)
	if closing < 0 {
		return -1
	}
	pos = closing + 1
	if !consumeBody() {
		return -1
	}

	for {
		save := pos
		for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n' || s[pos] == '\r') {
			pos++
		}
		if !sv.WordAt(s, pos, "else") {
			return save
		}
		pos += len("else")
		for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n' || s[pos] == '\r') {
			pos++
		}
		if sv.WordAt(s, pos, "if") {
			pos += len("if")
			for pos < len(s) && s[pos] != '(' {
				pos++
			}
			closing := sv.MatchingParen(s, pos)
			if closing < 0 {
				return -1
			}
			pos = closing + 1
			if !consumeBody() {
				return -1
			}
			continue
		}
		if !consumeBody() {
			return -1
		}
		return pos
	}
}

// parseBlockBody translates every statement inside a clause body at the
// given nesting level. An empty body still needs a Python statement.
func (g *generator) parseBlockBody(body string, level int) []string {
	pad := strings.Repeat(indent, level)

	var lines []string
	for _, stmt := range sv.SplitStatements(body) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if condHead.MatchString(stmt) {
			nested, err := g.parseFullConditional(stmt, level)
			if err == nil {
				lines = append(lines, nested...)
				continue
			}
		}
		for _, line := range g.translateStatement(stmt) {
			lines = append(lines, pad+line)
		}
	}

	if len(lines) == 0 {
		lines = append(lines, pad+"pass")
	}
	return lines
}
