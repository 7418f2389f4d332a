// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package sv

import "strings"

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// WordAt reports whether word occurs at s[i:] as a whole word. The
// trailing-boundary check is what keeps "endclass" and "endfunction" from
// matching the "end" keyword.
func WordAt(s string, i int, word string) bool {
	if i < 0 || i+len(word) > len(s) || s[i:i+len(word)] != word {
		return false
	}
	if i > 0 && isWordChar(s[i-1]) {
		return false
	}
	if i+len(word) < len(s) && isWordChar(s[i+len(word)]) {
		return false
	}
	return true
}

// MatchingParen returns the index of the parenthesis closing the one at
// start, or -1 if unmatched.
func MatchingParen(s string, start int) int {
	if start >= len(s) || s[start] != '(' {
		return -1
	}
	depth := 1
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// MatchingBrace returns the index of the brace closing the one at start,
// or -1 if unmatched.
func MatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}
	depth := 1
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// MatchingBeginEnd returns the index of the last character of the "end"
// matching the "begin" at start, or -1 if unmatched.
func MatchingBeginEnd(s string, start int) int {
	depth := 1
	i := start + len("begin")
	for i < len(s) {
		switch {
		case WordAt(s, i, "begin"):
			depth++
			i += len("begin")
		case WordAt(s, i, "end"):
			depth--
			if depth == 0 {
				return i + len("end") - 1
			}
			i += len("end")
		default:
			i++
		}
	}
	return -1
}

// SplitStatements splits a constraint-block body into top-level statements.
// Semicolons and closing delimiters inside nested braces, parentheses or
// begin/end blocks do not terminate a statement, and a boundary is deferred
// when the next token (skipping whitespace and one permitted semicolon) is
// "else", so a whole if/else chain stays in one statement. Unterminated
// nesting at end of input flushes the accumulated text rather than
// discarding it.
func SplitStatements(body string) []string {
	var statements []string
	var current strings.Builder
	braceDepth, parenDepth, beginDepth := 0, 0, 0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			statements = append(statements, s)
		}
		current.Reset()
	}

	i := 0
	for i < len(body) {
		if WordAt(body, i, "begin") {
			beginDepth++
			current.WriteString("begin")
			i += len("begin")
			continue
		}
		if WordAt(body, i, "end") {
			beginDepth--
			current.WriteString("end")
			i += len("end")
			if beginDepth == 0 && braceDepth == 0 && parenDepth == 0 {
				if !strings.HasPrefix(strings.TrimLeft(body[i:], " \t\r\n"), "else") {
					flush()
				}
			}
			continue
		}

		c := body[i]
		switch c {
		case '{':
			braceDepth++
			current.WriteByte(c)
		case '}':
			braceDepth--
			current.WriteByte(c)
			if braceDepth == 0 && parenDepth == 0 && beginDepth == 0 {
				remaining := strings.TrimLeft(body[i+1:], " \t\r\n")
				remaining = strings.TrimLeft(strings.TrimPrefix(remaining, ";"), " \t\r\n")
				if !strings.HasPrefix(remaining, "else") {
					flush()
				}
			}
		case '(':
			parenDepth++
			current.WriteByte(c)
		case ')':
			parenDepth--
			current.WriteByte(c)
		case ';':
			if braceDepth == 0 && parenDepth == 0 && beginDepth == 0 {
				current.WriteByte(c)
				remaining := strings.TrimLeft(body[i+1:], " \t\r\n")
				if !strings.HasPrefix(remaining, "else") {
					flush()
				}
			} else {
				current.WriteByte(c)
			}
		default:
			current.WriteByte(c)
		}
		i++
	}

	flush()
	return statements
}
