// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package sv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements_Simple(t *testing.T) {
	stmts := SplitStatements("a == 1; b == 2; c inside {1, 2};")
	require.Len(t, stmts, 3)
	assert.Equal(t, "a == 1;", stmts[0])
	assert.Equal(t, "b == 2;", stmts[1])
	assert.Equal(t, "c inside {1, 2};", stmts[2])
}

func TestSplitStatements_AdjacentNotMerged(t *testing.T) {
	// Two statements that could look like one implication must stay apart.
	stmts := SplitStatements("a == 1;\nb == 0;")
	require.Len(t, stmts, 2)
	assert.Equal(t, "a == 1;", stmts[0])
	assert.Equal(t, "b == 0;", stmts[1])
}

func TestSplitStatements_BracedConditionalIsOneStatement(t *testing.T) {
	body := `
if (mode == 1) {
  x inside {1, 2};
} else {
  x == 0;
}
a == 5;
`
	stmts := SplitStatements(body)
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "else")
	assert.Contains(t, stmts[0], "x == 0;")
	assert.Equal(t, "a == 5;", stmts[1])
}

func TestSplitStatements_InlineElseChainStaysTogether(t *testing.T) {
	stmts := SplitStatements("if (a) b == 1; else b == 0;")
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "else b == 0;")
}

func TestSplitStatements_BeginEndBlock(t *testing.T) {
	body := `
if (a) begin
  x == 1;
  y == 2;
end
z == 3;
`
	stmts := SplitStatements(body)
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "begin")
	assert.Contains(t, stmts[0], "end")
	assert.Equal(t, "z == 3;", stmts[1])
}

func TestSplitStatements_SemicolonInsideBracesKept(t *testing.T) {
	stmts := SplitStatements("foreach (arr[i]) { arr[i] inside {1, 2}; arr[i] != 0; }")
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "arr[i] != 0;")
}

func TestSplitStatements_UnterminatedFlushed(t *testing.T) {
	stmts := SplitStatements("a == 1; b == 2")
	require.Len(t, stmts, 2)
	assert.Equal(t, "b == 2", stmts[1])
}

func TestWordAt(t *testing.T) {
	assert.True(t, WordAt("begin x end", 8, "end"))
	assert.False(t, WordAt("endclass", 0, "end"), "endclass is not the end keyword")
	assert.False(t, WordAt("backend", 4, "end"), "embedded occurrence is not a word")
	assert.True(t, WordAt("end", 0, "end"))
}

func TestMatchingParen(t *testing.T) {
	s := "(a && (b || c)) -> d"
	assert.Equal(t, 14, MatchingParen(s, 0))
	assert.Equal(t, 13, MatchingParen(s, 6))
	assert.Equal(t, -1, MatchingParen("(unclosed", 0))
	assert.Equal(t, -1, MatchingParen("x", 0))
}

func TestMatchingBrace(t *testing.T) {
	s := "{ a { b } c }"
	assert.Equal(t, 12, MatchingBrace(s, 0))
	assert.Equal(t, 8, MatchingBrace(s, 4))
	assert.Equal(t, -1, MatchingBrace("{", 0))
}

func TestMatchingBeginEnd(t *testing.T) {
	s := "begin x == 1; begin y == 2; end end"
	last := MatchingBeginEnd(s, 0)
	require.Equal(t, len(s)-1, last)

	inner := MatchingBeginEnd(s, 14)
	assert.Equal(t, 30, inner)

	assert.Equal(t, -1, MatchingBeginEnd("begin x == 1; endclass", 0),
		"endclass must not close a begin block")
}
