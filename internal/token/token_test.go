package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	pos := Position{Line: 2, Column: 0}
	// Switches to 1-indexed
	require.Equal(t, 3, pos.LineNumber())
	require.Equal(t, 1, pos.ColumnNumber())
	require.Equal(t, "3:1", pos.String())

	pos.File = "main.bx"
	require.Equal(t, "main.bx:3:1", pos.String())
}

func TestAdvance(t *testing.T) {
	pos := Position{Char: 10, Line: 1, Column: 4, File: "a.bx"}
	next := pos.Advance(3)
	require.Equal(t, Position{Char: 13, Line: 1, Column: 7, File: "a.bx"}, next)
	require.True(t, next.IsValid())
	require.False(t, NoPos.IsValid())
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: Position{Char: 2}, End: Position{Char: 6}}
	require.True(t, r.Contains(Position{Char: 2}))
	require.True(t, r.Contains(Position{Char: 5}))
	require.False(t, r.Contains(Position{Char: 6}))
	require.False(t, r.Contains(Position{Char: 1}))
}
