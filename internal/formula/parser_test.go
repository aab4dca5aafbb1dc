// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package formula

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a", "a"},
		{"a&b", "(a & b)"},
		{"a & b | c", "((a & b) | c)"},
		{"a | b & c", "(a | (b & c))"},
		{"~a & b", "(~(a) & b)"},
		{"~~a", "~(~(a))"},
		{"a -> b -> c", "(a -> (b -> c))"},
		{"a <-> b <-> c", "((a <-> b) <-> c)"},
		{"a -> b <-> c", "((a -> b) <-> c)"},
		{"a | b -> c", "((a | b) -> c)"},
		{"a & b & c", "((a & b) & c)"},
		{"(a | b) & c", "((a | b) & c)"},
		{"  x_1 &\t_y2 ", "(x_1 & _y2)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Linearize(e))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{"", 0},
		{"a &", 3},
		{"a b", 2},
		{"(a | b", 6},
		{"a | B", 4},
		{"a - b", 2},
		{"a <- b", 2},
		{"a)", 1},
		{"&a", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))
			var serr *SyntaxError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.pos, serr.Pos)
		})
	}
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a -> b", "(~(a) | b)"},
		{"a <-> b", "((a & b) | (~(a) & ~(b)))"},
		{"~(a -> b)", "~((~(a) | b))"},
		{"a & (b -> c)", "(a & (~(b) | c))"},
		{"a -> b -> c", "(~(a) | (~(b) | c))"},
		{"a | ~b", "(a | ~(b))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := Parse(tt.input)
			require.NoError(t, err)
			before := Linearize(e)
			assert.Equal(t, tt.expected, Linearize(Rewrite(e)))
			assert.Equal(t, before, Linearize(e), "rewrite must not modify its input")
		})
	}
}

func TestVariables(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Variables("b & (a | ~b) -> c & a"))
	assert.Equal(t, []string{"x1", "y_2"}, Variables("x1|y_2"))
	assert.Empty(t, Variables(""))

	occ := Occurrences("b & (a | ~b) -> c & a & b")
	assert.Equal(t, map[string]int{"a": 2, "b": 3, "c": 1}, occ)
}
