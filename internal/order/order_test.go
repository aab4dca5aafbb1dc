// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual(t *testing.T) {
	tests := []struct {
		name     string
		known    []string
		supplied string
		expected []string
	}{
		{"merge", []string{"a", "b", "c"}, "c x a", []string{"c", "a", "b"}},
		{"empty", []string{"a", "b", "c"}, "", []string{"a", "b", "c"}},
		{"duplicates", []string{"a", "b"}, "b b a", []string{"b", "a"}},
		{"unknown only", []string{"a", "b"}, "x y", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Manual(tt.known, ParseManual(tt.supplied)))
		})
	}
}

func TestFrequency(t *testing.T) {
	text := "(s1&a)|(~s1&b)&((s2&c)|(~s2&d))"
	known := []string{"s1", "a", "b", "s2", "c", "d"}
	assert.Equal(t, []string{"s1", "s2", "a", "b", "c", "d"}, Frequency(text, known))
	// the input is left untouched
	assert.Equal(t, []string{"s1", "a", "b", "s2", "c", "d"}, known)
}

// inversions counts the pairs out of alphabetical order.
func inversions(o []string) (int, error) {
	res := 0
	for i := range o {
		for j := i + 1; j < len(o); j++ {
			if o[i] > o[j] {
				res++
			}
		}
	}
	return res, nil
}

func TestSift(t *testing.T) {
	start := []string{"d", "c", "b", "a"}
	res, err := Sift(start, inversions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, res.Order)
	assert.Equal(t, 0, res.Cost)
	assert.LessOrEqual(t, res.Passes, len(start)+1)
	assert.Equal(t, []string{"d", "c", "b", "a"}, start)
}

func TestSiftNeverWorse(t *testing.T) {
	calls := 0
	flat := func(o []string) (int, error) {
		calls++
		return 7, nil
	}
	start := []string{"x", "y", "z"}
	res, err := Sift(start, flat)
	require.NoError(t, err)
	assert.Equal(t, start, res.Order)
	assert.Equal(t, 7, res.Cost)
	assert.Equal(t, 1, res.Passes)
	// current order and the two swapped orders, each evaluated once
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, res.Evaluations)
}

func TestSiftMaxPasses(t *testing.T) {
	res, err := Sift([]string{"e", "d", "c", "b", "a"}, inversions, MaxPasses(1))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Passes)
	// one bubble pass moves the largest name to the end
	assert.Equal(t, []string{"d", "c", "b", "a", "e"}, res.Order)
	assert.Equal(t, 6, res.Cost)
}

func TestSiftError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Sift([]string{"a", "b"}, func([]string) (int, error) { return 0, boom })
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestSiftSingleVariable(t *testing.T) {
	res, err := Sift([]string{"a"}, inversions)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Order)
	assert.Equal(t, 1, res.Passes)
}
