// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package diagram

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/dalzilio/robdd/internal/formula"
	"github.com/dalzilio/robdd/internal/kernel"
	"github.com/dalzilio/robdd/internal/order"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiplexers = "((s1&a)|(~s1&b))&((s2&c)|(~s2&d))"

// shape returns a description of the diagram that does not depend on node
// identifiers: nodes are numbered in breadth-first order, low before high.
func shape(t *testing.T, d *Diagram, kind Kind) []string {
	t.Helper()
	root, ok := d.Root(kind)
	require.True(t, ok)
	index := map[int]int{root: 0}
	queue := []int{root}
	var res []string
	for len(queue) > 0 {
		n := d.Node(queue[0])
		queue = queue[1:]
		if n.Terminal() {
			res = append(res, fmt.Sprintf("%d:%s", index[n.ID], n.Text))
			continue
		}
		for _, c := range []int{n.Low, n.High} {
			if _, ok := index[c]; !ok {
				index[c] = len(index)
				queue = append(queue, c)
			}
		}
		res = append(res, fmt.Sprintf("%d:%s:%d:%d:%d", index[n.ID], n.Var, n.Level, index[n.Low], index[n.High]))
	}
	return res
}

func newDiagram(t *testing.T, text string, options ...Option) *Diagram {
	t.Helper()
	d, err := New(text, options...)
	require.NoError(t, err)
	return d
}

func TestBuildReducedConjunction(t *testing.T) {
	d := newDiagram(t, "a&b")
	root, err := d.BuildReduced()
	require.NoError(t, err)
	assert.Equal(t, 4, d.Size(ROBDD))

	a := d.Node(root)
	assert.Equal(t, "a", a.Var)
	assert.Equal(t, 0, a.Level)
	assert.Equal(t, "terminal_false", d.Node(a.Low).Identifier())
	b := d.Node(a.High)
	assert.Equal(t, "b", b.Var)
	assert.Equal(t, 1, b.Level)
	assert.Equal(t, "terminal_false", d.Node(b.Low).Identifier())
	assert.Equal(t, "terminal_true", d.Node(b.High).Identifier())
	assert.Equal(t, 2, d.Node(b.High).Level)
}

func TestDontCareCollapse(t *testing.T) {
	d := newDiagram(t, "a|~a")
	assert.Equal(t, "True", d.Expression())

	root, err := d.BuildReduced()
	require.NoError(t, err)
	assert.Equal(t, 1, d.Size(ROBDD))
	assert.Equal(t, "terminal_true", d.Node(root).Identifier())

	_, err = d.BuildUnreduced()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Size(BDD))

	v, err := d.View(ROBDD)
	require.NoError(t, err)
	assert.Equal(t, "terminal_true", v.Root)
	assert.Len(t, v.Nodes, 1)
	assert.Nil(t, v.Nodes["terminal_true"].Step)
}

func TestUnreducedVersusReduced(t *testing.T) {
	d := newDiagram(t, "a&c | b&c", WithOrder([]string{"a", "b", "c"}))
	_, err := d.BuildUnreduced()
	require.NoError(t, err)
	_, err = d.BuildReduced()
	require.NoError(t, err)
	assert.Equal(t, 8, d.Size(BDD))
	assert.Equal(t, 5, d.Size(ROBDD))

	// every leaf of the tree sits at the last level
	root, _ := d.Root(BDD)
	d.walk(root, func(n *Node) {
		if n.Terminal() {
			assert.Equal(t, 3, n.Level)
		}
	})
}

func TestCanonicity(t *testing.T) {
	d := newDiagram(t, multiplexers)
	_, err := d.BuildReduced()
	require.NoError(t, err)
	first := shape(t, d, ROBDD)
	firstRoot, _ := d.Root(ROBDD)

	_, err = d.BuildReduced()
	require.NoError(t, err)
	second := shape(t, d, ROBDD)
	secondRoot, _ := d.Root(ROBDD)
	assert.Equal(t, first, second)
	assert.Greater(t, secondRoot, firstRoot, "identifiers keep increasing across builds")

	// equivalent formulas give the same diagram
	x := newDiagram(t, "a -> b")
	y := newDiagram(t, "~a | b")
	_, err = x.BuildReduced()
	require.NoError(t, err)
	_, err = y.BuildReduced()
	require.NoError(t, err)
	assert.Equal(t, shape(t, x, ROBDD), shape(t, y, ROBDD))
}

func TestReducedInvariants(t *testing.T) {
	d := newDiagram(t, multiplexers)
	root, err := d.BuildReduced()
	require.NoError(t, err)
	type key struct {
		v         string
		low, high int
	}
	unique := map[key]int{}
	terminals := 0
	d.walk(root, func(n *Node) {
		if n.Terminal() {
			terminals++
			return
		}
		assert.NotEqual(t, n.Low, n.High)
		k := key{n.Var, n.Low, n.High}
		_, dup := unique[k]
		assert.False(t, dup, "duplicate node %v", k)
		unique[k] = n.ID
		assert.Less(t, n.Level, d.Node(n.Low).Level)
		assert.Less(t, n.Level, d.Node(n.High).Level)
	})
	assert.Equal(t, 2, terminals)
}

func TestOrder(t *testing.T) {
	d := newDiagram(t, "a&b&c", WithOrder(order.Manual([]string{"a", "b", "c"}, order.ParseManual("c x a"))))
	assert.Equal(t, []string{"c", "a", "b"}, d.Order())
	assert.Equal(t, []string{"a", "b", "c"}, d.Variables())

	root, err := d.BuildReduced()
	require.NoError(t, err)
	assert.Equal(t, "c", d.Node(root).Var)

	err = d.SetOrder([]string{"a", "b"})
	assert.True(t, errors.Is(err, ErrOrder))
	err = d.SetOrder([]string{"a", "b", "b"})
	assert.True(t, errors.Is(err, ErrOrder))
	err = d.SetOrder([]string{"a", "b", "z"})
	assert.True(t, errors.Is(err, ErrOrder))

	require.NoError(t, d.SetOrder([]string{"b", "c", "a"}))
	_, ok := d.Root(ROBDD)
	assert.False(t, ok, "changing the order discards the diagrams")
}

func TestSyntaxError(t *testing.T) {
	_, err := New("a & (b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, formula.ErrSyntax))
}

func TestVariablesEliminatedBySimplification(t *testing.T) {
	d := newDiagram(t, "a | (b & ~b)")
	assert.Equal(t, []string{"a", "b"}, d.Order())
	_, err := d.BuildUnreduced()
	require.NoError(t, err)
	// b still occupies a level in the tree
	root, _ := d.Root(BDD)
	assert.Equal(t, 2, d.Node(d.Node(root).High).Level)
	assert.Equal(t, 2, d.Node(d.Node(root).Low).Level)
	assert.Equal(t, 3, d.Size(BDD))
}

func TestSifting(t *testing.T) {
	d := newDiagram(t, multiplexers)
	start := order.Frequency(d.Formula(), d.Variables())
	startSize, err := d.Measure(ROBDD, start)
	require.NoError(t, err)

	res, err := d.AutoOrder(ROBDD, Sifting)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Cost, startSize)
	assert.Equal(t, res.Order, d.Order())
	assert.Equal(t, res.Cost, d.Size(ROBDD))
	assert.LessOrEqual(t, res.Passes, len(start)+1)

	res, err = d.AutoOrder(BDD, Frequency)
	require.NoError(t, err)
	assert.Equal(t, start, res.Order)
	_, ok := d.Root(BDD)
	assert.True(t, ok)
}

func TestHighlight(t *testing.T) {
	d := newDiagram(t, "a&b")
	root, err := d.BuildReduced()
	require.NoError(t, err)
	a := d.Node(root)
	b := d.Node(a.High)
	tt, ff := d.Node(b.High), d.Node(b.Low)

	require.NoError(t, d.Highlight(ROBDD, Assignment{"a": true}))
	assert.True(t, a.Highlight)
	assert.True(t, b.Highlight)
	assert.True(t, tt.Highlight)
	assert.True(t, ff.Highlight)

	require.NoError(t, d.Highlight(ROBDD, Assignment{"a": false}))
	assert.True(t, a.Highlight)
	assert.False(t, b.Highlight, "marks of the previous assignment are cleared")
	assert.False(t, tt.Highlight)
	assert.True(t, ff.Highlight)
	assert.Equal(t, Assignment{"a": false}, d.Highlighted())

	require.NoError(t, d.Highlight(ROBDD, Assignment{}))
	d.walk(root, func(n *Node) {
		assert.True(t, n.Highlight)
	})

	d.ClearHighlight()
	assert.Nil(t, d.Highlighted())
	d.walk(root, func(n *Node) {
		assert.False(t, n.Highlight)
	})

	err = d.Highlight(BDD, Assignment{})
	assert.True(t, errors.Is(err, ErrInvariant))
}

func TestParseAssignment(t *testing.T) {
	a, err := ParseAssignment("a:1  b:0\tc_2:1")
	require.NoError(t, err)
	assert.Equal(t, Assignment{"a": true, "b": false, "c_2": true}, a)
	assert.Equal(t, "a:1 b:0 c_2:1", a.String())

	a, err = ParseAssignment("")
	require.NoError(t, err)
	assert.Empty(t, a)

	for _, input := range []string{"a", "a:2", ":1", "a:1 b", "a:"} {
		_, err := ParseAssignment(input)
		assert.True(t, errors.Is(err, ErrParse), input)
		var perr *ParseError
		assert.True(t, errors.As(err, &perr), input)
	}
}

func TestSteps(t *testing.T) {
	d := newDiagram(t, "a&b")
	_, err := d.BuildReduced()
	require.NoError(t, err)
	v, err := d.View(ROBDD)
	require.NoError(t, err)
	require.NotNil(t, v.Nodes["node_3"].Step)
	assert.Equal(t, 0, *v.Nodes["node_3"].Step)
	require.NotNil(t, v.Nodes["node_2"].Step)
	assert.Equal(t, 1, *v.Nodes["node_2"].Step)
	assert.Nil(t, v.Nodes["terminal_true"].Step)
	assert.Nil(t, v.Nodes["terminal_false"].Step)

	// in a tree, every internal node gets a distinct step
	u := newDiagram(t, "a&c | b&c")
	root, err := u.BuildUnreduced()
	require.NoError(t, err)
	require.NoError(t, u.AssignSteps(BDD))
	steps := map[int]bool{}
	internal := 0
	u.walk(root, func(n *Node) {
		if n.Terminal() {
			assert.Equal(t, -1, n.Step)
			return
		}
		internal++
		steps[n.Step] = true
	})
	assert.Len(t, steps, internal)
	for k := 0; k < internal; k++ {
		assert.True(t, steps[k], "missing step %d", k)
	}
}

func TestViewRoundTrip(t *testing.T) {
	for _, kind := range []Kind{BDD, ROBDD} {
		t.Run(kind.String(), func(t *testing.T) {
			d := newDiagram(t, multiplexers)
			_, err := d.Build(kind)
			require.NoError(t, err)
			require.NoError(t, d.Highlight(kind, Assignment{"s1": true}))
			v, err := d.View(kind)
			require.NoError(t, err)
			assert.Equal(t, kind.String(), v.Type)
			assert.Equal(t, d.Order(), v.Variables)
			assert.Len(t, v.Nodes, d.Size(kind))
			require.Contains(t, v.Nodes, v.Root)
			for id, n := range v.Nodes {
				assert.Equal(t, id, n.ID)
				if n.Var == nil {
					assert.Nil(t, n.Low)
					assert.Nil(t, n.High)
					continue
				}
				require.NotNil(t, n.Low)
				require.NotNil(t, n.High)
				assert.Contains(t, v.Nodes, *n.Low)
				assert.Contains(t, v.Nodes, *n.High)
			}
			assert.NotNil(t, v.Nodes[v.Root].Highlight)

			edges, err := d.EdgeStyles(kind)
			require.NoError(t, err)
			assert.Len(t, edges, 2*(len(v.Nodes)-2))
			for _, e := range edges {
				assert.Contains(t, []string{StyleLow, StyleHigh}, e.Style)
				assert.Contains(t, v.Nodes, e.Tail)
				assert.Contains(t, v.Nodes, e.Head)
			}
		})
	}
}

func TestWriteDot(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	d := newDiagram(t, "a&b")
	_, err := d.BuildReduced()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, d.WriteDot(&buf, ROBDD))
	g.Assert(t, "robdd_a_and_b", buf.Bytes())

	require.NoError(t, d.Highlight(ROBDD, Assignment{"a": false}))
	buf.Reset()
	require.NoError(t, d.WriteDot(&buf, ROBDD))
	g.Assert(t, "robdd_a_and_b_highlight", buf.Bytes())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("bdd")
	require.NoError(t, err)
	assert.Equal(t, BDD, k)
	k, err = ParseKind("ROBDD")
	require.NoError(t, err)
	assert.Equal(t, ROBDD, k)
	_, err = ParseKind("zdd")
	assert.Error(t, err)
}

func TestModels(t *testing.T) {
	assert.Equal(t, "16", newDiagram(t, multiplexers).Models().String())
	assert.Equal(t, "0", newDiagram(t, "a & ~a").Models().String())
	assert.Equal(t, "2", newDiagram(t, "a|~a").Models().String())

	var buf bytes.Buffer
	require.NoError(t, newDiagram(t, "a -> b").WriteKernel(&buf))
	assert.Contains(t, buf.String(), "node: ")
}

func TestRebuildDropsPreviousNodes(t *testing.T) {
	d := newDiagram(t, multiplexers)
	_, err := d.Build(ROBDD)
	require.NoError(t, err)
	last := -1
	for i := 0; i < 100; i++ {
		root, err := d.Build(BDD)
		require.NoError(t, err)
		assert.Greater(t, root, last)
		last = root
	}
	assert.Equal(t, d.Size(BDD)+d.Size(ROBDD), d.retained())

	// identifiers stay unique between the two kinds
	ids := map[int]Kind{}
	for _, kind := range []Kind{BDD, ROBDD} {
		root, _ := d.Root(kind)
		d.walk(root, func(n *Node) {
			other, ok := ids[n.ID]
			assert.False(t, ok, "node %d in %s and %s", n.ID, kind, other)
			ids[n.ID] = kind
		})
	}

	require.NoError(t, d.SetOrder([]string{"a", "b", "c", "d", "s1", "s2"}))
	assert.Zero(t, d.retained())
}

// memoryBound returns the smallest kernel size for which New succeeds on
// text, so that the build has no node left to allocate.
func memoryBound(t *testing.T, text string, options ...Option) int {
	t.Helper()
	for size := 1; size < 1000; size++ {
		if _, err := New(text, append(options, KernelOptions(kernel.Maxnodesize(size)))...); err == nil {
			return size
		}
	}
	t.Fatalf("no kernel size large enough for %q", text)
	return 0
}

func TestBuildOutOfMemory(t *testing.T) {
	const text = "(a&b)|(c&d)|(a&d)"
	reversed := WithOrder([]string{"d", "c", "b", "a"})
	size := memoryBound(t, text, reversed)
	d := newDiagram(t, text, reversed, KernelOptions(kernel.Maxnodesize(size)))

	for _, kind := range []Kind{BDD, ROBDD} {
		_, err := d.Build(kind)
		require.ErrorIs(t, err, kernel.ErrMemory)
		_, ok := d.Root(kind)
		assert.False(t, ok)
		assert.Zero(t, d.Size(kind))
	}
	assert.Zero(t, d.retained())
	assert.Equal(t, "(a & b) | (a & d) | (c & d)", d.Expression())
}
