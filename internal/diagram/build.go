// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package diagram

import (
	"fmt"

	"github.com/dalzilio/robdd/internal/simplify"
)

// Build builds the diagram of the given kind for the active order and returns
// the identifier of its root.
func (d *Diagram) Build(kind Kind) (int, error) {
	if kind == BDD {
		return d.BuildUnreduced()
	}
	return d.BuildReduced()
}

// BuildUnreduced builds the full decision tree of the formula. Every expansion
// allocates a fresh node; leaves are the two terminals of this build.
func (d *Diagram) BuildUnreduced() (int, error) {
	return d.commit(BDD, d.unreduced)
}

// BuildReduced builds the reduced ordered diagram of the formula.
func (d *Diagram) BuildReduced() (int, error) {
	return d.commit(ROBDD, d.reduced)
}

// commit runs a build in a fresh arena and installs it, with its root, in
// place of the previous diagram of the same kind. On error, the arena is
// dropped and d is left unchanged.
func (d *Diagram) commit(kind Kind, build func(a *arena, order []string) (int, error)) (int, error) {
	a := &arena{base: d.next}
	root, err := build(a, d.order)
	if err != nil {
		return -1, err
	}
	d.ClearHighlight()
	d.arenas[kind] = a
	d.roots[kind] = root
	d.next = a.next()
	return root, nil
}

// Measure returns the size of the diagram of the given kind for order, without
// changing d.
func (d *Diagram) Measure(kind Kind, order []string) (int, error) {
	if err := d.checkOrder(order); err != nil {
		return 0, err
	}
	a := &arena{}
	build := d.reduced
	if kind == BDD {
		build = d.unreduced
	}
	root, err := build(a, order)
	if err != nil {
		return 0, err
	}
	return size(a, root), nil
}

// Size returns the number of nodes reachable from the root of the diagram of
// the given kind, terminals included, or 0 if it was not built.
func (d *Diagram) Size(kind Kind) int {
	root, ok := d.Root(kind)
	if !ok {
		return 0
	}
	return size(d.arenas[kind], root)
}

func size(a *arena, root int) int {
	seen := map[int]bool{root: true}
	queue := []int{root}
	for len(queue) > 0 {
		n := a.at(queue[0])
		queue = queue[1:]
		for _, c := range [2]int{n.Low, n.High} {
			if c >= 0 && !seen[c] {
				seen[c] = true
				queue = append(queue, c)
			}
		}
	}
	return len(seen)
}

// expand returns the residuals of x for variable v set to true and to false.
func (d *Diagram) expand(r Residual, v string) (high, low Residual, err error) {
	x := r.expr
	if val, ok := r.IsConstant(); ok {
		x = d.engine.Constant(val)
	}
	hi, err := d.engine.Substitute(x, v, true)
	if err != nil {
		return Residual{}, Residual{}, err
	}
	lo, err := d.engine.Substitute(x, v, false)
	if err != nil {
		return Residual{}, Residual{}, err
	}
	return d.residual(hi), d.residual(lo), nil
}

func (d *Diagram) residual(x simplify.Expr) Residual {
	if v, ok := d.engine.IsConstant(x); ok {
		return Constant(v)
	}
	return Expression(x)
}

// rootNode returns the node for the whole formula, at level 0. With an empty
// order, the formula must be constant and the root is a terminal.
func (d *Diagram) rootNode(order []string) (Node, error) {
	r := d.residual(d.root)
	if len(order) == 0 {
		v, ok := r.IsConstant()
		if !ok {
			return Node{}, fmt.Errorf("%w: no variable to expand %s", ErrInvariant, d.expression)
		}
		return Node{Value: Constant(v), Text: d.expression, Step: -1, Low: -1, High: -1}, nil
	}
	return Node{Var: order[0], Value: r, Text: d.expression, Level: 0, Step: -1, Low: -1, High: -1}, nil
}

func (d *Diagram) unreduced(a *arena, order []string) (int, error) {
	n := len(order)
	t := a.terminal(true, n)
	f := a.terminal(false, n)
	root, err := d.rootNode(order)
	if err != nil {
		return -1, err
	}
	if root.Terminal() {
		if v, _ := root.Value.IsConstant(); v {
			return t, nil
		}
		return f, nil
	}
	rid := a.alloc(root)

	// The work list is used as a stack: children are pushed at the end we pop
	// from, so the newest node is expanded first.
	stack := []int{rid}
	child := func(r Residual, level int) (int, error) {
		if v, ok := r.IsConstant(); ok {
			if v {
				return t, nil
			}
			return f, nil
		}
		text, err := d.engine.Render(r.expr)
		if err != nil {
			return -1, err
		}
		if level >= n {
			return -1, fmt.Errorf("%w: residual %s below the last level", ErrInvariant, text)
		}
		id := a.alloc(Node{Var: order[level], Value: r, Text: text, Level: level, Step: -1, Low: -1, High: -1})
		stack = append(stack, id)
		return id, nil
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := *a.at(id)
		hr, lr, err := d.expand(node.Value, node.Var)
		if err != nil {
			return -1, err
		}
		high, err := child(hr, node.Level+1)
		if err != nil {
			return -1, err
		}
		low, err := child(lr, node.Level+1)
		if err != nil {
			return -1, err
		}
		a.at(id).High = high
		a.at(id).Low = low
	}
	return rid, nil
}

// textKey identifies the nodes merged during the first phase of a reduced
// build.
type textKey struct {
	text  string
	level int
}

// uniqueKey identifies the representatives of the second phase.
type uniqueKey struct {
	v    string
	low  int
	high int
}

func (d *Diagram) reduced(a *arena, order []string) (int, error) {
	n := len(order)
	root, err := d.rootNode(order)
	if err != nil {
		return -1, err
	}

	// Phase 1: breadth-first expansion in a scratch arena, merging the nodes
	// with the same residual text at the same level.
	var p arena
	t := p.terminal(true, n)
	f := p.terminal(false, n)
	if root.Terminal() {
		if v, _ := root.Value.IsConstant(); v {
			return a.terminal(true, n), nil
		}
		return a.terminal(false, n), nil
	}
	rid := p.alloc(root)
	seen := map[textKey]int{{root.Text, 0}: rid}
	levels := make([][]int, n)
	queue := []int{rid}
	child := func(r Residual, level int) (int, error) {
		if v, ok := r.IsConstant(); ok {
			if v {
				return t, nil
			}
			return f, nil
		}
		text, err := d.engine.Render(r.expr)
		if err != nil {
			return -1, err
		}
		if level >= n {
			return -1, fmt.Errorf("%w: residual %s below the last level", ErrInvariant, text)
		}
		if id, ok := seen[textKey{text, level}]; ok {
			return id, nil
		}
		id := p.alloc(Node{Var: order[level], Value: r, Text: text, Level: level, Step: -1, Low: -1, High: -1})
		seen[textKey{text, level}] = id
		queue = append(queue, id)
		return id, nil
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		node := p.nodes[id]
		levels[node.Level] = append(levels[node.Level], id)
		hr, lr, err := d.expand(node.Value, node.Var)
		if err != nil {
			return -1, err
		}
		high, err := child(hr, node.Level+1)
		if err != nil {
			return -1, err
		}
		low, err := child(lr, node.Level+1)
		if err != nil {
			return -1, err
		}
		p.nodes[id].High = high
		p.nodes[id].Low = low
	}

	// Phase 2: bottom-up canonicalization. rep maps the nodes of the scratch
	// arena to their representative in a.
	rep := make([]int, len(p.nodes))
	rep[t] = a.terminal(true, n)
	rep[f] = a.terminal(false, n)
	unique := make(map[uniqueKey]int)
	for level := n - 1; level >= 0; level-- {
		for _, id := range levels[level] {
			node := p.nodes[id]
			low, high := rep[node.Low], rep[node.High]
			if low == high {
				rep[id] = low
				continue
			}
			key := uniqueKey{node.Var, low, high}
			if r, ok := unique[key]; ok {
				rep[id] = r
				continue
			}
			node.Low, node.High = low, high
			r := a.alloc(node)
			unique[key] = r
			rep[id] = r
		}
	}
	return rep[rid], nil
}
