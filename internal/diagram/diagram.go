// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package diagram builds binary decision diagrams from propositional formulas
// by Shannon expansion. The unreduced diagram (BDD) is a full decision tree;
// the reduced diagram (ROBDD) is canonical for a given variable order.
//
// Basics
//
// A Diagram holds one formula together with its variables, in the order of
// their first occurrence in the text, and the active variable order. Each build
// stores its nodes in an arena that replaces the one of the previous build of
// the same kind. Identifiers keep increasing across the builds of a Diagram,
// so they are unique within it but not stable across rebuilds.
//
// A Diagram is not safe for concurrent use.
package diagram

import (
	"fmt"
	"io"
	"math/big"

	"github.com/dalzilio/robdd/internal/formula"
	"github.com/dalzilio/robdd/internal/kernel"
	"github.com/dalzilio/robdd/internal/simplify"
)

type config struct {
	kernel []kernel.Option
	order  []string
}

// Option is the type of configuration options accepted by New.
type Option func(*config)

// KernelOptions sets the options used to create the kernel of the
// simplifier, for instance kernel.Cachesize.
func KernelOptions(options ...kernel.Option) Option {
	return func(c *config) {
		c.kernel = append(c.kernel, options...)
	}
}

// WithOrder sets the initial variable order. It must list every variable of
// the formula exactly once.
func WithOrder(order []string) Option {
	return func(c *config) {
		c.order = order
	}
}

// Diagram is the result of parsing a formula, with the diagrams built for the
// active variable order.
type Diagram struct {
	formula     string
	variables   []string
	order       []string
	engine      *simplify.Engine
	root        simplify.Expr
	expression  string
	arenas      [2]*arena
	next        int
	roots       [2]int
	highlighted Assignment
}

// New parses text, rewrites implications and equivalences, and simplifies
// the result. No diagram is built yet. Errors on the text match
// formula.ErrSyntax.
func New(text string, options ...Option) (*Diagram, error) {
	c := &config{}
	for _, f := range options {
		f(c)
	}
	ast, err := formula.Parse(text)
	if err != nil {
		return nil, err
	}
	engine, err := simplify.New(c.kernel...)
	if err != nil {
		return nil, err
	}
	root, err := engine.ParseAndSimplify(formula.Linearize(formula.Rewrite(ast)))
	if err != nil {
		return nil, err
	}
	expression, err := engine.Render(root)
	if err != nil {
		return nil, err
	}
	d := &Diagram{
		formula:    text,
		variables:  formula.Variables(text),
		engine:     engine,
		root:       root,
		expression: expression,
		roots:      [2]int{-1, -1},
	}
	d.order = append([]string(nil), d.variables...)
	if c.order != nil {
		if err := d.SetOrder(c.order); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Formula returns the text the diagram was created from.
func (d *Diagram) Formula() string {
	return d.formula
}

// Variables returns the variables of the formula in the order of their first
// occurrence.
func (d *Diagram) Variables() []string {
	return append([]string(nil), d.variables...)
}

// Order returns the active variable order.
func (d *Diagram) Order() []string {
	return append([]string(nil), d.order...)
}

// Expression returns the text of the simplified formula.
func (d *Diagram) Expression() string {
	return d.expression
}

// Models returns the number of assignments of the variables of the formula
// that make it true.
func (d *Diagram) Models() *big.Int {
	return d.engine.Count(d.root)
}

// WriteKernel writes the nodes of the simplifier that represent the formula.
// The output is meant for debugging.
func (d *Diagram) WriteKernel(w io.Writer) error {
	return d.engine.Dump(w, d.root)
}

// SetOrder changes the active order. Diagrams built for another order are
// discarded, together with the current highlight.
func (d *Diagram) SetOrder(order []string) error {
	if err := d.checkOrder(order); err != nil {
		return err
	}
	if equalOrders(order, d.order) {
		return nil
	}
	d.order = append([]string(nil), order...)
	d.roots = [2]int{-1, -1}
	d.arenas = [2]*arena{}
	d.highlighted = nil
	return nil
}

func (d *Diagram) checkOrder(order []string) error {
	if len(order) != len(d.variables) {
		return fmt.Errorf("%w: %v has %d variables, expected %d", ErrOrder, order, len(order), len(d.variables))
	}
	seen := make(map[string]bool, len(order))
	for _, v := range d.variables {
		seen[v] = false
	}
	for _, v := range order {
		used, ok := seen[v]
		if !ok {
			return fmt.Errorf("%w: unknown variable %q", ErrOrder, v)
		}
		if used {
			return fmt.Errorf("%w: duplicate variable %q", ErrOrder, v)
		}
		seen[v] = true
	}
	return nil
}

func equalOrders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}

// Root returns the identifier of the root of the diagram of the given kind,
// if it was built for the active order.
func (d *Diagram) Root(kind Kind) (int, bool) {
	r := d.roots[kind]
	return r, r >= 0
}

// Node returns the node with identifier id, or nil.
func (d *Diagram) Node(id int) *Node {
	for _, a := range d.arenas {
		if n := a.at(id); n != nil {
			return n
		}
	}
	return nil
}

// retained returns the number of nodes held by the arenas of d.
func (d *Diagram) retained() int {
	n := 0
	for _, a := range d.arenas {
		if a != nil {
			n += len(a.nodes)
		}
	}
	return n
}

// LogStats outputs statistics about the simplifier at debug level.
func (d *Diagram) LogStats() {
	d.engine.LogStats("simplifier statistics")
}
