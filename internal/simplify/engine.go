// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package simplify decides and renders propositional expressions. Expressions
// are kept as nodes of a decision diagram kernel, so that two equivalent
// expressions always share the same handle and the same rendering.
//
// An Engine is not safe for concurrent use.
package simplify

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"

	"github.com/dalzilio/robdd/internal/formula"
	"github.com/dalzilio/robdd/internal/kernel"
)

// Expr is a handle on a simplified expression. It is only meaningful for the
// Engine that produced it.
type Expr struct {
	node kernel.Node
}

// Engine owns the kernel used to represent expressions, together with the
// mapping between variable names and kernel levels. Levels follow the order in
// which variables are first seen by the engine.
type Engine struct {
	bdd      *kernel.BDD
	names    []string
	levels   map[string]int
	rendered map[kernel.Node]string
}

// New returns an engine with no declared variables. Options are passed to
// the kernel.
func New(options ...kernel.Option) (*Engine, error) {
	bdd, err := kernel.New(0, options...)
	if err != nil {
		return nil, err
	}
	return &Engine{
		bdd:      bdd,
		levels:   make(map[string]int),
		rendered: make(map[kernel.Node]string),
	}, nil
}

// ParseAndSimplify parses text and returns the corresponding simplified
// expression. Errors from the parser match formula.ErrSyntax.
func (e *Engine) ParseAndSimplify(text string) (Expr, error) {
	ast, err := formula.Parse(text)
	if err != nil {
		return Expr{}, err
	}
	if err := e.declare(formula.Variables(text)); err != nil {
		return Expr{}, err
	}
	n := e.compile(ast)
	if err := e.failed(); err != nil {
		return Expr{}, fmt.Errorf("cannot simplify %q: %w", text, err)
	}
	return Expr{node: n}, nil
}

// failed returns the error status of the kernel and clears it, so that the
// engine stays usable after a failed operation.
func (e *Engine) failed() error {
	if !e.bdd.Errored() {
		return nil
	}
	err := e.bdd.Err()
	e.bdd.ClearError()
	return err
}

// declare adds a kernel level for each new variable.
func (e *Engine) declare(vars []string) error {
	for _, v := range vars {
		if _, ok := e.levels[v]; !ok {
			e.levels[v] = len(e.names)
			e.names = append(e.names, v)
		}
	}
	if len(e.names) == e.bdd.Varnum() {
		return nil
	}
	return e.bdd.SetVarnum(len(e.names))
}

func (e *Engine) compile(ast *formula.Expr) kernel.Node {
	switch ast.Op {
	case formula.OpVar:
		return e.bdd.Ithvar(e.levels[ast.Name])
	case formula.OpNot:
		if ast.Left.Op == formula.OpVar {
			return e.bdd.NIthvar(e.levels[ast.Left.Name])
		}
		return e.bdd.Not(e.compile(ast.Left))
	}
	left := e.compile(ast.Left)
	right := e.compile(ast.Right)
	switch ast.Op {
	case formula.OpAnd:
		return e.bdd.Apply(left, right, kernel.OPand)
	case formula.OpOr:
		return e.bdd.Apply(left, right, kernel.OPor)
	case formula.OpImplies:
		return e.bdd.Apply(left, right, kernel.OPimp)
	default:
		return e.bdd.Apply(left, right, kernel.OPbiimp)
	}
}

// Substitute returns the expression obtained by replacing variable with the
// constant val in x. Substituting a variable unknown to the engine returns x.
func (e *Engine) Substitute(x Expr, variable string, val bool) (Expr, error) {
	level, ok := e.levels[variable]
	if !ok {
		return x, nil
	}
	n := e.bdd.Restrict(x.node, level, val)
	if err := e.failed(); err != nil {
		return Expr{}, fmt.Errorf("cannot substitute %s=%v: %w", variable, val, err)
	}
	return Expr{node: n}, nil
}

// IsConstant reports whether x is a constant and, if so, its value.
func (e *Engine) IsConstant(x Expr) (value bool, ok bool) {
	switch x.node {
	case kernel.True:
		return true, true
	case kernel.False:
		return false, true
	}
	return false, false
}

// Constant returns the expression for a boolean constant.
func (e *Engine) Constant(v bool) Expr {
	return Expr{node: e.bdd.From(v)}
}

// Count returns the number of assignments of the variables known to the
// engine that satisfy x.
func (e *Engine) Count(x Expr) *big.Int {
	return e.bdd.Satcount(x.node)
}

// Dump writes the kernel nodes reachable from x, one per line.
func (e *Engine) Dump(w io.Writer, x Expr) error {
	return e.bdd.Fprint(w, x.node)
}

// LogStats outputs the kernel statistics at debug level.
func (e *Engine) LogStats(msg string) {
	slog.Debug(msg, "variables", len(e.names), "nodes", e.bdd.Size(), "kernel", e.bdd.Stats())
}
