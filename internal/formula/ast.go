// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package formula parses propositional formulas over lower-case identifiers
// with the connectives ~ (not), & (and), | (or), -> (implies) and <-> (iff),
// and rewrites them into the NOT/AND/OR fragment.
//
// Operators are listed from the highest to the lowest precedence. Negation is
// a prefix operator; conjunction, disjunction and equivalence associate to the
// left; implication associates to the right.
package formula

// Op is the kind of an expression node.
type Op int

const (
	OpVar Op = iota // Variable, leaf of the tree
	OpNot           // Negation
	OpAnd           // Conjunction
	OpOr            // Disjunction
	OpImplies       // Implication
	OpIff           // Equivalence
)

var opsymbols = [6]string{
	OpVar:     "",
	OpNot:     "~",
	OpAnd:     "&",
	OpOr:      "|",
	OpImplies: "->",
	OpIff:     "<->",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opsymbols) {
		return "?"
	}
	return opsymbols[op]
}

// Expr is a node in the syntax tree of a formula. Name is only set for
// variables; Left is the operand of a negation; binary operators use both
// Left and Right.
type Expr struct {
	Op    Op
	Name  string
	Left  *Expr
	Right *Expr
}

// Var returns a variable leaf.
func Var(name string) *Expr {
	return &Expr{Op: OpVar, Name: name}
}

// Not returns the negation of e.
func Not(e *Expr) *Expr {
	return &Expr{Op: OpNot, Left: e}
}

// Binary returns the expression (left op right).
func Binary(op Op, left, right *Expr) *Expr {
	return &Expr{Op: op, Left: left, Right: right}
}

// String returns the linearized form of e (see Linearize).
func (e *Expr) String() string {
	return Linearize(e)
}
