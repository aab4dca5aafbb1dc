// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package formula

import "strings"

// Rewrite returns an equivalent expression that only uses negation,
// conjunction and disjunction: (a -> b) becomes (~a | b) and (a <-> b) becomes
// ((a & b) | (~a & ~b)). The input is not modified; subtrees of the result may
// be shared.
func Rewrite(e *Expr) *Expr {
	switch e.Op {
	case OpVar:
		return e
	case OpNot:
		return Not(Rewrite(e.Left))
	}
	left := Rewrite(e.Left)
	right := Rewrite(e.Right)
	switch e.Op {
	case OpImplies:
		return Binary(OpOr, Not(left), right)
	case OpIff:
		return Binary(OpOr, Binary(OpAnd, left, right), Binary(OpAnd, Not(left), Not(right)))
	}
	return Binary(e.Op, left, right)
}

// Linearize returns the infix text of e. Negations are written ~(x) and
// binary operations are always parenthesized, as in ((a & b) | ~(c)).
func Linearize(e *Expr) string {
	var sb strings.Builder
	linearize(&sb, e)
	return sb.String()
}

func linearize(sb *strings.Builder, e *Expr) {
	switch e.Op {
	case OpVar:
		sb.WriteString(e.Name)
	case OpNot:
		sb.WriteString("~(")
		linearize(sb, e.Left)
		sb.WriteString(")")
	default:
		sb.WriteString("(")
		linearize(sb, e.Left)
		sb.WriteString(" ")
		sb.WriteString(e.Op.String())
		sb.WriteString(" ")
		linearize(sb, e.Right)
		sb.WriteString(")")
	}
}
