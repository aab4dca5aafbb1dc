// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package diagram

import (
	"fmt"
	"strings"

	"github.com/dalzilio/robdd/internal/simplify"
)

// Kind selects one of the two diagrams that can be built for a formula.
type Kind int

const (
	BDD   Kind = iota // Unreduced decision tree
	ROBDD             // Reduced ordered diagram
)

func (k Kind) String() string {
	if k == BDD {
		return "BDD"
	}
	return "ROBDD"
}

// ParseKind returns the kind named by s, which is case insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "bdd":
		return BDD, nil
	case "robdd", "":
		return ROBDD, nil
	}
	return ROBDD, fmt.Errorf("unknown diagram type %q", s)
}

type residualKind int

const (
	residualExpression residualKind = iota
	residualConstant
)

// Residual is the value attached to a node: either a boolean constant or a
// handle on an expression of the simplifier.
type Residual struct {
	kind  residualKind
	value bool
	expr  simplify.Expr
}

// Constant returns the residual for the boolean constant v.
func Constant(v bool) Residual {
	return Residual{kind: residualConstant, value: v}
}

// Expression returns the residual for a simplified expression.
func Expression(x simplify.Expr) Residual {
	return Residual{kind: residualExpression, expr: x}
}

// IsConstant reports whether r is a constant and, if so, its value.
func (r Residual) IsConstant() (value bool, ok bool) {
	return r.value, r.kind == residualConstant
}

// Node is an element of a diagram. Terminal nodes have no variable and no
// children. Low and High are identifiers of nodes in the same arena, or -1.
type Node struct {
	ID        int
	Var       string
	Value     Residual
	Text      string
	Level     int
	Step      int // presentation order, -1 when unset
	Highlight bool
	Low       int
	High      int
}

// Terminal reports whether n is one of the two constant nodes.
func (n *Node) Terminal() bool {
	return n.Var == ""
}

// Identifier returns the stable name of n used in exported views.
func (n *Node) Identifier() string {
	if n.Terminal() {
		if v, _ := n.Value.IsConstant(); v {
			return "terminal_true"
		}
		return "terminal_false"
	}
	return fmt.Sprintf("node_%d", n.ID)
}

// arena stores the nodes of one build. Identifiers start at base, so that the
// arenas of successive builds of a Diagram never share an identifier. Nodes
// are never freed individually.
type arena struct {
	base  int
	nodes []Node
}

func (a *arena) alloc(n Node) int {
	n.ID = a.base + len(a.nodes)
	a.nodes = append(a.nodes, n)
	return n.ID
}

// at returns the node with identifier id, or nil if id is not in a.
func (a *arena) at(id int) *Node {
	if a == nil || id < a.base || id >= a.base+len(a.nodes) {
		return nil
	}
	return &a.nodes[id-a.base]
}

// next returns the first identifier after the nodes of a.
func (a *arena) next() int {
	return a.base + len(a.nodes)
}

func (a *arena) terminal(v bool, level int) int {
	text := "False"
	if v {
		text = "True"
	}
	return a.alloc(Node{Value: Constant(v), Text: text, Level: level, Step: -1, Low: -1, High: -1})
}
