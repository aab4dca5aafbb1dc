// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package diagram

import (
	"fmt"
	"sort"
	"strings"
)

// Assignment gives a value to some of the variables of a formula.
type Assignment map[string]bool

// ParseAssignment reads an assignment written as whitespace separated tokens
// of the form name:bit, with bit 0 or 1, as in "a:1 b:0".
func ParseAssignment(text string) (Assignment, error) {
	res := make(Assignment)
	for _, tok := range strings.Fields(text) {
		name, bit, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, &ParseError{Token: tok, Msg: "expected name:bit"}
		}
		if name == "" {
			return nil, &ParseError{Token: tok, Msg: "missing variable name"}
		}
		switch bit {
		case "0":
			res[name] = false
		case "1":
			res[name] = true
		default:
			return nil, &ParseError{Token: tok, Msg: fmt.Sprintf("bit must be 0 or 1, found %q", bit)}
		}
	}
	return res, nil
}

// String returns the assignment in the format accepted by ParseAssignment,
// with variables sorted by name.
func (a Assignment) String() string {
	names := make([]string, 0, len(a))
	for v := range a {
		names = append(names, v)
	}
	sort.Strings(names)
	var sb strings.Builder
	for k, v := range names {
		if k > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v)
		if a[v] {
			sb.WriteString(":1")
		} else {
			sb.WriteString(":0")
		}
	}
	return sb.String()
}

// Highlighted returns the assignment applied by the last call to Highlight,
// or nil.
func (d *Diagram) Highlighted() Assignment {
	return d.highlighted
}

// Highlight marks every node of the diagram of the given kind that is
// consistent with values: we follow only the matching child of a node whose
// variable is assigned, and both children otherwise. The marks of a previous
// call are cleared first.
func (d *Diagram) Highlight(kind Kind, values Assignment) error {
	root, ok := d.Root(kind)
	if !ok {
		return fmt.Errorf("%w: highlight on a %s that was not built", ErrInvariant, kind)
	}
	if d.highlighted != nil {
		d.ClearHighlight()
	}
	visited := map[int]bool{}
	queue := []int{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		n := d.Node(id)
		n.Highlight = true
		if n.Terminal() {
			continue
		}
		if val, ok := values[n.Var]; ok {
			c := n.Low
			if val {
				c = n.High
			}
			if !visited[c] {
				queue = append(queue, c)
			}
			continue
		}
		if !visited[n.Low] {
			queue = append(queue, n.Low)
		}
		if !visited[n.High] {
			queue = append(queue, n.High)
		}
	}
	d.highlighted = make(Assignment, len(values))
	for k, v := range values {
		d.highlighted[k] = v
	}
	return nil
}

// ClearHighlight removes the marks from every node reachable from the roots
// of d.
func (d *Diagram) ClearHighlight() {
	for _, root := range d.roots {
		if root < 0 {
			continue
		}
		d.walk(root, func(n *Node) {
			n.Highlight = false
		})
	}
	d.highlighted = nil
}

// walk calls f once on every node reachable from root, in breadth-first
// order.
func (d *Diagram) walk(root int, f func(n *Node)) {
	visited := map[int]bool{root: true}
	queue := []int{root}
	for len(queue) > 0 {
		n := d.Node(queue[0])
		queue = queue[1:]
		f(n)
		for _, c := range [2]int{n.Low, n.High} {
			if c >= 0 && !visited[c] {
				visited[c] = true
				queue = append(queue, c)
			}
		}
	}
}
