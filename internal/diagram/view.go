// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package diagram

import "fmt"

// NodeView is the exported description of a node. Optional fields are nil
// for terminals, or when the information is not set.
type NodeView struct {
	ID        string  `json:"id"`
	Var       *string `json:"var"`
	Expr      string  `json:"expr"`
	Level     int     `json:"level"`
	Step      *int    `json:"step"`
	Highlight *bool   `json:"highlight"`
	Low       *string `json:"low"`
	High      *string `json:"high"`
}

// View is the structural description of a diagram consumed by renderers.
// Nodes are keyed by their identifier: terminal_true, terminal_false or
// node_<id>.
type View struct {
	Nodes     map[string]NodeView `json:"nodes"`
	Root      string              `json:"root"`
	Variables []string            `json:"variables"`
	Type      string              `json:"type"`
}

// Edge is a link between two nodes of a view. Style is dashed for low edges
// and solid for high edges.
type Edge struct {
	Tail  string `json:"tail"`
	Head  string `json:"head"`
	Style string `json:"style"`
}

const (
	StyleLow  = "dashed"
	StyleHigh = "solid"
)

// AssignSteps numbers the internal nodes of the diagram of the given kind for
// presentation. The root gets step 0; then the children of a node are
// numbered when first seen, low before high, and expanded newest first.
// Terminals never get a step.
func (d *Diagram) AssignSteps(kind Kind) error {
	root, ok := d.Root(kind)
	if !ok {
		return fmt.Errorf("%w: steps on a %s that was not built", ErrInvariant, kind)
	}
	if d.Node(root).Terminal() {
		return nil
	}
	d.Node(root).Step = 0
	step := 1
	visited := map[int]bool{}
	stack := []int{root}
	for len(stack) > 0 {
		n := d.Node(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		low := d.Node(n.Low)
		pushlow := false
		if !low.Terminal() && !visited[n.Low] {
			visited[n.Low] = true
			low.Step = step
			step++
			pushlow = true
		}
		high := d.Node(n.High)
		if !high.Terminal() && !visited[n.High] {
			visited[n.High] = true
			high.Step = step
			step++
			stack = append(stack, n.High)
		}
		if pushlow {
			stack = append(stack, n.Low)
		}
	}
	return nil
}

// View returns the structural description of the diagram of the given kind,
// after numbering its nodes with AssignSteps.
func (d *Diagram) View(kind Kind) (*View, error) {
	if err := d.AssignSteps(kind); err != nil {
		return nil, err
	}
	root, _ := d.Root(kind)
	res := &View{
		Nodes:     make(map[string]NodeView),
		Root:      d.Node(root).Identifier(),
		Variables: d.Order(),
		Type:      kind.String(),
	}
	d.walk(root, func(n *Node) {
		v := NodeView{
			ID:    n.Identifier(),
			Expr:  n.Text,
			Level: n.Level,
		}
		if !n.Terminal() {
			name := n.Var
			v.Var = &name
			low := d.Node(n.Low).Identifier()
			high := d.Node(n.High).Identifier()
			v.Low, v.High = &low, &high
		}
		if n.Step >= 0 {
			step := n.Step
			v.Step = &step
		}
		if n.Highlight {
			hl := true
			v.Highlight = &hl
		}
		res.Nodes[v.ID] = v
	})
	return res, nil
}

// EdgeStyles returns the edges of the diagram of the given kind in
// breadth-first order, with the style used to draw them.
func (d *Diagram) EdgeStyles(kind Kind) ([]Edge, error) {
	root, ok := d.Root(kind)
	if !ok {
		return nil, fmt.Errorf("%w: edges of a %s that was not built", ErrInvariant, kind)
	}
	var res []Edge
	d.walk(root, func(n *Node) {
		if n.Terminal() {
			return
		}
		tail := n.Identifier()
		res = append(res,
			Edge{Tail: tail, Head: d.Node(n.Low).Identifier(), Style: StyleLow},
			Edge{Tail: tail, Head: d.Node(n.High).Identifier(), Style: StyleHigh})
	})
	return res, nil
}
