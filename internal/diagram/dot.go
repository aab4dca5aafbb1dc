// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package diagram

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// WriteDot outputs the diagram of the given kind in the DOT format of
// GraphViz. Low edges are dashed and high edges are solid; highlighted nodes
// are filled. Nodes are listed in increasing order of identifier.
func (d *Diagram) WriteDot(w io.Writer, kind Kind) error {
	if err := d.AssignSteps(kind); err != nil {
		return err
	}
	root, _ := d.Root(kind)
	var ids []int
	d.walk(root, func(n *Node) {
		ids = append(ids, n.ID)
	})
	sort.Ints(ids)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", kind)
	for _, id := range ids {
		n := d.Node(id)
		if n.Terminal() {
			fmt.Fprintf(bw, "%q [shape=box, label=%q, style=filled, fillcolor=%s, height=0.3, width=0.3];\n",
				n.Identifier(), n.Text, dotcolor(n, "lightgray"))
			continue
		}
		fmt.Fprintf(bw, "%q %s\n", n.Identifier(), dotlabel(n))
		fmt.Fprintf(bw, "%q -> %q [style=%s];\n", n.Identifier(), d.Node(n.Low).Identifier(), StyleLow)
		fmt.Fprintf(bw, "%q -> %q [style=%s];\n", n.Identifier(), d.Node(n.High).Identifier(), StyleHigh)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotcolor(n *Node, normal string) string {
	if n.Highlight {
		return "gold"
	}
	return normal
}

func dotlabel(n *Node) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%s</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>, style=filled, fillcolor=%s];`, n.Var, n.Step, dotcolor(n, "lightblue"))
}
