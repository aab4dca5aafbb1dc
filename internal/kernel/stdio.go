// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package kernel

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Stats returns information about the kernel: size of the node table and
// usage of the caches.
func (b *BDD) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	res += b.cacheStat.String()
	return res
}

// Prints information about the cache performance. The information contains the
// number of accesses to the unique node table and the number of times a node
// was (not) found there. Hit and miss count is also given for the operator
// caches.
func (c cacheStat) String() string {
	res := fmt.Sprintf("Unique Access:  %d\n", c.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", c.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", c.uniqueMiss)
	res += fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d", c.opMiss)
	return res
}

// Print returns a one-line description of node n.
func (b *BDD) Print(n Node) string {
	switch {
	case n == False:
		return "False"
	case n == True:
		return "True"
	case n < 0:
		return "Error"
	case int(n) >= len(b.nodes):
		return fmt.Sprintf("Error (%d not a valid index)", n)
	}
	return fmt.Sprintf("(%d[%d] ? %d : %d)", n, b.nodes[n].level, b.nodes[n].low, b.nodes[n].high)
}

// Fprint outputs a textual representation of the nodes reachable from n, one
// node per line and in increasing order of id.
func (b *BDD) Fprint(w io.Writer, n Node) error {
	if b.err != nil {
		fmt.Fprintf(w, "ERROR: %s\n", b.err)
		return b.err
	}
	if n < 2 {
		fmt.Fprintln(w, b.Print(n))
		return nil
	}
	fmt.Fprintf(w, "node: %d\n", n)
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	err := b.Allnodes(func(id, level, low, high int) error {
		if id > 1 {
			fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\n", id, level, low, high)
		}
		return nil
	}, n)
	if err != nil {
		return err
	}
	return tw.Flush()
}
