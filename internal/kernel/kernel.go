// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package kernel

import "fmt"

// _MAXVAR is the maximal number of levels in the kernel.
const _MAXVAR int32 = 0x1FFFFF

// Node is a reference to an element of the node table. It represents the
// atomic unit of interactions and computations within a kernel.
type Node int

// Constant nodes. They are always kept at index 0 and 1 of the node table.
const (
	False Node = 0
	True  Node = 1
)

// invalid is returned by operations that failed; the reason is available
// with Err.
const invalid Node = -1

type node struct {
	level int32 // Order of the variable
	low   int   // Reference to the false branch
	high  int   // Reference to the true branch
}

// triple is the key of the unicity table.
type triple struct {
	level int32
	low   int
	high  int
}

// BDD is a table of hash-consed decision nodes together with the caches used
// by the operations over them. A BDD is not safe for concurrent use.
type BDD struct {
	nodes        []node         // List of all the nodes. Constants are always kept at index 0 and 1
	unique       map[triple]int // Unicity table, used to associate each triplet to a single node
	varnum       int32          // Number of variables
	varset       [][2]int       // Positive and negative literal for each variable
	produced     int            // Total number of new nodes ever produced
	cachedfor    int            // Size of the node table when caches were last sized
	err          error          // Error status to help chain operations
	cacheStat                   // Information about the caches
	applycache                  // Cache for apply and not results
	restrictcache               // Cache for restrict results
	configs                     // Configurable parameters
}

// New returns a new kernel with varnum variables. Options can be used to size
// the node table and the caches (see Nodesize, Cachesize, Cacheratio and
// Maxnodesize).
func New(varnum int, options ...Option) (*BDD, error) {
	if varnum < 0 || int32(varnum) > _MAXVAR {
		return nil, fmt.Errorf("bad number of variable (%d)", varnum)
	}
	c := makeconfigs(varnum)
	for _, f := range options {
		f(c)
	}
	b := &BDD{configs: *c}
	b.nodes = make([]node, 2, b.nodesize)
	b.unique = make(map[triple]int, b.nodesize)
	b.nodes[0] = node{level: 0, low: 0, high: 0}
	b.nodes[1] = node{level: 0, low: 1, high: 1}
	b.cacheinit()
	if err := b.SetVarnum(varnum); err != nil {
		return nil, err
	}
	return b, nil
}

// SetVarnum sets the number of variables. It may be called more than once,
// but only to increase the number of variables. New variables are added
// after (below) the existing ones, so existing nodes stay valid.
func (b *BDD) SetVarnum(num int) error {
	inum := int32(num)
	if inum < b.varnum || inum > _MAXVAR {
		b.seterror("bad number of variable (%d) in SetVarnum", num)
		return b.err
	}
	// Constants always have the highest level.
	b.nodes[0].level = inum
	b.nodes[1].level = inum
	for k := b.varnum; k < inum; k++ {
		v0 := b.makenode(k, 0, 1)
		v1 := b.makenode(k, 1, 0)
		if v0 < 0 || v1 < 0 {
			b.seterror("cannot allocate new variable %d in SetVarnum", k)
			return b.err
		}
		b.varset = append(b.varset, [2]int{v0, v1})
	}
	b.varnum = inum
	return nil
}

// Varnum returns the number of defined variables.
func (b *BDD) Varnum() int {
	return int(b.varnum)
}

// Ithvar returns a node representing the i'th variable on success. The
// requested variable must be in the range [0..Varnum).
func (b *BDD) Ithvar(i int) Node {
	if (i < 0) || (int32(i) >= b.varnum) {
		return b.seterror("unknown variable used (%d) in call to Ithvar", i)
	}
	return Node(b.varset[i][0])
}

// NIthvar returns a node representing the negation of the i'th variable on
// success. See Ithvar for further info.
func (b *BDD) NIthvar(i int) Node {
	if (i < 0) || (int32(i) >= b.varnum) {
		return b.seterror("unknown variable used (%d) in call to NIthvar", i)
	}
	return Node(b.varset[i][1])
}

// From returns a (constant) Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return True
	}
	return False
}

// Size returns the number of nodes in the table, constants included.
func (b *BDD) Size() int {
	return len(b.nodes)
}

func (b *BDD) checkptr(n Node) error {
	if n < 0 || int(n) >= len(b.nodes) {
		b.seterror("illegal node reference (%d)", n)
		return b.err
	}
	return nil
}

func (b *BDD) level(n int) int32 {
	return b.nodes[n].level
}

func (b *BDD) low(n int) int {
	return b.nodes[n].low
}

func (b *BDD) high(n int) int {
	return b.nodes[n].high
}

// makenode returns the unique node (level, low, high), creating it when
// needed. It returns low when both branches are equal and a negative value
// if the table cannot grow.
func (b *BDD) makenode(level int32, low, high int) int {
	b.uniqueAccess++
	if low < 0 || high < 0 {
		return -1
	}
	if low == high {
		return low
	}
	key := triple{level, low, high}
	if res, ok := b.unique[key]; ok {
		b.uniqueHit++
		return res
	}
	b.uniqueMiss++
	if b.maxnodesize > 0 && len(b.nodes) >= b.maxnodesize {
		b.seterror("cannot create node (%d, %d, %d): %w", level, low, high, ErrMemory)
		return -1
	}
	res := len(b.nodes)
	b.nodes = append(b.nodes, node{level: level, low: low, high: high})
	b.unique[key] = res
	b.produced++
	if b.cacheratio > 0 && len(b.nodes) >= 2*b.cachedfor {
		b.cacheresize()
	}
	return res
}
