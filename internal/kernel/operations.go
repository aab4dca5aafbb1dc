// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package kernel

import (
	"fmt"
	"math/big"
	"sort"
)

// Not returns the negation of the expression corresponding to node n. It
// negates a BDD by exchanging all references to the zero-terminal with
// references to the one-terminal and vice versa.
func (b *BDD) Not(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Not (%d)", n)
	}
	return b.retnode(b.not(int(n)))
}

func (b *BDD) not(n int) int {
	if n < 0 {
		return -1
	}
	if n == 0 {
		return 1
	}
	if n == 1 {
		return 0
	}
	// The hash for a not operation is simply n
	if res := b.matchnot(n); res >= 0 {
		return res
	}
	low := b.not(b.low(n))
	high := b.not(b.high(n))
	res := b.makenode(b.level(n), low, high)
	return b.setnot(n, res)
}

// Apply performs the basic bdd operations with two operands. Left and right
// are the operand and op is the requested operation and must be one of the
// following:
//
//	Identifier    Description            Truth table
//
//	OPand         logical and            [0,0,0,1]
//	OPxor         logical xor            [0,1,1,0]
//	OPor          logical or             [0,1,1,1]
//	OPimp         implication            [1,1,0,1]
//	OPbiimp       equivalence            [1,0,0,1]
func (b *BDD) Apply(left Node, right Node, op Operator) Node {
	if b.checkptr(left) != nil {
		return b.seterror("wrong operand in call to Apply %s(left: %d, right: ...)", op, left)
	}
	if b.checkptr(right) != nil {
		return b.seterror("wrong operand in call to Apply %s(left: ..., right: %d)", op, right)
	}
	if op < OPand || op > OPbiimp {
		return b.seterror("unsupported operator %s in call to Apply", op)
	}
	b.applycache.op = op
	return b.retnode(b.apply(int(left), int(right)))
}

func (b *BDD) apply(left int, right int) int {
	if left < 0 || right < 0 {
		return -1
	}
	switch b.applycache.op {
	case OPand:
		if left == right {
			return left
		}
		if (left == 0) || (right == 0) {
			return 0
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	case OPor:
		if left == right {
			return left
		}
		if (left == 1) || (right == 1) {
			return 1
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPxor:
		if left == right {
			return 0
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPimp:
		if left == 0 {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return 1
		}
		if left == right {
			return 1
		}
	case OPbiimp:
		if left == right {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	}

	// we check for errors
	if left < 2 && right < 2 {
		return opres[b.applycache.op][left][right]
	}
	if res := b.matchapply(left, right); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res int
	switch {
	case leftlvl == rightlvl:
		low := b.apply(b.low(left), b.low(right))
		high := b.apply(b.high(left), b.high(right))
		res = b.makenode(leftlvl, low, high)
	case leftlvl < rightlvl:
		low := b.apply(b.low(left), right)
		high := b.apply(b.high(left), right)
		res = b.makenode(leftlvl, low, high)
	default:
		low := b.apply(left, b.low(right))
		high := b.apply(left, b.high(right))
		res = b.makenode(rightlvl, low, high)
	}
	return b.setapply(left, right, res)
}

// Restrict returns the cofactor of n obtained by fixing the variable at the
// given level to val.
func (b *BDD) Restrict(n Node, level int, val bool) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Restrict (%d)", n)
	}
	if level < 0 || int32(level) >= b.varnum {
		return b.seterror("unknown variable used (%d) in call to Restrict", level)
	}
	// entries are tagged with the restriction they were computed for
	b.restrictcache.id = level<<1 + 1
	if val {
		b.restrictcache.id++
	}
	return b.retnode(b.restrict(int(n), int32(level), val))
}

func (b *BDD) restrict(n int, level int32, val bool) int {
	if n < 2 || b.level(n) > level {
		return n
	}
	if b.level(n) == level {
		if val {
			return b.high(n)
		}
		return b.low(n)
	}
	if res := b.matchrestrict(n); res >= 0 {
		return res
	}
	low := b.restrict(b.low(n), level, val)
	high := b.restrict(b.high(n), level, val)
	return b.setrestrict(n, b.makenode(b.level(n), low, high))
}

// Eval returns the constant obtained by following the path selected by
// assignment, which gives a value to each level.
func (b *BDD) Eval(n Node, assignment func(level int) bool) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong operand in call to Eval (%d)", n)
	}
	i := int(n)
	for i > 1 {
		if assignment(int(b.level(i))) {
			i = b.high(i)
		} else {
			i = b.low(i)
		}
	}
	return Node(i)
}

// Support returns the sorted list of levels that occur in the nodes
// reachable from n.
func (b *BDD) Support(n Node) []int {
	if b.checkptr(n) != nil {
		return nil
	}
	seen := make(map[int]bool)
	levels := make(map[int32]bool)
	var visit func(i int)
	visit = func(i int) {
		if i < 2 || seen[i] {
			return
		}
		seen[i] = true
		levels[b.level(i)] = true
		visit(b.low(i))
		visit(b.high(i))
	}
	visit(int(n))
	res := make([]int, 0, len(levels))
	for l := range levels {
		res = append(res, int(l))
	}
	sort.Ints(res)
	return res
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n. We return a result using arbitrary-precision
// arithmetic to avoid possible overflows.
func (b *BDD) Satcount(n Node) *big.Int {
	res := big.NewInt(0)
	if b.checkptr(n) != nil {
		b.seterror("wrong operand in call to Satcount (%d)", n)
		return res
	}
	// We compute 2^level with a bit shift 1 << level
	res.SetBit(res, int(b.level(int(n))), 1)
	satc := make(map[int]*big.Int)
	return res.Mul(res, b.satcount(int(n), satc))
}

func (b *BDD) satcount(n int, satc map[int]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	// we use satc to memoize the value of satcount for each nodes
	res, ok := satc[n]
	if ok {
		return res
	}
	level := b.level(n)
	low := b.low(n)
	high := b.high(n)

	res = big.NewInt(0)
	two := big.NewInt(0)
	two.SetBit(two, int(b.level(low)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(low, satc)))
	two = big.NewInt(0)
	two.SetBit(two, int(b.level(high)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(high, satc)))
	satc[n] = res
	return res
}

// Allsat iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// each entry is either 0 if the variable is false, 1 if it is true, and -1 if
// it is a don't care. We stop and return an error if f returns an error at some
// point. The slice is reused between calls and must be copied to be kept.
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	if b.checkptr(n) != nil {
		return fmt.Errorf("wrong node in call to Allsat (%d)", n)
	}
	prof := make([]int, b.varnum)
	for k := range prof {
		prof[k] = -1
	}
	return b.allsat(int(n), prof, f)
}

func (b *BDD) allsat(n int, prof []int, f func([]int) error) error {
	if n == 1 {
		return f(prof)
	}
	if n == 0 {
		return nil
	}
	level := b.level(n)
	if low := b.low(n); low != 0 {
		prof[level] = 0
		for v := b.level(low) - 1; v > level; v-- {
			prof[v] = -1
		}
		if err := b.allsat(low, prof, f); err != nil {
			return err
		}
	}
	if high := b.high(n); high != 0 {
		prof[level] = 1
		for v := b.level(high) - 1; v > level; v-- {
			prof[v] = -1
		}
		if err := b.allsat(high, prof, f); err != nil {
			return err
		}
	}
	prof[level] = -1
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n. The parameters to function f are the id, level, and id's of
// the low and high successors of each node. The two constant nodes (True and
// False) have always the id 1 and 0, respectively. Nodes are visited in
// increasing order of id. We stop the computation and return an error if f
// returns an error at some point.
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	for _, v := range n {
		if b.checkptr(v) != nil {
			return fmt.Errorf("wrong node in call to Allnodes (%d)", v)
		}
	}
	seen := make([]bool, len(b.nodes))
	var mark func(i int)
	mark = func(i int) {
		if seen[i] {
			return
		}
		seen[i] = true
		if i > 1 {
			mark(b.low(i))
			mark(b.high(i))
		}
	}
	for _, v := range n {
		mark(int(v))
	}
	for k, ok := range seen {
		if !ok {
			continue
		}
		if err := f(k, int(b.level(k)), b.low(k), b.high(k)); err != nil {
			return err
		}
	}
	return nil
}

// retnode converts the result of an internal operation into a Node, checking
// that no error occurred.
func (b *BDD) retnode(n int) Node {
	if n < 0 || b.err != nil {
		if b.err == nil {
			b.seterror("unexpected error in operation")
		}
		return invalid
	}
	return Node(n)
}
