// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package kernel

import (
	"errors"
	"fmt"
	"testing"
)

func and(b *BDD, n ...Node) Node {
	res := True
	for _, v := range n {
		res = b.Apply(res, v, OPand)
	}
	return res
}

func or(b *BDD, n ...Node) Node {
	res := False
	for _, v := range n {
		res = b.Apply(res, v, OPor)
	}
	return res
}

// TestOperations implements the same tests than the bddtest program in the
// Buddy distribution. It uses function Allsat for checking that all assignments
// are detected.
func TestOperations(t *testing.T) {
	bdd, err := New(4, Cachesize(1000))
	if err != nil {
		t.Fatal(err)
	}
	varnum := 4

	check := func(x Node) error {
		allsatBDD := x
		allsatSumBDD := False
		// Calculate whole set of asignments and remove all assignments
		// from original set
		err := bdd.Allsat(x, func(varset []int) error {
			x := True
			for k, v := range varset {
				switch v {
				case 0:
					x = and(bdd, x, bdd.NIthvar(k))
				case 1:
					x = and(bdd, x, bdd.Ithvar(k))
				}
			}
			// Sum up all assignments
			allsatSumBDD = or(bdd, allsatSumBDD, x)
			// Remove assignment from initial set
			allsatBDD = and(bdd, allsatBDD, bdd.Not(x))
			return nil
		})
		if err != nil {
			return err
		}
		// Now the summed set should be equal to the original set and the
		// subtracted set should be empty
		if allsatSumBDD != x {
			return fmt.Errorf("AllSat sum is not the initial BDD")
		}
		if allsatBDD != False {
			return fmt.Errorf("AllSat is not False")
		}
		return nil
	}

	a := bdd.Ithvar(0)
	b := bdd.Ithvar(1)
	c := bdd.Ithvar(2)
	d := bdd.Ithvar(3)
	na := bdd.NIthvar(0)
	nb := bdd.NIthvar(1)
	nc := bdd.NIthvar(2)
	nd := bdd.NIthvar(3)

	tests := []struct {
		name string
		n    Node
	}{
		{"true", True},
		{"false", False},
		{"a & b | !a & !b", or(bdd, and(bdd, a, b), and(bdd, na, nb))},
		{"a & b | c & d", or(bdd, and(bdd, a, b), and(bdd, c, d))},
		{"a & !b | a & !d | a & b & !c", or(bdd, and(bdd, a, nb), and(bdd, a, nd), and(bdd, a, b, nc))},
		{"a <=> c", bdd.Apply(a, c, OPbiimp)},
		{"b => d", bdd.Apply(b, d, OPimp)},
		{"a ^ d", bdd.Apply(a, d, OPxor)},
	}
	for i := 0; i < varnum; i++ {
		tests = append(tests, struct {
			name string
			n    Node
		}{fmt.Sprintf("x%d", i), bdd.Ithvar(i)})
		tests = append(tests, struct {
			name string
			n    Node
		}{fmt.Sprintf("!x%d", i), bdd.NIthvar(i)})
	}
	for _, tt := range tests {
		if err := check(tt.n); err != nil {
			t.Errorf("%s: %s", tt.name, err)
		}
	}
	if bdd.Errored() {
		t.Errorf("unexpected error: %s", bdd.Err())
	}
}

func TestCanonicity(t *testing.T) {
	bdd, _ := New(3)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	// (a | b) & c == (a & c) | (b & c)
	left := and(bdd, or(bdd, a, b), c)
	right := or(bdd, and(bdd, a, c), and(bdd, b, c))
	if left != right {
		t.Errorf("distributivity: expected same node, actual %s and %s", bdd.Print(left), bdd.Print(right))
	}
	if n := or(bdd, a, bdd.Not(a)); n != True {
		t.Errorf("a | !a: expected True, actual %s", bdd.Print(n))
	}
	if n := bdd.Not(bdd.Not(b)); n != b {
		t.Errorf("!!b: expected %d, actual %d", b, n)
	}
}

func TestRestrict(t *testing.T) {
	bdd, _ := New(3)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := or(bdd, and(bdd, a, b), c)
	tests := []struct {
		level    int
		val      bool
		expected Node
	}{
		{0, true, or(bdd, b, c)},
		{0, false, c},
		{1, true, or(bdd, a, c)},
		{2, true, True},
		{2, false, and(bdd, a, b)},
	}
	for _, tt := range tests {
		actual := bdd.Restrict(f, tt.level, tt.val)
		if actual != tt.expected {
			t.Errorf("restrict(%d, %v): expected %s, actual %s", tt.level, tt.val, bdd.Print(tt.expected), bdd.Print(actual))
		}
	}
	if n := bdd.Restrict(f, 5, true); n >= 0 || !bdd.Errored() {
		t.Errorf("restrict on unknown level: expected an error")
	}
}

func TestRestrictKeepsEntries(t *testing.T) {
	bdd, _ := New(3)
	a, b, c := bdd.Ithvar(0), bdd.Ithvar(1), bdd.Ithvar(2)
	f := or(bdd, and(bdd, a, b), and(bdd, b, c))
	hi := bdd.Restrict(f, 2, true)
	lo := bdd.Restrict(f, 2, false)
	hits := bdd.opHit
	// alternating restrictions must not drop the entries of each other
	if bdd.Restrict(f, 2, true) != hi || bdd.Restrict(f, 2, false) != lo {
		t.Fatalf("restrict: results changed after alternating restrictions")
	}
	if bdd.opHit == hits {
		t.Errorf("restrict: expected cache hits after alternating restrictions")
	}
	if hi != b || lo != and(bdd, a, b) {
		t.Errorf("restrict: expected %s and %s, actual %s and %s", bdd.Print(b), bdd.Print(and(bdd, a, b)), bdd.Print(hi), bdd.Print(lo))
	}
}

func TestSatcountAndSupport(t *testing.T) {
	bdd, _ := New(4)
	a, c := bdd.Ithvar(0), bdd.Ithvar(2)
	f := and(bdd, a, c)
	if s := bdd.Satcount(f).Int64(); s != 4 {
		t.Errorf("satcount(a & c): expected 4, actual %d", s)
	}
	if s := bdd.Satcount(True).Int64(); s != 16 {
		t.Errorf("satcount(true): expected 16, actual %d", s)
	}
	sup := bdd.Support(f)
	if len(sup) != 2 || sup[0] != 0 || sup[1] != 2 {
		t.Errorf("support(a & c): expected [0 2], actual %v", sup)
	}
	if sup := bdd.Support(True); len(sup) != 0 {
		t.Errorf("support(true): expected [], actual %v", sup)
	}
}

func TestSetVarnum(t *testing.T) {
	bdd, _ := New(2)
	a := bdd.Ithvar(0)
	if err := bdd.SetVarnum(4); err != nil {
		t.Fatal(err)
	}
	if bdd.Varnum() != 4 {
		t.Errorf("varnum: expected 4, actual %d", bdd.Varnum())
	}
	if bdd.Ithvar(0) != a {
		t.Errorf("existing variables must be kept when growing")
	}
	if bdd.level(int(True)) != 4 {
		t.Errorf("level of constants: expected 4, actual %d", bdd.level(int(True)))
	}
	if err := bdd.SetVarnum(1); err == nil {
		t.Errorf("shrinking the number of variables: expected an error")
	}
}

func TestMaxnodesize(t *testing.T) {
	bdd, _ := New(6, Maxnodesize(16))
	n := True
	for i := 0; i < 6; i++ {
		n = bdd.Apply(n, bdd.Apply(bdd.Ithvar(i), bdd.Ithvar((i+1)%6), OPxor), OPand)
	}
	if !errors.Is(bdd.Err(), ErrMemory) {
		t.Errorf("expected ErrMemory, actual %v", bdd.Err())
	}
	bdd.ClearError()
	if bdd.Errored() {
		t.Errorf("error status should be cleared")
	}
}

func TestEval(t *testing.T) {
	bdd, _ := New(2)
	f := bdd.Apply(bdd.Ithvar(0), bdd.Ithvar(1), OPimp)
	tests := []struct {
		x, y     bool
		expected Node
	}{
		{false, false, True},
		{true, false, False},
		{true, true, True},
	}
	for _, tt := range tests {
		actual := bdd.Eval(f, func(level int) bool {
			if level == 0 {
				return tt.x
			}
			return tt.y
		})
		if actual != tt.expected {
			t.Errorf("eval(%v, %v): expected %d, actual %d", tt.x, tt.y, tt.expected, actual)
		}
	}
}
