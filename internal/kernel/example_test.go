// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package kernel_test

import (
	"fmt"

	"github.com/dalzilio/robdd/internal/kernel"
)

// This example shows the basic usage of the package: create a kernel, compute
// some expressions and count the number of solutions.
func Example_basic() {
	bdd, _ := kernel.New(6, kernel.Nodesize(10000), kernel.Cachesize(3000))
	// n1 == x2 & x3 & x5
	n1 := bdd.Apply(bdd.Apply(bdd.Ithvar(2), bdd.Ithvar(3), kernel.OPand), bdd.Ithvar(5), kernel.OPand)
	// n2 == x1 | !x3 | x4
	n2 := bdd.Apply(bdd.Apply(bdd.Ithvar(1), bdd.NIthvar(3), kernel.OPor), bdd.Ithvar(4), kernel.OPor)
	// n3 == n1 & n2 with x3 fixed to true
	n3 := bdd.Restrict(bdd.Apply(n1, n2, kernel.OPand), 3, true)
	fmt.Printf("Number of sat. assignments: %s\n", bdd.Satcount(n3))
	// Output:
	// Number of sat. assignments: 12
}
