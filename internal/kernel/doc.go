// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package kernel implements a small hash-consed table of Binary Decision Diagram
nodes, used as the decision procedure behind the formula simplifier.

Basics

A kernel has a number of variables, Varnum, that can only grow (see
SetVarnum). Each variable is identified by an integer index in the interval
[0..Varnum), called a level. Most operations return a Node, that is the index
of a "vertex" in the node table, with the convention that 1 (respectively 0)
is the index of the constant function True (respectively False).

Nodes are never reclaimed: a kernel lives as long as the diagram that owns it
and is dropped as a whole. This is why we do not need reference counting or
garbage collection, unlike the BuDDy library from which the main algorithms
(makenode, apply, quantification-like restriction and allsat) are adapted.

Unicity table

We use a standard Go runtime hashmap, keyed by the triplet (level, low, high),
to guarantee that there is at most one node for each triplet. Results of
operations are memoized in fixed-size caches indexed by a perfect hash of
their operands (see hashing.go).
*/
package kernel
