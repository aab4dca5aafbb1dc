// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package simplify

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/dalzilio/robdd/internal/kernel"
)

// _QMLIMIT is the largest support for which we compute a minimal sum of
// products with the Quine-McCluskey method. Larger expressions are rendered
// from the paths of the diagram.
const _QMLIMIT = 8

// literal is a possibly negated variable.
type literal struct {
	name string
	neg  bool
}

func (l literal) String() string {
	if l.neg {
		return "~" + l.name
	}
	return l.name
}

// Render returns a deterministic text for x. Equivalent expressions have the
// same rendering. Constants render as True and False; other expressions are
// given in disjunctive or conjunctive normal form, whichever uses the fewest
// literals (the disjunctive form wins ties), for instance (a & b) | ~c.
//
// An error is returned, and nothing is memoized, when the kernel fails while
// computing the normal forms, for instance when it runs out of nodes.
func (e *Engine) Render(x Expr) (string, error) {
	switch x.node {
	case kernel.True:
		return "True", nil
	case kernel.False:
		return "False", nil
	}
	if s, ok := e.rendered[x.node]; ok {
		return s, nil
	}
	dnf, err := e.cover(x.node, false)
	if err != nil {
		return "", fmt.Errorf("cannot render: %w", err)
	}
	neg := e.bdd.Not(x.node)
	if err := e.failed(); err != nil {
		return "", fmt.Errorf("cannot render: %w", err)
	}
	cnf, err := e.cover(neg, true)
	if err != nil {
		return "", fmt.Errorf("cannot render: %w", err)
	}
	var s string
	if countLiterals(cnf) < countLiterals(dnf) {
		s = join(cnf, " | ", " & ")
	} else {
		s = join(dnf, " & ", " | ")
	}
	e.rendered[x.node] = s
	return s, nil
}

// support returns the names of the variables n depends on, sorted by name so
// that the result does not depend on the order of levels in the kernel.
func (e *Engine) support(n kernel.Node) []string {
	levels := e.bdd.Support(n)
	names := make([]string, len(levels))
	for k, l := range levels {
		names[k] = e.names[l]
	}
	sort.Strings(names)
	return names
}

// cover returns a list of implicants of n whose disjunction is n. When
// negate is true, every literal is negated, which turns a cover of ~f into
// the clauses of a conjunctive form of f.
func (e *Engine) cover(n kernel.Node, negate bool) ([][]literal, error) {
	names := e.support(n)
	if err := e.failed(); err != nil {
		return nil, err
	}
	if len(names) <= _QMLIMIT {
		res := e.minimalCover(n, names, negate)
		return res, e.failed()
	}
	return e.pathCover(n, names, negate)
}

// implicant is a cube over at most _QMLIMIT variables: bit i of val is the
// value of variable i, and bit i of mask is set when variable i is absent.
type implicant struct {
	val  int
	mask int
}

func (p implicant) covers(m int) bool {
	return m&^p.mask == p.val
}

func (p implicant) size(k int) int {
	return k - bits.OnesCount(uint(p.mask))
}

// minimalCover computes the prime implicants of n with the Quine-McCluskey
// method, then selects the essential ones and completes the cover greedily.
func (e *Engine) minimalCover(n kernel.Node, names []string, negate bool) [][]literal {
	k := len(names)
	levels := make([]int, k)
	for i, v := range names {
		levels[i] = e.levels[v]
	}
	var minterms []int
	for m := 0; m < 1<<k; m++ {
		val := make(map[int]bool, k)
		for i := 0; i < k; i++ {
			val[levels[i]] = m&(1<<i) != 0
		}
		if e.bdd.Eval(n, func(level int) bool { return val[level] }) == kernel.True {
			minterms = append(minterms, m)
		}
	}
	primes := primeImplicants(minterms)
	sort.Slice(primes, func(i, j int) bool {
		si, sj := primes[i].size(k), primes[j].size(k)
		if si != sj {
			return si < sj
		}
		if primes[i].mask != primes[j].mask {
			return primes[i].mask < primes[j].mask
		}
		return primes[i].val < primes[j].val
	})

	var chosen []implicant
	covered := make(map[int]bool)
	take := func(p implicant) {
		chosen = append(chosen, p)
		for _, m := range minterms {
			if p.covers(m) {
				covered[m] = true
			}
		}
	}
	// essential primes
	for _, m := range minterms {
		if covered[m] {
			continue
		}
		var only implicant
		count := 0
		for _, p := range primes {
			if p.covers(m) {
				only = p
				count++
			}
		}
		if count == 1 {
			take(only)
		}
	}
	// greedy completion
	for len(covered) < len(minterms) {
		best, bestgain := implicant{}, 0
		for _, p := range primes {
			gain := 0
			for _, m := range minterms {
				if !covered[m] && p.covers(m) {
					gain++
				}
			}
			if gain > bestgain {
				best, bestgain = p, gain
			}
		}
		take(best)
	}

	res := make([][]literal, 0, len(chosen))
	for _, p := range chosen {
		term := make([]literal, 0, p.size(k))
		for i := 0; i < k; i++ {
			if p.mask&(1<<i) != 0 {
				continue
			}
			neg := p.val&(1<<i) == 0
			term = append(term, literal{names[i], neg != negate})
		}
		res = append(res, term)
	}
	return res
}

// primeImplicants merges implicants differing in exactly one variable until
// no merge is possible. Implicants that were never merged are prime.
func primeImplicants(minterms []int) []implicant {
	current := make(map[implicant]bool, len(minterms))
	for _, m := range minterms {
		current[implicant{val: m}] = false
	}
	var primes []implicant
	for len(current) > 0 {
		next := make(map[implicant]bool)
		list := make([]implicant, 0, len(current))
		for p := range current {
			list = append(list, p)
		}
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				p, q := list[i], list[j]
				if p.mask != q.mask {
					continue
				}
				diff := p.val ^ q.val
				if bits.OnesCount(uint(diff)) != 1 {
					continue
				}
				current[p] = true
				current[q] = true
				next[implicant{val: p.val &^ diff, mask: p.mask | diff}] = false
			}
		}
		for p, merged := range current {
			if !merged {
				primes = append(primes, p)
			}
		}
		current = next
	}
	return primes
}

// pathCover returns one implicant per path to True in the kernel, dropping
// the implicants subsumed by another one.
func (e *Engine) pathCover(n kernel.Node, names []string, negate bool) ([][]literal, error) {
	var cubes [][]literal
	err := e.bdd.Allsat(n, func(prof []int) error {
		var term []literal
		for _, v := range names {
			switch prof[e.levels[v]] {
			case 0:
				term = append(term, literal{v, !negate})
			case 1:
				term = append(term, literal{v, negate})
			}
		}
		cubes = append(cubes, term)
		return nil
	})
	if ferr := e.failed(); ferr != nil {
		return nil, ferr
	}
	if err != nil {
		return nil, err
	}
	res := make([][]literal, 0, len(cubes))
	for i, c := range cubes {
		subsumed := false
		for j, d := range cubes {
			if i != j && len(d) < len(c) && contains(c, d) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			res = append(res, c)
		}
	}
	return res, nil
}

// contains reports whether every literal of d occurs in c. Both slices are
// sorted by name.
func contains(c, d []literal) bool {
	i := 0
	for _, l := range d {
		for i < len(c) && c[i].name < l.name {
			i++
		}
		if i == len(c) || c[i] != l {
			return false
		}
	}
	return true
}

func countLiterals(terms [][]literal) int {
	res := 0
	for _, t := range terms {
		res += len(t)
	}
	return res
}

// join renders a two-level formula. Terms are sorted so that the result does
// not depend on the order in which they were found.
func join(terms [][]literal, inner, outer string) string {
	parts := make([]string, len(terms))
	for k, t := range terms {
		lits := make([]string, len(t))
		for i, l := range t {
			lits[i] = l.String()
		}
		s := strings.Join(lits, inner)
		if len(terms) > 1 && len(t) > 1 {
			s = "(" + s + ")"
		}
		parts[k] = s
	}
	sort.Strings(parts)
	return strings.Join(parts, outer)
}
