// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package order computes variable orders for decision diagrams: manual orders
// merged with the variables of a formula, a frequency heuristic and a local
// search (sifting) that minimizes a cost such as the size of a diagram.
package order

import (
	"sort"
	"strings"

	"github.com/dalzilio/robdd/internal/formula"
)

// ParseManual splits a textual order, such as "c a b", into variable names.
func ParseManual(text string) []string {
	return strings.Fields(text)
}

// Manual returns the names of supplied that belong to known, in the supplied
// order, followed by the remaining known variables in their original order.
// Unknown names and duplicates are dropped.
func Manual(known []string, supplied []string) []string {
	isknown := make(map[string]bool, len(known))
	for _, v := range known {
		isknown[v] = true
	}
	used := make(map[string]bool, len(known))
	res := make([]string, 0, len(known))
	for _, v := range supplied {
		if isknown[v] && !used[v] {
			used[v] = true
			res = append(res, v)
		}
	}
	for _, v := range known {
		if !used[v] {
			used[v] = true
			res = append(res, v)
		}
	}
	return res
}

// Frequency sorts known by decreasing number of occurrences in text. Ties
// keep the order of known.
func Frequency(text string, known []string) []string {
	occ := formula.Occurrences(text)
	res := make([]string, len(known))
	copy(res, known)
	sort.SliceStable(res, func(i, j int) bool {
		return occ[res[i]] > occ[res[j]]
	})
	return res
}
