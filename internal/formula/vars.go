// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package formula

import "regexp"

var identRegexp = regexp.MustCompile(`[a-z_][a-z0-9_]*`)

// Variables returns the distinct identifiers of text in the order of their
// first occurrence. It works on the raw text, so variables that disappear
// after simplification are still listed.
func Variables(text string) []string {
	seen := make(map[string]bool)
	var res []string
	for _, v := range identRegexp.FindAllString(text, -1) {
		if !seen[v] {
			seen[v] = true
			res = append(res, v)
		}
	}
	return res
}

// Occurrences returns the number of times each identifier appears in text.
func Occurrences(text string) map[string]int {
	res := make(map[string]int)
	for _, v := range identRegexp.FindAllString(text, -1) {
		res[v]++
	}
	return res
}
