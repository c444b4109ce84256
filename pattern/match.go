// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package pattern

import "regexp"

// Match reports whether name matches the entire shell pattern pat, as used by
// case arms. A malformed pattern never matches anything.
func Match(pat, name string) bool {
	expr, err := Regexp(pat, EntireString)
	if err != nil {
		return false
	}
	rx, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return rx.MatchString(name)
}

// matchesEmpty reports whether pat, compiled as an entire-string pattern,
// matches the empty string.
func matchesEmpty(pat string) (bool, error) {
	expr, err := Regexp(pat, EntireString)
	if err != nil {
		return false, err
	}
	rx, err := regexp.Compile(expr)
	if err != nil {
		return false, err
	}
	return rx.MatchString(""), nil
}

// TrimPrefix removes a prefix of s matching pat. When greedy is false, the
// shortest matching prefix is removed; when true, the longest is. It returns
// s unchanged if pat does not match any prefix of s.
//
// A pattern that matches the empty string never trims anything under
// shortest-match semantics: the empty prefix is always the shortest
// candidate, so naively trying prefixes from shortest to longest would strip
// zero characters, which is indistinguishable from "no match" and also
// wrong (a pattern like "*" is meant to match the rest of the string, not
// nothing, when asked for the longest prefix). Guarding on this up front
// keeps the shortest-match loop simple: once a pattern can match empty, the
// shortest non-degenerate behavior POSIX wants is "leave s unchanged".
func TrimPrefix(s, pat string, greedy bool) (string, error) {
	if !greedy {
		empty, err := matchesEmpty(pat)
		if err != nil {
			return "", err
		}
		if empty {
			return s, nil
		}
	}
	mode := Mode(0)
	if !greedy {
		mode = Shortest
	}
	expr, err := Regexp(pat, mode)
	if err != nil {
		return "", err
	}
	rx, err := regexp.Compile("^(?:" + expr + ")")
	if err != nil {
		return "", err
	}
	runes := []rune(s)
	if greedy {
		for i := len(runes); i >= 0; i-- {
			cand := string(runes[:i])
			if loc := rx.FindStringIndex(cand); loc != nil && loc[1] == len(cand) {
				return string(runes[i:]), nil
			}
		}
		return s, nil
	}
	for i := 0; i <= len(runes); i++ {
		cand := string(runes[:i])
		if loc := rx.FindStringIndex(cand); loc != nil && loc[1] == len(cand) {
			return string(runes[i:]), nil
		}
	}
	return s, nil
}

// TrimSuffix removes a suffix of s matching pat. When greedy is false, the
// shortest matching suffix is removed; when true, the longest is. It returns
// s unchanged if pat does not match any suffix of s.
//
// See TrimPrefix's doc comment for why patterns that match the empty string
// need a guard under shortest-match semantics.
func TrimSuffix(s, pat string, greedy bool) (string, error) {
	if !greedy {
		empty, err := matchesEmpty(pat)
		if err != nil {
			return "", err
		}
		if empty {
			return s, nil
		}
	}
	mode := Mode(0)
	if !greedy {
		mode = Shortest
	}
	expr, err := Regexp(pat, mode)
	if err != nil {
		return "", err
	}
	rx, err := regexp.Compile("(?:" + expr + ")$")
	if err != nil {
		return "", err
	}
	runes := []rune(s)
	if greedy {
		for i := 0; i <= len(runes); i++ {
			cand := string(runes[i:])
			if loc := rx.FindStringIndex(cand); loc != nil && loc[0] == 0 {
				return string(runes[:i]), nil
			}
		}
		return s, nil
	}
	for i := len(runes); i >= 0; i-- {
		cand := string(runes[i:])
		if loc := rx.FindStringIndex(cand); loc != nil && loc[0] == 0 {
			return string(runes[:i]), nil
		}
	}
	return s, nil
}
