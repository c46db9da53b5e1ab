package registry

import "strings"

// Prefix is an SI multiplier applicable to metric units.
type Prefix struct {
	Name   string
	Symbol string
	Power  int // power of ten

	alts []string // other accepted spellings of the symbol
}

// Prefixes is the SI prefix table, largest first.
var Prefixes = []Prefix{
	{Name: "quetta", Symbol: "Q", Power: 30},
	{Name: "ronna", Symbol: "R", Power: 27},
	{Name: "yotta", Symbol: "Y", Power: 24},
	{Name: "zetta", Symbol: "Z", Power: 21},
	{Name: "exa", Symbol: "E", Power: 18},
	{Name: "peta", Symbol: "P", Power: 15},
	{Name: "tera", Symbol: "T", Power: 12},
	{Name: "giga", Symbol: "G", Power: 9},
	{Name: "mega", Symbol: "M", Power: 6},
	{Name: "kilo", Symbol: "k", Power: 3},
	{Name: "hecto", Symbol: "h", Power: 2},
	{Name: "deca", Symbol: "da", Power: 1},
	{Name: "deci", Symbol: "d", Power: -1},
	{Name: "centi", Symbol: "c", Power: -2},
	{Name: "milli", Symbol: "m", Power: -3},
	{Name: "micro", Symbol: "μ", Power: -6, alts: []string{"u", "\u00b5"}}, // ASCII u, MICRO SIGN µ
	{Name: "nano", Symbol: "n", Power: -9},
	{Name: "pico", Symbol: "p", Power: -12},
	{Name: "femto", Symbol: "f", Power: -15},
	{Name: "atto", Symbol: "a", Power: -18},
	{Name: "zepto", Symbol: "z", Power: -21},
	{Name: "yocto", Symbol: "y", Power: -24},
	{Name: "ronto", Symbol: "r", Power: -27},
	{Name: "quecto", Symbol: "q", Power: -30},
}

// prefixMatch is one way a prefix can be spelled at the front of a token.
type prefixMatch struct {
	prefix Prefix
	rest   string
}

// LookupPrefix finds a prefix by exact name or symbol. Names are matched
// case-insensitively, symbols are not (M is mega, m is milli).
func LookupPrefix(s string) (Prefix, bool) {
	for _, p := range Prefixes {
		if strings.EqualFold(s, p.Name) || s == p.Symbol {
			return p, true
		}
		for _, alt := range p.alts {
			if s == alt {
				return p, true
			}
		}
	}
	return Prefix{}, false
}

// StripPrefix removes the longest prefix spelling from the front of s.
func StripPrefix(s string) (string, Prefix, bool) {
	matches := prefixMatches(s)
	if len(matches) == 0 {
		return s, Prefix{}, false
	}
	return matches[0].rest, matches[0].prefix, true
}

// prefixMatches returns every prefix spelling found at the front of s,
// longest spelling first. The remainder is never empty.
func prefixMatches(s string) []prefixMatch {
	var matches []prefixMatch
	lower := strings.ToLower(s)
	for _, p := range Prefixes {
		spellings := append([]string{p.Name, p.Symbol}, p.alts...)
		for _, spelling := range spellings {
			if spelling == "" || len(spelling) >= len(s) {
				continue
			}
			head := s
			if spelling == p.Name {
				head = lower
			}
			if strings.HasPrefix(head, spelling) {
				matches = append(matches, prefixMatch{prefix: p, rest: s[len(spelling):]})
			}
		}
	}
	// insertion sort keeps table order among equal lengths
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && len(matches[j].rest) < len(matches[j-1].rest); j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	return matches
}
