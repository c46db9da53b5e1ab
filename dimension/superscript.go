package dimension

import "strings"

var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻', '+': '⁺', '.': '·',
}

// superscript rewrites a formatted number with superscript characters.
// Characters without a superscript form are kept as they are.
func superscript(s string) string {
	var b strings.Builder
	for _, r := range s {
		if sup, ok := superscriptDigits[r]; ok {
			b.WriteRune(sup)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
