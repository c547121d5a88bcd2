package textwidth

import "golang.org/x/text/width"

// Width returns the rendered length of s in half-width units, the measure the
// marketplace applies to title limits. East Asian Fullwidth, Wide and
// Ambiguous runes count as two units, everything else as one.
func Width(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide, width.EastAsianAmbiguous:
			n += 2
		default:
			n++
		}
	}
	return n
}
