package span

import "golang.org/x/text/width"

// RuneWidth returns the number of terminal cells r occupies.
//
// East-Asian "wide" and "fullwidth" runes (per the Unicode East Asian Width
// property, as classified by golang.org/x/text/width) occupy two cells;
// everything else, including all ASCII and East-Asian "narrow"/"halfwidth"
// runes, occupies one. Control characters, including tab, are treated as
// width 1 as well.
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
