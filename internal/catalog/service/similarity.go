package service

import "github.com/pmezard/go-difflib/difflib"

// Similarity is the Ratcliff/Obershelp ratio 2*M/(len(a)+len(b)) over runes,
// M being the total size of the matching blocks. Two empty strings are 1.
// Thresholds elsewhere are calibrated to this metric, so do not swap it for
// an edit distance.
//
// Longest-match tie-breaking depends on argument order, so the operands are
// put in lexical order first; that makes the ratio exactly symmetric.
func Similarity(a, b string) float64 {
	if b < a {
		a, b = b, a
	}
	// autojunk off: names are short and every rune counts
	m := difflib.NewMatcherWithJunk(runeSeq(a), runeSeq(b), false, nil)
	return m.Ratio()
}

func runeSeq(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
