package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	NameSep = ' '
	SlugSep = '-'
)

// Locale letters that survive NFD + mark stripping, or that a caller might
// feed through before case folding. Only ı is strictly needed after the
// strip step; the rest keep the table explicit.
var localeLetters = map[rune]rune{
	'ç': 'c', 'Ç': 'c',
	'ğ': 'g', 'Ğ': 'g',
	'ı': 'i', 'İ': 'i',
	'ö': 'o', 'Ö': 'o',
	'ş': 's', 'Ş': 's',
	'ü': 'u', 'Ü': 'u',
}

var foldChain = func() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if rr, ok := localeLetters[r]; ok {
				return rr
			}
			return r
		}),
		norm.NFC,
	)
}

// Normalize is the canonical comparison form: lower case, no diacritics,
// Turkish letters folded to ASCII, every run of non letter/digit runes
// replaced by sep, no leading or trailing sep.
func Normalize(text string, sep rune) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(text)
	// transformers are stateful, build one per call
	if out, _, err := transform.String(foldChain(), s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteRune(sep)
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}
	return b.String()
}

// NormalizeName is the space separated form used for product names.
func NormalizeName(text string) string { return Normalize(text, NameSep) }

// NormalizeSlug is the hyphen separated form used for identifiers and file stems.
func NormalizeSlug(text string) string { return Normalize(text, SlugSep) }
