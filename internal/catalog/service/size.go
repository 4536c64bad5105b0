package service

import (
	"regexp"
	"strings"
)

type sizePattern struct {
	re   *regexp.Regexp
	unit string
}

// quantity: 50, 2.5, 2,5. No leading word boundary, so "Serum30ml" counts.
const qty = `(\d+(?:[.,]\d+)?)`

// Priority order matters: the first pattern that matches anywhere wins.
var productSizePatterns = []sizePattern{
	{regexp.MustCompile(`(?i)` + qty + `\s*ml\b`), "ml"},
	{regexp.MustCompile(`(?i)` + qty + `\s*g\b`), "g"},
	{regexp.MustCompile(`(?i)` + qty + `\s*kg\b`), "kg"},
	{regexp.MustCompile(`(?i)` + qty + `\s*oz\b`), "oz"},
	{regexp.MustCompile(`(?i)` + qty + `\s*pieces?\b`), "pcs"},
	{regexp.MustCompile(`(?i)` + qty + `\s*pcs?\b`), "pcs"},
	{regexp.MustCompile(`(?i)` + qty + `\s*units?\b`), "units"},
}

// filename style, applied to hyphen separated tokens: "50ml" or "50", "ml"
var (
	reSlugFused = regexp.MustCompile(`^(\d+)(ml|gr|mg|g|l)$`)
	reSlugQty   = regexp.MustCompile(`^\d+$`)
	reSlugUnit  = regexp.MustCompile(`^(ml|gr|mg|g|l)$`)
)

var slugUnitCanon = map[string]string{"gr": "g"}

// ExtractSize isolates a size token from a product name. An explicit size
// field wins and leaves the name untouched.
func ExtractSize(name, explicit string) (residual, token string) {
	if e := strings.TrimSpace(explicit); e != "" {
		return name, strings.ToLower(e)
	}
	if name == "" {
		return "", ""
	}
	for _, p := range productSizePatterns {
		loc := p.re.FindStringSubmatchIndex(name)
		if loc == nil {
			continue
		}
		q := strings.Replace(name[loc[2]:loc[3]], ",", ".", 1)
		residual = collapseSpaces(name[:loc[0]] + " " + name[loc[1]:])
		return residual, q + p.unit
	}
	return name, ""
}

// ExtractSlugSize finds the first size token in a hyphen normalized string
// and returns the slug without it.
func ExtractSlugSize(slug string) (residual, token string) {
	parts := strings.Split(slug, string(SlugSep))
	for i, p := range parts {
		if m := reSlugFused.FindStringSubmatch(p); m != nil {
			return joinSlug(parts[:i], parts[i+1:]), m[1] + canonSlugUnit(m[2])
		}
		if reSlugQty.MatchString(p) && i+1 < len(parts) && reSlugUnit.MatchString(parts[i+1]) {
			return joinSlug(parts[:i], parts[i+2:]), p + canonSlugUnit(parts[i+1])
		}
	}
	return slug, ""
}

// BaseKey is the size-free slug of an identifier or file stem. Every size
// token is removed, not only the first.
func BaseKey(text string) string {
	s := NormalizeSlug(text)
	for {
		rest, tok := ExtractSlugSize(s)
		if tok == "" {
			return s
		}
		s = rest
	}
}

func canonSlugUnit(u string) string {
	if c, ok := slugUnitCanon[u]; ok {
		return c
	}
	return u
}

func joinSlug(a, b []string) string {
	out := make([]string, 0, len(a)+len(b))
	for _, p := range a {
		if p != "" {
			out = append(out, p)
		}
	}
	for _, p := range b {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, string(SlugSep))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
