package service

import (
	"strings"

	"catalog-recon/internal/catalog/model"
)

// Completeness scores how much usable data a record carries. Only the
// relative order of two scores means anything.
func Completeness(r model.Record) int {
	score := 0
	for _, s := range []string{
		r.Name, r.Description, r.Brand, r.Size, r.Usage, r.MetaTitle, r.MetaDescription,
	} {
		score += textScore(s)
	}
	for _, l := range [][]string{r.Ingredients, r.Features, r.Benefits, r.Images} {
		score += len(l)
	}
	if r.Price != nil && *r.Price != 0 {
		score++
	}
	return score
}

func textScore(s string) int {
	words := len(strings.Fields(s))
	if words == 0 {
		return 0
	}
	return words/5 + 1
}
