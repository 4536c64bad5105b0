package service

import (
	"sort"

	"catalog-recon/internal/catalog/model"
)

// Matcher assigns primary images to products in three passes: direct
// filename, size-free base name, weighted fuzzy.
type Matcher struct {
	opts model.Options
}

func NewMatcher(opts model.Options) *Matcher {
	return &Matcher{opts: opts.WithDefaults()}
}

type productEntry struct {
	key  string
	base string
	name string // hyphen normalized display name
	pos  int
}

type candidate struct {
	product int
	image   int
	score   float64
}

// Match returns at most one assignment per product key and per image key
// across all passes. An item taken by an earlier pass is never offered to a
// later one.
func (m *Matcher) Match(products []model.Record, images []string) (model.MatchResult, error) {
	if products == nil {
		return model.MatchResult{}, model.ErrNoRecords
	}
	if images == nil {
		return model.MatchResult{}, model.ErrNoImages
	}

	idx := buildImageIndex(images, m.opts.ImageSuffix)

	// one entry per distinct non-empty identifier, first record wins
	var entries []productEntry
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		k := p.Key()
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		entries = append(entries, productEntry{
			key:  k,
			base: BaseKey(k),
			name: NormalizeSlug(p.Name),
			pos:  len(entries),
		})
	}
	matched := make([]bool, len(entries))

	res := model.MatchResult{
		TotalProducts: len(entries),
		TotalImages:   len(idx.entries),
		Opts:          m.opts,
	}
	assign := func(p, img int, tier model.Tier, score float64) {
		matched[p] = true
		idx.consumed[img] = true
		res.Assignments = append(res.Assignments, model.Assignment{
			ProductKey: entries[p].key,
			ImageKey:   idx.entries[img].key,
			Tier:       tier,
			Score:      score,
		})
	}

	// 1) direct: <id><suffix>
	for i, e := range entries {
		if img, ok := idx.direct(e.key); ok {
			assign(i, img, model.TierDirect, 1)
			res.Direct++
		}
	}

	// 2) base name
	for i, e := range entries {
		if matched[i] || e.base == "" {
			continue
		}
		if img, ok := idx.shortestFree(e.base); ok {
			assign(i, img, model.TierBaseName, 1)
			res.BaseName++
		}
	}

	// 3) fuzzy: greedy over all remaining pairs, best score first. This is
	// not a maximum-weight matching; a greedy pick can strand a better
	// global pairing.
	free := idx.free()
	var cands []candidate
	for i, e := range entries {
		if matched[i] || e.base == "" {
			continue
		}
		for _, img := range free {
			if img.base == "" {
				continue
			}
			score := m.opts.IDWeight * Similarity(e.base, img.base)
			if e.name != "" {
				score += m.opts.NameWeight * Similarity(e.name, img.base)
			}
			cands = append(cands, candidate{product: i, image: img.pos, score: score})
		}
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].score > cands[b].score })
	for _, c := range cands {
		if c.score <= m.opts.FuzzyThreshold {
			break
		}
		if matched[c.product] || idx.consumed[c.image] {
			continue
		}
		assign(c.product, c.image, model.TierFuzzy, c.score)
		res.Fuzzy++
	}

	// leftovers, input order
	done := make(map[string]bool, len(res.Assignments))
	for _, a := range res.Assignments {
		done[a.ProductKey] = true
	}
	for _, p := range products {
		if !done[p.Key()] {
			res.UnmatchedProducts = append(res.UnmatchedProducts, p)
		}
	}
	for _, e := range idx.entries {
		if !idx.consumed[e.pos] {
			res.UnmatchedImages = append(res.UnmatchedImages, e.key)
		}
	}
	return res, nil
}
