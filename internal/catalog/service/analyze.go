package service

import (
	"sort"
	"strings"

	"catalog-recon/internal/catalog/model"
)

// Analyzer runs the classifier over every brand partition of a catalog.
type Analyzer struct {
	opts       model.Options
	classifier *Classifier
}

func NewAnalyzer(opts model.Options) *Analyzer {
	opts = opts.WithDefaults()
	return &Analyzer{opts: opts, classifier: NewClassifier(opts)}
}

// Partition groups records by trimmed brand. Brandless records are left
// out and counted. Each group keeps the input order.
func Partition(records []model.Record) (groups map[string][]model.Record, brands []string, skipped int) {
	groups = make(map[string][]model.Record)
	for _, r := range records {
		b := strings.TrimSpace(r.Brand)
		if b == "" {
			skipped++
			continue
		}
		if _, ok := groups[b]; !ok {
			brands = append(brands, b)
		}
		groups[b] = append(groups[b], r)
	}
	sort.Strings(brands)
	return groups, brands, skipped
}

// Analyze classifies each partition and estimates the catalog size after
// cleanup. only restricts the run to the named brands (case and accent
// insensitive); empty means all brands.
func (a *Analyzer) Analyze(records []model.Record, only []string) (model.Analysis, error) {
	if records == nil {
		return model.Analysis{}, model.ErrNoRecords
	}
	groups, brands, skipped := Partition(records)

	want := make(map[string]bool, len(only))
	for _, b := range only {
		if n := NormalizeName(b); n != "" {
			want[n] = true
		}
	}

	res := model.Analysis{
		TotalRecords:   len(records),
		Partitions:     make([]model.Partition, 0, len(brands)),
		Opts:           a.opts,
		SkippedNoBrand: skipped,
	}
	for _, brand := range brands {
		if len(want) > 0 && !want[NormalizeName(brand)] {
			continue
		}
		part := groups[brand]
		findings, err := a.classifier.Classify(part)
		if err != nil {
			return model.Analysis{}, err
		}
		p := model.Partition{
			Brand:    brand,
			Count:    len(part),
			Findings: Review(findings),
		}
		for _, f := range p.Findings {
			switch f.Tier {
			case model.TierExact:
				p.Exact++
			case model.TierIdentifierConflict:
				p.Conflicts++
			case model.TierNearDuplicate:
				p.NearDuplicates++
			}
		}
		p.EstimatedAfter = EstimateAfterCleanup(p.Count, p.Findings)
		res.TotalBefore += p.Count
		res.TotalAfter += p.EstimatedAfter
		res.Partitions = append(res.Partitions, p)
	}
	return res, nil
}

// EstimateAfterCleanup counts a remove recommendation as one record and a
// merge-or-remove as half of one.
func EstimateAfterCleanup(count int, findings []model.ReviewedFinding) int {
	removals := 0.0
	for _, f := range findings {
		switch f.Recommendation.Action {
		case model.ActionRemoveFirst, model.ActionRemoveSecond:
			removals++
		case model.ActionMergeOrRemove:
			removals += 0.5
		}
	}
	after := count - int(removals)
	if after < 0 {
		return 0
	}
	return after
}
