package service

import (
	"fmt"
	"strings"

	"catalog-recon/internal/catalog/model"
)

// Classifier finds duplicate candidates inside one partition (one brand).
type Classifier struct {
	opts model.Options
}

func NewClassifier(opts model.Options) *Classifier {
	return &Classifier{opts: opts.WithDefaults()}
}

// per-record comparison keys, computed once per Classify call
type dupKeys struct {
	name     string // trimmed display name
	norm     string // normalized full name
	residual string // normalized name without the size token
	size     string
	exact    string
}

func buildKeys(r model.Record) dupKeys {
	name := strings.TrimSpace(r.Name)
	res, size := ExtractSize(name, r.Size)
	k := dupKeys{
		name:     name,
		norm:     NormalizeName(name),
		residual: NormalizeName(res),
		size:     size,
	}
	k.exact = k.residual + "\x00" + k.size
	return k
}

// Classify runs the exact, identifier-conflict and near-duplicate passes and
// returns their findings in that order. Passes are independent, so one pair
// may be reported by more than one of them.
func (c *Classifier) Classify(records []model.Record) ([]model.Finding, error) {
	if records == nil {
		return nil, model.ErrNoRecords
	}
	keys := make([]dupKeys, len(records))
	for i, r := range records {
		keys[i] = buildKeys(r)
	}

	out := c.exactPass(records, keys)
	out = append(out, c.identifierPass(records, keys)...)
	out = append(out, c.nearPass(records, keys)...)
	return out, nil
}

func (c *Classifier) exactPass(records []model.Record, keys []dupKeys) []model.Finding {
	var out []model.Finding
	first := make(map[string]int)
	for i := range records {
		if keys[i].norm == "" {
			continue
		}
		j, ok := first[keys[i].exact]
		if !ok {
			first[keys[i].exact] = i
			continue
		}
		out = append(out, model.Finding{
			A:      records[j],
			B:      records[i],
			Tier:   model.TierExact,
			Score:  1,
			SizeA:  keys[j].size,
			SizeB:  keys[i].size,
			Reason: fmt.Sprintf("Exact name match (normalized): '%s' vs '%s'", records[i].Name, records[j].Name),
		})
	}
	return out
}

func (c *Classifier) identifierPass(records []model.Record, keys []dupKeys) []model.Finding {
	var out []model.Finding
	first := make(map[string]int)
	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			continue
		}
		j, ok := first[id]
		if !ok {
			first[id] = i
			continue
		}
		if keys[j].name == keys[i].name {
			continue
		}
		out = append(out, model.Finding{
			A:      records[j],
			B:      r,
			Tier:   model.TierIdentifierConflict,
			Score:  Similarity(keys[j].norm, keys[i].norm),
			SizeA:  keys[j].size,
			SizeB:  keys[i].size,
			Reason: fmt.Sprintf("Same product_id %q with different names: '%s' vs '%s'", id, records[j].Name, r.Name),
		})
	}
	return out
}

// nearPass is O(n²) over the partition; partitions are one brand's catalog.
func (c *Classifier) nearPass(records []model.Record, keys []dupKeys) []model.Finding {
	var out []model.Finding
	for i := range records {
		if keys[i].name == "" {
			continue
		}
		for j := i + 1; j < len(records); j++ {
			if keys[j].name == "" {
				continue
			}
			// same residual is pass 1's business unless both sizes are
			// present and differ
			if keys[i].residual == keys[j].residual && !isVariant(keys[i].size, keys[j].size) {
				continue
			}
			score := Similarity(keys[i].residual, keys[j].residual)
			if score < c.opts.NearDuplicateThreshold {
				continue
			}
			reason := fmt.Sprintf("Similar names: '%s' vs '%s' - Similarity: %.2f", records[i].Name, records[j].Name, score)
			if isVariant(keys[i].size, keys[j].size) {
				if score < c.opts.VariantThreshold {
					continue
				}
				reason = fmt.Sprintf("Similar names with different sizes - likely variants: '%s' (%s) vs '%s' (%s) - Similarity: %.2f",
					records[i].Name, keys[i].size, records[j].Name, keys[j].size, score)
			}
			out = append(out, model.Finding{
				A:      records[i],
				B:      records[j],
				Tier:   model.TierNearDuplicate,
				Score:  score,
				SizeA:  keys[i].size,
				SizeB:  keys[j].size,
				Reason: reason,
			})
		}
	}
	return out
}

func isVariant(a, b string) bool { return a != "" && b != "" && a != b }

// Recommend derives the suggested resolution for a finding. Ties and
// identifier conflicts are never resolved automatically.
func Recommend(f model.Finding) model.Recommendation {
	switch f.Tier {
	case model.TierExact:
		a, b := Completeness(f.A), Completeness(f.B)
		rec := model.Recommendation{ScoreA: a, ScoreB: b}
		switch {
		case a > b:
			rec.Action = model.ActionRemoveSecond
			rec.Rationale = fmt.Sprintf("Product 1 has more complete data (score: %d vs %d)", a, b)
		case b > a:
			rec.Action = model.ActionRemoveFirst
			rec.Rationale = fmt.Sprintf("Product 2 has more complete data (score: %d vs %d)", b, a)
		default:
			rec.Action = model.ActionMergeOrRemove
			rec.Rationale = "Both products have similar completeness - manual review needed"
		}
		return rec
	case model.TierNearDuplicate:
		if isVariant(f.SizeA, f.SizeB) {
			return model.Recommendation{Action: model.ActionKeepBoth, Rationale: "Different sizes - legitimate product variants"}
		}
		return model.Recommendation{Action: model.ActionManualReview, Rationale: "Similar names - manual review required"}
	case model.TierIdentifierConflict:
		return model.Recommendation{Action: model.ActionFixIdentifier, Rationale: "Same product_id with different products - needs unique IDs"}
	default:
		return model.Recommendation{Action: model.ActionManualReview, Rationale: "Unknown finding type"}
	}
}

// Review pairs every finding with its recommendation.
func Review(findings []model.Finding) []model.ReviewedFinding {
	out := make([]model.ReviewedFinding, 0, len(findings))
	for _, f := range findings {
		out = append(out, model.ReviewedFinding{Finding: f, Recommendation: Recommend(f)})
	}
	return out
}
