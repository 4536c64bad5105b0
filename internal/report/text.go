package report

import (
	"fmt"
	"io"
	"strings"

	"catalog-recon/internal/catalog/model"
)

var actionLabels = map[model.Action]string{
	model.ActionRemoveFirst:   "Remove first product",
	model.ActionRemoveSecond:  "Remove second product",
	model.ActionMergeOrRemove: "Merge or remove duplicate",
	model.ActionKeepBoth:      "Keep both (different variants)",
	model.ActionFixIdentifier: "Fix ID conflict",
	model.ActionManualReview:  "Manual review needed",
}

var sections = []struct {
	tier  model.Tier
	title string
}{
	{model.TierExact, "EXACT DUPLICATES"},
	{model.TierIdentifierConflict, "ID CONFLICTS"},
	{model.TierNearDuplicate, "SIMILAR DUPLICATES"},
}

// WriteText renders the duplicate analysis as a plain text report: one
// block per brand, a summary, then numbered cleanup actions.
func WriteText(w io.Writer, a model.Analysis) error {
	var b strings.Builder
	line := func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }

	line("PRODUCT DUPLICATE ANALYSIS REPORT")
	line("%s", strings.Repeat("=", 50))
	line("")

	for _, p := range a.Partitions {
		line("%s DUPLICATES (%d products):", strings.ToUpper(p.Brand), p.Count)
		line("%s", strings.Repeat("-", 40))
		if len(p.Findings) == 0 {
			line("No duplicates found.")
		}
		for _, s := range sections {
			var fs []model.ReviewedFinding
			for _, f := range p.Findings {
				if f.Tier == s.tier {
					fs = append(fs, f)
				}
			}
			if len(fs) == 0 {
				continue
			}
			line("")
			line("%s:", s.title)
			for _, f := range fs {
				line("  • %s vs %s", orNA(f.A.Name), orNA(f.B.Name))
				line("    Reason: %s", f.Reason)
			}
		}
		if len(p.Findings) > 0 {
			line("")
			line("RECOMMENDATIONS:")
			for _, f := range p.Findings {
				line("  • %s vs %s", orNA(f.A.Name), orNA(f.B.Name))
				line("    Action: %s", actionLabel(f.Recommendation.Action))
				if f.Recommendation.Rationale != "" {
					line("    Detail: %s", f.Recommendation.Rationale)
				}
			}
		}
		line("")
		line("Estimated count after cleanup: %d", p.EstimatedAfter)
		line("")
	}

	line("SUMMARY:")
	line("%s", strings.Repeat("-", 20))
	for _, p := range a.Partitions {
		line("• %s: %d → %d", p.Brand, p.Count, p.EstimatedAfter)
	}
	line("")
	line("Total: %d → ~%d", a.TotalBefore, a.TotalAfter)
	line("Expected reduction: ~%d products", a.TotalBefore-a.TotalAfter)

	line("")
	line("%s", strings.Repeat("=", 50))
	line("DETAILED RECOMMENDATIONS FOR CLEANUP:")
	line("%s", strings.Repeat("=", 50))
	for _, p := range a.Partitions {
		if len(p.Findings) == 0 {
			continue
		}
		line("")
		line("%s CLEANUP ACTIONS:", strings.ToUpper(p.Brand))
		line("%s", strings.Repeat("-", 30))
		for i, f := range p.Findings {
			line("")
			line("%d. DUPLICATE PAIR:", i+1)
			line("   Product A: %s (ID: %s)", f.A.Name, f.A.ID)
			line("   Product B: %s (ID: %s)", f.B.Name, f.B.ID)
			line("   Issue: %s", f.Reason)
			line("   Recommended Action: %s", f.Recommendation.Action)
			if f.Recommendation.Rationale != "" {
				line("   Details: %s", f.Recommendation.Rationale)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func actionLabel(a model.Action) string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return string(a)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
