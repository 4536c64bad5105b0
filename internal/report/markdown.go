package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"catalog-recon/internal/catalog/model"
)

// WriteMarkdown renders a match result: summary, tier breakdown, all
// assignments sorted by product key, then the leftovers.
func WriteMarkdown(w io.Writer, res model.MatchResult, now time.Time) error {
	var b strings.Builder
	line := func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }

	line("# Product Image Matching Report")
	line("Generated on: %s", now.Format("2006-01-02 15:04:05"))
	line("")
	line("## Summary")
	line("- Total Products: %d", res.TotalProducts)
	line("- Total Images: %d", res.TotalImages)
	line("- Successfully Matched: %d", len(res.Assignments))
	line("- Match Rate: %.1f%%", res.MatchRate())
	line("")
	line("## Match Types")
	line("- Direct: %d", res.Direct)
	line("- Base Name: %d", res.BaseName)
	line("- Fuzzy: %d", res.Fuzzy)
	line("")

	sorted := append([]model.Assignment(nil), res.Assignments...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ProductKey < sorted[j].ProductKey })
	line("## All Matches")
	for _, a := range sorted {
		if a.Tier == model.TierFuzzy {
			line("- `%s` → `%s` (%s, %.2f)", a.ProductKey, a.ImageKey, a.Tier, a.Score)
			continue
		}
		line("- `%s` → `%s` (%s)", a.ProductKey, a.ImageKey, a.Tier)
	}
	line("")

	if len(res.UnmatchedProducts) > 0 {
		line("## Unmatched Products")
		for _, p := range res.UnmatchedProducts {
			line("- `%s` - %s", p.ID, orNA(p.Name))
		}
		line("")
	}
	if len(res.UnmatchedImages) > 0 {
		line("## Unmatched Images")
		for _, img := range res.UnmatchedImages {
			line("- `%s`", img)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
