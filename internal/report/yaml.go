package report

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"catalog-recon/internal/catalog/model"
)

type productRef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Size string `yaml:"size,omitempty"`
	URL  string `yaml:"url,omitempty"`
}

type recommendation struct {
	Product1     productRef `yaml:"product1"`
	Product2     productRef `yaml:"product2"`
	Type         model.Tier `yaml:"type"`
	Score        float64    `yaml:"score"`
	Reason       string     `yaml:"reason"`
	Action       string     `yaml:"action"`
	ReasonDetail string     `yaml:"reason_detail,omitempty"`
}

type brandDetail struct {
	Brand           string           `yaml:"brand"`
	CurrentCount    int              `yaml:"current_count"`
	EstimatedAfter  int              `yaml:"estimated_after"`
	DuplicatesFound int              `yaml:"duplicates_found"`
	Recommendations []recommendation `yaml:"recommendations"`
}

type detailedAnalysis struct {
	RunID             string        `yaml:"run_id,omitempty"`
	AnalysisTimestamp string        `yaml:"analysis_timestamp"`
	TotalProducts     int           `yaml:"total_products"`
	Options           model.Options `yaml:"options"`
	Brands            []brandDetail `yaml:"brands"`
}

func ref(r model.Record) productRef {
	return productRef{ID: r.ID, Name: r.Name, Size: r.Size, URL: r.URL}
}

// WriteYAML writes the machine readable analysis used by cleanup tooling.
func WriteYAML(w io.Writer, a model.Analysis, now time.Time) error {
	doc := detailedAnalysis{
		RunID:             a.RunID,
		AnalysisTimestamp: now.Format("2006-01-02"),
		TotalProducts:     a.TotalRecords,
		Options:           a.Opts,
		Brands:            make([]brandDetail, 0, len(a.Partitions)),
	}
	for _, p := range a.Partitions {
		bd := brandDetail{
			Brand:           p.Brand,
			CurrentCount:    p.Count,
			EstimatedAfter:  p.EstimatedAfter,
			DuplicatesFound: len(p.Findings),
			Recommendations: make([]recommendation, 0, len(p.Findings)),
		}
		for _, f := range p.Findings {
			bd.Recommendations = append(bd.Recommendations, recommendation{
				Product1:     ref(f.A),
				Product2:     ref(f.B),
				Type:         f.Tier,
				Score:        f.Score,
				Reason:       f.Reason,
				Action:       string(f.Recommendation.Action),
				ReasonDetail: f.Recommendation.Rationale,
			})
		}
		doc.Brands = append(doc.Brands, bd)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
