package model

import "errors"

var (
	ErrNoRecords       = errors.New("record collection is missing")
	ErrNoImages        = errors.New("image key collection is missing")
	ErrUnsupportedFile = errors.New("unsupported file")
)

type Tier string

const (
	TierExact              Tier = "exact"
	TierIdentifierConflict Tier = "identifier-conflict"
	TierNearDuplicate      Tier = "near-duplicate"

	TierDirect   Tier = "direct"
	TierBaseName Tier = "base-name"
	TierFuzzy    Tier = "fuzzy"
)

type Action string

const (
	ActionRemoveFirst   Action = "remove-first"    // first record is the less complete one
	ActionRemoveSecond  Action = "remove-second"   // second record is the less complete one
	ActionMergeOrRemove Action = "merge-or-remove" // equal completeness, manual decision
	ActionKeepBoth      Action = "keep-both"       // size variants of one product
	ActionManualReview  Action = "manual-review"
	ActionFixIdentifier Action = "fix-identifier"
)

// Options are the engine knobs. Zero values are replaced by defaults in the
// service constructors, so a partially filled Options is valid. A threshold
// of 0 therefore means "default", never "accept everything"; use a small
// positive value for that. One fuzzy weight may be 0 as long as the other
// is positive.
type Options struct {
	NearDuplicateThreshold float64 `json:"nearDuplicateThreshold" yaml:"near_duplicate_threshold"` // inclusive
	VariantThreshold       float64 `json:"variantThreshold" yaml:"variant_threshold"`              // inclusive, differing sizes
	FuzzyThreshold         float64 `json:"fuzzyThreshold" yaml:"fuzzy_threshold"`                  // exclusive
	IDWeight               float64 `json:"idWeight" yaml:"id_weight"`
	NameWeight             float64 `json:"nameWeight" yaml:"name_weight"`
	ImageSuffix            string  `json:"imageSuffix" yaml:"image_suffix"`
}

func DefaultOptions() Options {
	return Options{
		NearDuplicateThreshold: 0.85,
		VariantThreshold:       0.95,
		FuzzyThreshold:         0.6,
		IDWeight:               0.7,
		NameWeight:             0.3,
		ImageSuffix:            "-main.jpg",
	}
}

// WithDefaults fills unset fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.NearDuplicateThreshold <= 0 {
		o.NearDuplicateThreshold = d.NearDuplicateThreshold
	}
	if o.VariantThreshold <= 0 {
		o.VariantThreshold = d.VariantThreshold
	}
	if o.FuzzyThreshold <= 0 {
		o.FuzzyThreshold = d.FuzzyThreshold
	}
	if o.IDWeight <= 0 && o.NameWeight <= 0 {
		o.IDWeight, o.NameWeight = d.IDWeight, d.NameWeight
	}
	if o.ImageSuffix == "" {
		o.ImageSuffix = d.ImageSuffix
	}
	return o
}

// Finding is one detected pair. A precedes B in enumeration order.
type Finding struct {
	A      Record  `json:"a"`
	B      Record  `json:"b"`
	Tier   Tier    `json:"tier"`
	Score  float64 `json:"score"`
	SizeA  string  `json:"sizeA,omitempty"`
	SizeB  string  `json:"sizeB,omitempty"`
	Reason string  `json:"reason"`
}

type Recommendation struct {
	Action    Action `json:"action"`
	Rationale string `json:"rationale"`
	ScoreA    int    `json:"completenessA,omitempty"`
	ScoreB    int    `json:"completenessB,omitempty"`
}

type ReviewedFinding struct {
	Finding
	Recommendation Recommendation `json:"recommendation"`
}

type Partition struct {
	Brand          string            `json:"brand"`
	Count          int               `json:"count"`
	EstimatedAfter int               `json:"estimatedAfter"`
	Exact          int               `json:"exact"`
	Conflicts      int               `json:"identifierConflicts"`
	NearDuplicates int               `json:"nearDuplicates"`
	Findings       []ReviewedFinding `json:"findings"`
}

type Analysis struct {
	RunID          string      `json:"runId"`
	TotalRecords   int         `json:"totalRecords"`
	Partitions     []Partition `json:"partitions"`
	TotalBefore    int         `json:"totalBefore"`
	TotalAfter     int         `json:"totalAfter"`
	Opts           Options     `json:"opts"`
	SkippedNoBrand int         `json:"skippedNoBrand"`
}

type Assignment struct {
	ProductKey string  `json:"productKey"`
	ImageKey   string  `json:"imageKey"`
	Tier       Tier    `json:"tier"`
	Score      float64 `json:"score"`
}

type MatchResult struct {
	Assignments       []Assignment `json:"assignments"`
	UnmatchedProducts []Record     `json:"unmatchedProducts"`
	UnmatchedImages   []string     `json:"unmatchedImages"`
	Direct            int          `json:"direct"`
	BaseName          int          `json:"baseName"`
	Fuzzy             int          `json:"fuzzy"`
	TotalProducts     int          `json:"totalProducts"`
	TotalImages       int          `json:"totalImages"`
	Opts              Options      `json:"opts"`
}

// MatchRate is matched/total products in percent.
func (r MatchResult) MatchRate() float64 {
	if r.TotalProducts == 0 {
		return 0
	}
	return float64(len(r.Assignments)) / float64(r.TotalProducts) * 100
}

// ByProduct maps product key to its assignment.
func (r MatchResult) ByProduct() map[string]Assignment {
	out := make(map[string]Assignment, len(r.Assignments))
	for _, a := range r.Assignments {
		out[a.ProductKey] = a
	}
	return out
}

// MergeUpdate records one existing record refreshed from an incoming one.
type MergeUpdate struct {
	ID           string  `json:"productId"`
	CurrentName  string  `json:"currentName"`
	IncomingName string  `json:"incomingName"`
	Score        float64 `json:"score"`
	Before       int     `json:"completenessBefore"`
	After        int     `json:"completenessAfter"`
}

// MergeResult is a brand partition after folding in a fresh scrape. Records
// holds the existing records in their order, then the added ones.
type MergeResult struct {
	Brand   string        `json:"brand,omitempty"`
	Records []Record      `json:"records"`
	Updates []MergeUpdate `json:"updates"`
	Kept    int           `json:"kept"`
	Added   int           `json:"added"`
	Others  int           `json:"others"` // records of other brands, untouched
}
