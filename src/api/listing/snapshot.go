package listing

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Recommended actions, strongest to weakest.
const (
	ActionProceed = "Proceed"
	ActionAskDocs = "Ask seller for docs"
	ActionWait    = "Wait/monitor"
)

const maxSignals = 3

// Snapshot is the full scored output for one listing fetch.
type Snapshot struct {
	ListingID          string          `json:"listingId"`
	URL                string          `json:"url"`
	Source             string          `json:"source"`
	Score              int             `json:"score"`
	Status             CheckValue      `json:"status"`
	RecommendedAction  string          `json:"recommendedAction"`
	TopPositiveSignals []string        `json:"topPositiveSignals"`
	TopMissingSignals  []string        `json:"topMissingOrSuspiciousSignals"`
	Buckets            []Bucket        `json:"buckets"`
	Artwork            ArtworkOverview `json:"artwork"`
	FetchedAt          time.Time       `json:"fetchedAt"`
	Stale              bool            `json:"stale,omitempty"`
}

// Analyze runs the pure scoring pipeline over already-fetched page text.
// It always produces a snapshot; a hostile or empty page just scores low.
// ListingID and FetchedAt are left for the caller to assign.
func Analyze(raw, rawURL string) *Snapshot {
	facts := ExtractFacts(raw)
	buckets := buildBuckets(strings.ToLower(raw), facts)

	score := overallScore(buckets)
	return &Snapshot{
		URL:                rawURL,
		Source:             SourceTag(rawURL),
		Score:              score,
		Status:             StatusFor(score),
		RecommendedAction:  recommendedAction(score, buckets),
		TopPositiveSignals: collectSignals(buckets, true),
		TopMissingSignals:  collectSignals(buckets, false),
		Buckets:            buckets,
		Artwork:            facts.Overview(),
	}
}

// scoreChecks maps a check list to 0-100: full credit for Good, half for
// Needs review.
func scoreChecks(checks []Check) int {
	if len(checks) == 0 {
		return 0
	}
	credit := 0.0
	for _, c := range checks {
		switch c.Value {
		case Good:
			credit++
		case NeedsReview:
			credit += 0.5
		}
	}
	return int(math.Round(100 * credit / float64(len(checks))))
}

// StatusFor applies the shared three-way threshold used at both bucket and
// overall level.
func StatusFor(score int) CheckValue {
	switch {
	case score >= 75:
		return Good
	case score >= 50:
		return NeedsReview
	default:
		return MissingEvidence
	}
}

func finishBucket(key, label string, weight int, checks []Check) Bucket {
	score := scoreChecks(checks)
	good := 0
	for _, c := range checks {
		if c.Value == Good {
			good++
		}
	}
	return Bucket{
		Key:         key,
		Label:       label,
		Weight:      weight,
		Score:       score,
		Status:      StatusFor(score),
		Explanation: fmt.Sprintf("%d of %d %s checks look good", good, len(checks), strings.ToLower(label)),
		Checks:      checks,
	}
}

// overallScore is the weighted sum of bucket scores, rounded once at the end.
func overallScore(buckets []Bucket) int {
	sum := 0.0
	for _, b := range buckets {
		sum += float64(b.Score) * float64(b.Weight) / 100
	}
	return int(math.Round(sum))
}

func recommendedAction(score int, buckets []Bucket) string {
	if score >= 75 && !bucketMissing(buckets, "authenticity") && !bucketMissing(buckets, "risk") {
		return ActionProceed
	}
	if score >= 50 {
		return ActionAskDocs
	}
	return ActionWait
}

func bucketMissing(buckets []Bucket, key string) bool {
	for _, b := range buckets {
		if b.Key == key {
			return b.Status == MissingEvidence
		}
	}
	return false
}

// collectSignals walks buckets in order and formats either the Good checks
// (positive) or everything else (missing/suspicious), capped at maxSignals.
func collectSignals(buckets []Bucket, positive bool) []string {
	out := make([]string, 0, maxSignals)
	for _, b := range buckets {
		for _, c := range b.Checks {
			if (c.Value == Good) != positive {
				continue
			}
			out = append(out, fmt.Sprintf("[%s] %s", b.Label, c.Detail))
			if len(out) == maxSignals {
				return out
			}
		}
	}
	return out
}

// SourceTag derives the marketplace tag from the listing URL host.
func SourceTag(rawURL string) string {
	host := hostOf(rawURL)
	switch {
	case strings.Contains(host, "ebay"):
		return "ebay"
	case strings.Contains(host, "stockx"):
		return "stockx"
	case strings.Contains(host, "artsy"):
		return "artsy"
	default:
		return "listing"
	}
}
