package align

import (
	"pagesync/internal/phash"
)

// DefaultThreshold is the maximum fingerprint distance accepted as a page
// pairing when the caller does not override it. Perceptual hash distances
// for the same page from different scanlation groups typically land in the
// 15–25 range.
const DefaultThreshold = 20

// Outcome classifies one alignment entry.
type Outcome string

const (
	// OutcomeMatch is a pairing at or below half the threshold.
	OutcomeMatch Outcome = "match"
	// OutcomeWeakMatch is a pairing above half the threshold but within it.
	OutcomeWeakMatch Outcome = "weak_match"
	// OutcomeAOnly is a page present only in sequence A.
	OutcomeAOnly Outcome = "insert_a"
	// OutcomeBOnly is a page present only in sequence B.
	OutcomeBOnly Outcome = "insert_b"
)

// Matched reports whether the outcome pairs a page from each side.
func (o Outcome) Matched() bool {
	return o == OutcomeMatch || o == OutcomeWeakMatch
}

// Entry is one row of an alignment. Exactly one of PageA/PageB is nil for
// the insertion outcomes; both are set for matches, and Distance is present
// only when both are.
type Entry struct {
	PageA    *phash.PageFingerprint `json:"page_a"`
	PageB    *phash.PageFingerprint `json:"page_b"`
	Distance *int                   `json:"distance"`
	Outcome  Outcome                `json:"match_type"`
}

// Result aggregates one alignment run in the shape persisted for downstream
// consumers.
type Result struct {
	FileA        string  `json:"file_a"`
	FileB        string  `json:"file_b"`
	PagesA       int     `json:"pages_a"`
	PagesB       int     `json:"pages_b"`
	MatchedCount int     `json:"matched_count"`
	InsertACount int     `json:"insert_a_count"`
	InsertBCount int     `json:"insert_b_count"`
	AvgDistance  float64 `json:"avg_distance"`
	Entries      []Entry `json:"matches"`
}

// NewResult assembles a Result from an entry list and its summary.
func NewResult(fileA, fileB string, pagesA, pagesB int, entries []Entry) Result {
	summary := Summarize(entries)
	return Result{
		FileA:        fileA,
		FileB:        fileB,
		PagesA:       pagesA,
		PagesB:       pagesB,
		MatchedCount: summary.Matched,
		InsertACount: summary.AOnly,
		InsertBCount: summary.BOnly,
		AvgDistance:  summary.AvgDistance,
		Entries:      entries,
	}
}
