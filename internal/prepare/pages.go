package prepare

import (
	"pagesync/internal/align"
)

// Kind classifies one output position.
type Kind string

const (
	// KindMatched means both languages contributed a page. Weak matches
	// collapse into this kind; the distinction only matters to the aligner's
	// own statistics.
	KindMatched Kind = "matched"
	// KindAOnly means only the A side has this page.
	KindAOnly Kind = "a_only"
	// KindBOnly means only the B side has this page.
	KindBOnly Kind = "b_only"
)

// AlignedPage is one position in the synchronized output. Index is 1-based
// and dense: every alignment entry gets a position, including the two halves
// of a split bad match.
type AlignedPage struct {
	Index    int
	SourceA  string
	SourceB  string
	Kind     Kind
	Distance *int
}

// BuildPages converts an alignment entry list into the dense output page
// numbering.
func BuildPages(entries []align.Entry) []AlignedPage {
	pages := make([]AlignedPage, 0, len(entries))
	for _, entry := range entries {
		page := AlignedPage{Index: len(pages) + 1}
		switch {
		case entry.Outcome.Matched():
			page.Kind = KindMatched
			page.Distance = entry.Distance
			if entry.PageA != nil {
				page.SourceA = entry.PageA.Filename
			}
			if entry.PageB != nil {
				page.SourceB = entry.PageB.Filename
			}
		case entry.Outcome == align.OutcomeAOnly:
			page.Kind = KindAOnly
			page.SourceA = entry.PageA.Filename
		case entry.Outcome == align.OutcomeBOnly:
			page.Kind = KindBOnly
			page.SourceB = entry.PageB.Filename
		default:
			continue
		}
		pages = append(pages, page)
	}
	return pages
}
