package prepare

import (
	"testing"

	"pagesync/internal/align"
	"pagesync/internal/phash"
)

func fp(name string) *phash.PageFingerprint {
	return &phash.PageFingerprint{Filename: name}
}

func intPtr(v int) *int { return &v }

func TestBuildPagesDenseNumbering(t *testing.T) {
	entries := []align.Entry{
		{PageA: fp("a1.png"), PageB: fp("b1.png"), Distance: intPtr(0), Outcome: align.OutcomeMatch},
		{PageB: fp("b2.png"), Outcome: align.OutcomeBOnly},
		{PageA: fp("a2.png"), PageB: fp("b3.png"), Distance: intPtr(14), Outcome: align.OutcomeWeakMatch},
		{PageA: fp("a3.png"), Outcome: align.OutcomeAOnly},
	}

	pages := BuildPages(entries)
	if len(pages) != 4 {
		t.Fatalf("built %d pages, want 4", len(pages))
	}
	for i, page := range pages {
		if page.Index != i+1 {
			t.Errorf("page %d has index %d, want %d", i, page.Index, i+1)
		}
	}

	if pages[0].Kind != KindMatched || pages[0].SourceA != "a1.png" || pages[0].SourceB != "b1.png" {
		t.Errorf("page 1 = %+v", pages[0])
	}
	if pages[1].Kind != KindBOnly || pages[1].SourceA != "" || pages[1].SourceB != "b2.png" {
		t.Errorf("page 2 = %+v", pages[1])
	}
	// Weak matches collapse into the matched kind.
	if pages[2].Kind != KindMatched || pages[2].Distance == nil || *pages[2].Distance != 14 {
		t.Errorf("page 3 = %+v", pages[2])
	}
	if pages[3].Kind != KindAOnly || pages[3].SourceA != "a3.png" || pages[3].SourceB != "" {
		t.Errorf("page 4 = %+v", pages[3])
	}
}

func TestBuildPagesEmpty(t *testing.T) {
	if pages := BuildPages(nil); len(pages) != 0 {
		t.Fatalf("expected no pages, got %d", len(pages))
	}
}
