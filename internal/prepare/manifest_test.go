package prepare

import (
	"encoding/json"
	"testing"

	"pagesync/internal/chapter"
)

func TestManifestSideSpecificKeys(t *testing.T) {
	sides := chapter.Sides{A: "en", B: "es"}
	pages := []AlignedPage{
		{Index: 1, SourceA: "001.png", SourceB: "001.png", Kind: KindMatched, Distance: intPtr(3)},
		{Index: 2, SourceA: "002.png", Kind: KindAOnly},
		{Index: 3, SourceB: "002.png", Kind: KindBOnly},
	}
	m := NewManifest("001", "run-123", sides, pages, 3.0)

	if m.Matched != 1 || m.OnlyA != 1 || m.OnlyB != 1 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/1", m.Matched, m.OnlyA, m.OnlyB)
	}

	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded["chapter"] != "001" || decoded["run_id"] != "run-123" {
		t.Errorf("header fields = %v/%v", decoded["chapter"], decoded["run_id"])
	}
	if decoded["total_pages"] != float64(3) || decoded["matched"] != float64(1) {
		t.Errorf("totals = %v/%v", decoded["total_pages"], decoded["matched"])
	}
	// Keys carry the configured language names, not generic side labels.
	if decoded["en_only"] != float64(1) || decoded["es_only"] != float64(1) {
		t.Errorf("side keys = %v/%v", decoded["en_only"], decoded["es_only"])
	}
	if _, generic := decoded["a_only"]; generic {
		t.Error("manifest leaked generic a_only key")
	}

	pagesJSON, ok := decoded["pages"].([]any)
	if !ok || len(pagesJSON) != 3 {
		t.Fatalf("pages = %v", decoded["pages"])
	}

	first := pagesJSON[0].(map[string]any)
	if first["index"] != float64(1) || first["en"] != "001.png" || first["es"] != "001.png" {
		t.Errorf("first page = %v", first)
	}
	if first["type"] != "matched" || first["distance"] != float64(3) {
		t.Errorf("first page classification = %v/%v", first["type"], first["distance"])
	}

	second := pagesJSON[1].(map[string]any)
	if second["type"] != "en_only" {
		t.Errorf("second page type = %v, want en_only", second["type"])
	}
	if second["es"] != nil {
		t.Errorf("second page es = %v, want null", second["es"])
	}
	if second["distance"] != nil {
		t.Errorf("second page distance = %v, want null", second["distance"])
	}

	third := pagesJSON[2].(map[string]any)
	if third["type"] != "es_only" || third["en"] != nil {
		t.Errorf("third page = %v", third)
	}
}
