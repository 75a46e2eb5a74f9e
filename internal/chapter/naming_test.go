package chapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"pagesync/internal/chapter"
	"pagesync/internal/testsupport"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"001_en.zip", "001"},
		{"200.8_es.zip", "200.8"},
		{"/library/manga/015_en.zip", "015"},
		{"12.zip", "12"},
		{"oneshot_en.zip", "oneshot"},
		{"extras.zip", "extras"},
	}
	for _, tc := range tests {
		if got := chapter.Number(tc.path); got != tc.want {
			t.Errorf("Number(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"001_en.zip", "en", true},
		{"200.8_es.zip", "es", true},
		{"12.zip", "", false},
		{"_en.zip", "", false},
		{"001_.zip", "", false},
	}
	for _, tc := range tests {
		got, ok := chapter.Language(tc.path)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Language(%q) = %q, %v; want %q, %v", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDisplayNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"001", "1"},
		{"010", "10"},
		{"200.8", "200.8"},
		{"000", "0"},
		{"00.5", "0.5"},
		{"7", "7"},
	}
	for _, tc := range tests {
		if got := chapter.DisplayNumber(tc.in); got != tc.want {
			t.Errorf("DisplayNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSidesValidate(t *testing.T) {
	if err := (chapter.Sides{A: "en", B: "es"}).Validate(); err != nil {
		t.Fatalf("valid sides rejected: %v", err)
	}
	if err := (chapter.Sides{A: "en", B: "en"}).Validate(); err == nil {
		t.Fatal("identical sides accepted")
	}
	if err := (chapter.Sides{A: "en", B: "!!"}).Validate(); err == nil {
		t.Fatal("invalid language tag accepted")
	}
}

func TestFindPairs(t *testing.T) {
	dir := t.TempDir()
	page := testsupport.PageImage(t, 1)
	for _, name := range []string{
		"001_en.zip", "001_es.zip",
		"010_en.zip", "010_es.zip",
		"002.5_en.zip", "002.5_es.zip",
		"003_en.zip", // unpaired
	} {
		testsupport.WriteZip(t, filepath.Join(dir, name), map[string][]byte{"001.png": page})
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("credits"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	pairs, err := chapter.FindPairs(dir, chapter.Sides{A: "en", B: "es"})
	if err != nil {
		t.Fatalf("find pairs: %v", err)
	}

	wantNumbers := []string{"001", "002.5", "010"}
	if len(pairs) != len(wantNumbers) {
		t.Fatalf("found %d pairs, want %d", len(pairs), len(wantNumbers))
	}
	for i, pair := range pairs {
		if pair.Number != wantNumbers[i] {
			t.Errorf("pair %d number = %q, want %q (numeric ordering)", i, pair.Number, wantNumbers[i])
		}
		if pair.PathA == "" || pair.PathB == "" {
			t.Errorf("pair %d missing a path: %+v", i, pair)
		}
	}
}
