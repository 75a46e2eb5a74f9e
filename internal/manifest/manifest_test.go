package manifest_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pagesync/internal/chapter"
	"pagesync/internal/manifest"
	"pagesync/internal/testsupport"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	testsupport.ChapterZip(t, dir, "001_en.zip", 4)
	testsupport.ChapterZip(t, dir, "001_es.zip", 5)
	testsupport.ChapterZip(t, dir, "010_en.zip", 2)
	testsupport.ChapterZip(t, dir, "010_es.zip", 2)
	testsupport.ChapterZip(t, dir, "011_en.zip", 2) // missing es

	sides := chapter.Sides{A: "en", B: "es"}
	m, err := manifest.Generate("test-manga", "Test Manga", dir, sides, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if m.Version != manifest.Version {
		t.Errorf("version = %d, want %d", m.Version, manifest.Version)
	}
	if m.Manga.ID != "test-manga" || m.Manga.Title != "Test Manga" {
		t.Errorf("manga info = %+v", m.Manga)
	}
	if m.Manga.Cover != "covers/test-manga/cover.jpg" {
		t.Errorf("cover = %q", m.Manga.Cover)
	}

	if len(m.Chapters) != 2 {
		t.Fatalf("chapters = %d, want 2 (incomplete chapters skipped)", len(m.Chapters))
	}

	first := m.Chapters[0]
	if first.Number != "1" {
		t.Errorf("first chapter number = %q, want 1", first.Number)
	}
	if first.Languages["en"].PageCount != 4 || first.Languages["es"].PageCount != 5 {
		t.Errorf("first chapter page counts = %+v", first.Languages)
	}
	if first.Languages["en"].Archive != "chapters/test-manga/001_en.zip" {
		t.Errorf("first chapter archive = %q", first.Languages["en"].Archive)
	}

	if m.Chapters[1].Number != "10" {
		t.Errorf("second chapter number = %q, want 10", m.Chapters[1].Number)
	}
}

func TestGenerateCustomCover(t *testing.T) {
	dir := t.TempDir()
	m, err := manifest.Generate("slug", "Title", dir, chapter.Sides{A: "en", B: "es"}, "art/front.png")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if m.Manga.Cover != "art/front.png" {
		t.Errorf("cover = %q", m.Manga.Cover)
	}
	if len(m.Chapters) != 0 {
		t.Errorf("empty directory produced %d chapters", len(m.Chapters))
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	testsupport.ChapterZip(t, dir, "001_en.zip", 1)
	testsupport.ChapterZip(t, dir, "001_es.zip", 1)

	m, err := manifest.Generate("slug", "Title", dir, chapter.Sides{A: "en", B: "es"}, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	path := filepath.Join(dir, "out", "manifest.json")
	if err := manifest.Save(m, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var decoded manifest.Manifest
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if decoded.Manga.ID != "slug" || len(decoded.Chapters) != 1 {
		t.Errorf("round trip = %+v", decoded)
	}
}
