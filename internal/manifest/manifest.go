// Package manifest generates the library manifest a reader application
// consumes: one entry per chapter that exists in both languages, with
// archive paths and page counts.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pagesync/internal/chapter"
)

// Version is the manifest schema version.
const Version = 1

// LanguageInfo describes one language's archive for a chapter.
type LanguageInfo struct {
	Archive   string `json:"archive"`
	PageCount int    `json:"page_count"`
}

// Chapter is one chapter entry.
type Chapter struct {
	Number    string                  `json:"number"`
	Title     string                  `json:"title"`
	Languages map[string]LanguageInfo `json:"languages"`
}

// MangaInfo identifies the manga the manifest covers.
type MangaInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cover string `json:"cover"`
}

// Manifest is the full library manifest.
type Manifest struct {
	Version  int       `json:"version"`
	Manga    MangaInfo `json:"manga"`
	Chapters []Chapter `json:"chapters"`
}

// Generate walks a prepared chapters directory and builds the manifest.
// Chapters missing either language are skipped; page counts come from the
// archives themselves.
func Generate(mangaID, mangaTitle, chaptersDir string, sides chapter.Sides, coverPath string) (Manifest, error) {
	if coverPath == "" {
		coverPath = fmt.Sprintf("covers/%s/cover.jpg", mangaID)
	}
	m := Manifest{
		Version: Version,
		Manga: MangaInfo{
			ID:    mangaID,
			Title: mangaTitle,
			Cover: coverPath,
		},
		Chapters: []Chapter{},
	}

	pairs, err := chapter.FindPairs(chaptersDir, sides)
	if err != nil {
		return Manifest{}, err
	}

	for _, pair := range pairs {
		entry := Chapter{
			Number:    chapter.DisplayNumber(pair.Number),
			Languages: make(map[string]LanguageInfo, 2),
		}
		for lang, path := range map[string]string{sides.A: pair.PathA, sides.B: pair.PathB} {
			count, err := chapter.CountPages(path)
			if err != nil {
				return Manifest{}, err
			}
			entry.Languages[lang] = LanguageInfo{
				Archive:   fmt.Sprintf("chapters/%s/%s", mangaID, filepath.Base(path)),
				PageCount: count,
			}
		}
		m.Chapters = append(m.Chapters, entry)
	}

	return m, nil
}

// Save writes the manifest as indented JSON.
func Save(m Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
