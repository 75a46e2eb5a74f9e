package chapter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Page is one raw page payload addressed by its archive entry name.
type Page struct {
	Name string
	Data []byte
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// IsImage reports whether the entry name carries a supported page image
// extension.
func IsImage(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ReadPages extracts all image entries from a chapter archive, sorted by
// entry name. Non-image entries (credits text, metadata) are skipped.
func ReadPages(path string) ([]Page, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer reader.Close()

	names := make([]string, 0, len(reader.File))
	byName := make(map[string]*zip.File, len(reader.File))
	for _, file := range reader.File {
		if file.FileInfo().IsDir() || !IsImage(file.Name) {
			continue
		}
		names = append(names, file.Name)
		byName[file.Name] = file
	}
	sort.Strings(names)

	pages := make([]Page, 0, len(names))
	for _, name := range names {
		rc, err := byName[name].Open()
		if err != nil {
			return nil, fmt.Errorf("open entry %s in %s: %w", name, path, err)
		}
		data, err := io.ReadAll(rc)
		closeErr := rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read entry %s in %s: %w", name, path, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close entry %s in %s: %w", name, path, closeErr)
		}
		pages = append(pages, Page{Name: name, Data: data})
	}
	return pages, nil
}

// CountPages returns the number of image entries in an archive without
// extracting payloads.
func CountPages(path string) (int, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return 0, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer reader.Close()

	count := 0
	for _, file := range reader.File {
		if !file.FileInfo().IsDir() && IsImage(file.Name) {
			count++
		}
	}
	return count, nil
}

// WritePages creates a deflate-compressed archive containing the given pages
// in order. Parent directories are created as needed.
func WritePages(path string, pages []Page) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", path, err)
	}
	defer file.Close()

	writer := zip.NewWriter(file)
	for _, page := range pages {
		entry, err := writer.CreateHeader(&zip.FileHeader{
			Name:   page.Name,
			Method: zip.Deflate,
		})
		if err != nil {
			_ = writer.Close()
			return fmt.Errorf("create entry %s: %w", page.Name, err)
		}
		if _, err := entry.Write(page.Data); err != nil {
			_ = writer.Close()
			return fmt.Errorf("write entry %s: %w", page.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize archive %s: %w", path, err)
	}
	return file.Close()
}
