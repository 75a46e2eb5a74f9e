package testsupport

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
)

// PageImage renders a deterministic synthetic page as PNG bytes. Equal
// patterns produce byte-identical images (and therefore fingerprint distance
// zero); different patterns produce structurally different block layouts.
func PageImage(t testing.TB, pattern int) []byte {
	t.Helper()

	if pattern < 0 {
		pattern = -pattern
	}
	cellX := 8 * (1 + pattern%4)
	cellY := 8 * (1 + (pattern/4)%4)

	img := image.NewGray(image.Rect(0, 0, 128, 128))
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			if (x/cellX+y/cellY)%2 == 0 {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode page image: %v", err)
	}
	return buf.Bytes()
}

// WriteZip creates a deflate zip at path from the given entries.
func WriteZip(t testing.TB, path string, entries map[string][]byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	writer := zip.NewWriter(file)
	for _, name := range names {
		entry, err := writer.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := entry.Write(entries[name]); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip %s: %v", path, err)
	}
}

// ChapterZip writes a chapter archive of pageCount synthetic pages named
// 001.png, 002.png, … and returns its path. Page content is derived from the
// page number, so two calls with the same pageCount produce matching
// chapters.
func ChapterZip(t testing.TB, dir, name string, pageCount int) string {
	t.Helper()

	entries := make(map[string][]byte, pageCount)
	for i := 1; i <= pageCount; i++ {
		entries[fmt.Sprintf("%03d.png", i)] = PageImage(t, i)
	}
	path := filepath.Join(dir, name)
	WriteZip(t, path, entries)
	return path
}
