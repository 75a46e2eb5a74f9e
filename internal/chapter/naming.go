package chapter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Sides names the two chapter languages being synchronized, e.g. en/es.
type Sides struct {
	A string
	B string
}

// Validate checks both side labels parse as language tags and differ.
func (s Sides) Validate() error {
	if s.A == s.B {
		return fmt.Errorf("sides must differ (both %q)", s.A)
	}
	for _, tag := range []string{s.A, s.B} {
		if _, err := language.Parse(tag); err != nil {
			return fmt.Errorf("side %q is not a valid language tag: %w", tag, err)
		}
	}
	return nil
}

var numberPattern = regexp.MustCompile(`^([\d.]+)`)

// Number extracts the chapter number from an archive filename, e.g.
// "001_en.zip" → "001", "200.8_es.zip" → "200.8". Falls back to stripping a
// trailing language suffix when the stem does not start with digits.
func Number(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if m := numberPattern.FindStringSubmatch(stem); m != nil {
		return m[1]
	}
	if idx := strings.LastIndex(stem, "_"); idx > 0 {
		return stem[:idx]
	}
	return stem
}

// Language extracts the language suffix from an archive filename, e.g.
// "001_en.zip" → "en". The second return is false when the stem carries no
// suffix.
func Language(path string) (string, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	idx := strings.LastIndex(stem, "_")
	if idx <= 0 || idx == len(stem)-1 {
		return "", false
	}
	return stem[idx+1:], true
}

// Pair is a chapter present in both languages.
type Pair struct {
	Number string
	PathA  string
	PathB  string
}

// FindPairs scans a directory of <number>_<lang>.zip archives and returns
// the chapters that exist in both configured languages, ordered by numeric
// chapter value.
func FindPairs(dir string, sides Sides) ([]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read chapters directory: %w", err)
	}

	byNumber := make(map[string]map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".zip") {
			continue
		}
		lang, ok := Language(entry.Name())
		if !ok {
			continue
		}
		number := Number(entry.Name())
		if byNumber[number] == nil {
			byNumber[number] = make(map[string]string)
		}
		byNumber[number][lang] = filepath.Join(dir, entry.Name())
	}

	pairs := make([]Pair, 0, len(byNumber))
	for number, langs := range byNumber {
		pathA, okA := langs[sides.A]
		pathB, okB := langs[sides.B]
		if okA && okB {
			pairs = append(pairs, Pair{Number: number, PathA: pathA, PathB: pathB})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return numberValue(pairs[i].Number) < numberValue(pairs[j].Number)
	})
	return pairs, nil
}

func numberValue(number string) float64 {
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0
	}
	return value
}

// DisplayNumber normalizes a chapter number for manifests: leading zeros are
// stripped ("001" → "1"), a bare run of zeros collapses to "0".
func DisplayNumber(number string) string {
	trimmed := strings.TrimLeft(number, "0")
	if trimmed == "" || strings.HasPrefix(trimmed, ".") {
		return "0" + trimmed
	}
	return trimmed
}
