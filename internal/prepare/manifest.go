package prepare

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"pagesync/internal/chapter"
)

// Manifest describes one prepared chapter's page mapping. The serialized
// form uses side-specific keys derived from the configured languages
// ("en_only", not "a_only"); downstream readers rely on those names, which
// is why marshalling is hand-rolled instead of struct-tagged.
type Manifest struct {
	Chapter     string
	RunID       string
	Sides       chapter.Sides
	Matched     int
	OnlyA       int
	OnlyB       int
	AvgDistance float64
	Pages       []AlignedPage
}

// NewManifest assembles the manifest for a prepared chapter.
func NewManifest(chapterNumber, runID string, sides chapter.Sides, pages []AlignedPage, avgDistance float64) Manifest {
	m := Manifest{
		Chapter:     chapterNumber,
		RunID:       runID,
		Sides:       sides,
		AvgDistance: avgDistance,
		Pages:       pages,
	}
	for _, page := range pages {
		switch page.Kind {
		case KindMatched:
			m.Matched++
		case KindAOnly:
			m.OnlyA++
		case KindBOnly:
			m.OnlyB++
		}
	}
	return m
}

// kindLabel renders an output kind under the side-specific naming.
func (m Manifest) kindLabel(kind Kind) string {
	switch kind {
	case KindAOnly:
		return m.Sides.A + "_only"
	case KindBOnly:
		return m.Sides.B + "_only"
	default:
		return string(KindMatched)
	}
}

// MarshalJSON emits the manifest with language-named keys in a stable order.
func (m Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField(&buf, "chapter", m.Chapter, false)
	writeField(&buf, "run_id", m.RunID, true)
	writeField(&buf, "total_pages", len(m.Pages), true)
	writeField(&buf, "matched", m.Matched, true)
	writeField(&buf, m.Sides.A+"_only", m.OnlyA, true)
	writeField(&buf, m.Sides.B+"_only", m.OnlyB, true)
	writeField(&buf, "avg_distance", m.AvgDistance, true)

	buf.WriteString(`,"pages":[`)
	for i, page := range m.Pages {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		writeField(&buf, "index", page.Index, false)
		writeField(&buf, m.Sides.A, nullableName(page.SourceA), true)
		writeField(&buf, m.Sides.B, nullableName(page.SourceB), true)
		writeField(&buf, "type", m.kindLabel(page.Kind), true)
		writeField(&buf, "distance", page.Distance, true)
		buf.WriteByte('}')
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, value any, comma bool) {
	if comma {
		buf.WriteByte(',')
	}
	keyJSON, _ := json.Marshal(key)
	buf.Write(keyJSON)
	buf.WriteByte(':')
	valueJSON, err := json.Marshal(value)
	if err != nil {
		valueJSON = []byte("null")
	}
	buf.Write(valueJSON)
}

func nullableName(name string) any {
	if name == "" {
		return nil
	}
	return name
}

// Save writes the manifest as indented JSON.
func (m Manifest) Save(path string) error {
	raw, err := m.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		return fmt.Errorf("indent manifest: %w", err)
	}
	indented.WriteByte('\n')
	if err := os.WriteFile(path, indented.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
