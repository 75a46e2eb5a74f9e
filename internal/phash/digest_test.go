package phash_test

import (
	"encoding/json"
	"errors"
	"testing"

	"pagesync/internal/phash"
)

func mustDigest(t *testing.T, hex string) phash.Digest {
	t.Helper()
	d, err := phash.ParseDigest(hex)
	if err != nil {
		t.Fatalf("parse digest %q: %v", hex, err)
	}
	return d
}

func TestParseDigestRoundTrip(t *testing.T) {
	const hex = "a1b2c3d4e5f60718"
	d := mustDigest(t, hex)
	if d.Len() != 64 {
		t.Fatalf("expected 64 bits, got %d", d.Len())
	}
	if d.String() != hex {
		t.Fatalf("round trip mismatch: got %q want %q", d.String(), hex)
	}
}

func TestParseDigestRejectsInvalidHex(t *testing.T) {
	if _, err := phash.ParseDigest("not-hex"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"identical", "ffff000000000000", "ffff000000000000", 0},
		{"disjoint nibbles", "f000000000000000", "0f00000000000000", 8},
		{"single bit", "0000000000000000", "0000000000000001", 1},
		{"all bits", "0000000000000000", "ffffffffffffffff", 64},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := mustDigest(t, tc.a)
			b := mustDigest(t, tc.b)
			got, err := a.Distance(b)
			if err != nil {
				t.Fatalf("distance: %v", err)
			}
			if got != tc.want {
				t.Fatalf("distance = %d, want %d", got, tc.want)
			}
			reversed, err := b.Distance(a)
			if err != nil {
				t.Fatalf("reverse distance: %v", err)
			}
			if reversed != got {
				t.Fatalf("distance not symmetric: %d vs %d", got, reversed)
			}
		})
	}
}

func TestDistanceShapeMismatch(t *testing.T) {
	a := mustDigest(t, "ffff000000000000")
	b := mustDigest(t, "ffff")
	if _, err := a.Distance(b); !errors.Is(err, phash.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestDigestJSON(t *testing.T) {
	const hex = "00ff00ff00ff00ff"
	d := mustDigest(t, hex)

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"`+hex+`"` {
		t.Fatalf("unexpected JSON form %s", raw)
	}

	var decoded phash.Digest
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	dist, err := d.Distance(decoded)
	if err != nil {
		t.Fatalf("distance after round trip: %v", err)
	}
	if dist != 0 {
		t.Fatalf("round-tripped digest differs by %d bits", dist)
	}
}

func TestDigestZeroValue(t *testing.T) {
	var d phash.Digest
	if !d.IsZero() {
		t.Fatal("zero value should report IsZero")
	}
	if d.Len() != 0 {
		t.Fatalf("zero value length = %d", d.Len())
	}
}
