package align_test

import (
	"errors"
	"testing"

	"pagesync/internal/align"
	"pagesync/internal/phash"
)

// Distinct 64-bit digests with pairwise Hamming distance 32, far beyond any
// threshold used here.
var distinctDigests = []string{
	"ffff000000000000",
	"0000ffff00000000",
	"00000000ffff0000",
	"000000000000ffff",
}

func page(t *testing.T, index int, name, hexDigest string) phash.PageFingerprint {
	t.Helper()
	d, err := phash.ParseDigest(hexDigest)
	if err != nil {
		t.Fatalf("parse digest %q: %v", hexDigest, err)
	}
	return phash.PageFingerprint{Index: index, Filename: name, Digest: d}
}

func sequence(t *testing.T, prefix string, digests ...string) []phash.PageFingerprint {
	t.Helper()
	seq := make([]phash.PageFingerprint, 0, len(digests))
	for i, hex := range digests {
		seq = append(seq, page(t, i, prefix, hex))
	}
	return seq
}

func outcomes(entries []align.Entry) []align.Outcome {
	got := make([]align.Outcome, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Outcome)
	}
	return got
}

func TestAlignIdenticalSequences(t *testing.T) {
	seqA := sequence(t, "a", distinctDigests...)
	seqB := sequence(t, "b", distinctDigests...)

	entries, err := align.Align(seqA, seqB, align.DefaultThreshold)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	if len(entries) != len(seqA) {
		t.Fatalf("got %d entries, want %d", len(entries), len(seqA))
	}
	for i, entry := range entries {
		if entry.Outcome != align.OutcomeMatch {
			t.Errorf("entry %d outcome = %q, want match", i, entry.Outcome)
		}
		if entry.Distance == nil || *entry.Distance != 0 {
			t.Errorf("entry %d distance = %v, want 0", i, entry.Distance)
		}
		if entry.PageA == nil || entry.PageB == nil {
			t.Fatalf("entry %d missing a side", i)
		}
		if entry.PageA.Index != i || entry.PageB.Index != i {
			t.Errorf("entry %d pairs indexes %d/%d", i, entry.PageA.Index, entry.PageB.Index)
		}
	}
}

func TestAlignEmptySides(t *testing.T) {
	seq := sequence(t, "p", distinctDigests[:2]...)

	entries, err := align.Align(nil, nil, align.DefaultThreshold)
	if err != nil {
		t.Fatalf("align empty: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("empty inputs produced %d entries", len(entries))
	}

	entries, err = align.Align(seq, nil, align.DefaultThreshold)
	if err != nil {
		t.Fatalf("align with empty B: %v", err)
	}
	for i, entry := range entries {
		if entry.Outcome != align.OutcomeAOnly {
			t.Errorf("entry %d outcome = %q, want insert_a", i, entry.Outcome)
		}
	}

	entries, err = align.Align(nil, seq, align.DefaultThreshold)
	if err != nil {
		t.Fatalf("align with empty A: %v", err)
	}
	for i, entry := range entries {
		if entry.Outcome != align.OutcomeBOnly {
			t.Errorf("entry %d outcome = %q, want insert_b", i, entry.Outcome)
		}
	}
}

func TestAlignExtraPageBecomesInsertion(t *testing.T) {
	// B carries an extra page between positions 1 and 2 that resembles
	// nothing in A.
	seqA := sequence(t, "a", distinctDigests[0], distinctDigests[1], distinctDigests[2])
	seqB := sequence(t, "b", distinctDigests[0], distinctDigests[1], distinctDigests[3], distinctDigests[2])

	entries, err := align.Align(seqA, seqB, align.DefaultThreshold)
	if err != nil {
		t.Fatalf("align: %v", err)
	}

	want := []align.Outcome{
		align.OutcomeMatch,
		align.OutcomeMatch,
		align.OutcomeBOnly,
		align.OutcomeMatch,
	}
	got := outcomes(entries)
	if len(got) != len(want) {
		t.Fatalf("outcomes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("outcomes = %v, want %v", got, want)
		}
	}
	if entries[2].PageB == nil || entries[2].PageB.Index != 2 {
		t.Fatalf("insertion does not carry the extra page: %+v", entries[2])
	}
	if entries[2].Distance != nil {
		t.Fatal("insertion entry should have no distance")
	}
}

func TestAlignSplitsOverThresholdPair(t *testing.T) {
	// Second pages sit 32 bits apart, beyond the threshold, so pairing them
	// would cost more than treating both as unmatched.
	seqA := sequence(t, "a", "0000000000000000", "ffffffff00000000")
	seqB := sequence(t, "b", "0000000000000000", "0000ffffffff0000")

	entries, err := align.Align(seqA, seqB, align.DefaultThreshold)
	if err != nil {
		t.Fatalf("align: %v", err)
	}

	want := []align.Outcome{align.OutcomeMatch, align.OutcomeBOnly, align.OutcomeAOnly}
	got := outcomes(entries)
	if len(got) != len(want) {
		t.Fatalf("outcomes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("outcomes = %v, want %v", got, want)
		}
	}
}

func TestAlignWeakMatch(t *testing.T) {
	// 15 bits apart: within the threshold of 20 but above half of it.
	seqA := sequence(t, "a", "fffe000000000000")
	seqB := sequence(t, "b", "0000000000000000")

	entries, err := align.Align(seqA, seqB, align.DefaultThreshold)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Outcome != align.OutcomeWeakMatch {
		t.Fatalf("outcome = %q, want weak_match", entries[0].Outcome)
	}
	if entries[0].Distance == nil || *entries[0].Distance != 15 {
		t.Fatalf("distance = %v, want 15", entries[0].Distance)
	}
}

func TestAlignStrongMatchBoundary(t *testing.T) {
	// Exactly half the threshold still counts as a strong match.
	seqA := sequence(t, "a", "ffc0000000000000") // 10 bits
	seqB := sequence(t, "b", "0000000000000000")

	entries, err := align.Align(seqA, seqB, align.DefaultThreshold)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	if len(entries) != 1 || entries[0].Outcome != align.OutcomeMatch {
		t.Fatalf("entries = %+v, want a single strong match", entries)
	}
}

func TestAlignZeroThreshold(t *testing.T) {
	// At threshold 0 only identical fingerprints pair; a nearby pair splits
	// into two insertions.
	identical, err := align.Align(
		sequence(t, "a", "0000000000000000"),
		sequence(t, "b", "0000000000000000"),
		0,
	)
	if err != nil {
		t.Fatalf("align identical: %v", err)
	}
	if len(identical) != 1 || identical[0].Outcome != align.OutcomeMatch {
		t.Fatalf("identical pages at threshold 0 = %+v, want one match", identical)
	}

	// 18 bits apart: within the default threshold, but not within 0.
	split, err := align.Align(
		sequence(t, "a", "ffffc00000000000"),
		sequence(t, "b", "0000000000000000"),
		0,
	)
	if err != nil {
		t.Fatalf("align near pair: %v", err)
	}
	if len(split) != 2 {
		t.Fatalf("threshold 0 produced %d entries, want 2 insertions", len(split))
	}
	for _, entry := range split {
		if entry.Outcome.Matched() {
			t.Fatalf("threshold 0 still paired: %+v", split)
		}
	}
}

func TestAlignShapeMismatch(t *testing.T) {
	seqA := sequence(t, "a", "ffff000000000000")
	seqB := sequence(t, "b", "ffff")

	_, err := align.Align(seqA, seqB, align.DefaultThreshold)
	if !errors.Is(err, phash.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestAlignThresholdControlsPairing(t *testing.T) {
	// 15 bits apart: a pair at threshold 20, two insertions at threshold 10.
	seqA := sequence(t, "a", "fffe000000000000")
	seqB := sequence(t, "b", "0000000000000000")

	loose, err := align.Align(seqA, seqB, 20)
	if err != nil {
		t.Fatalf("align loose: %v", err)
	}
	if len(loose) != 1 || !loose[0].Outcome.Matched() {
		t.Fatalf("loose threshold entries = %+v, want one pairing", loose)
	}

	strict, err := align.Align(seqA, seqB, 10)
	if err != nil {
		t.Fatalf("align strict: %v", err)
	}
	if len(strict) != 2 {
		t.Fatalf("strict threshold produced %d entries, want 2", len(strict))
	}
	for _, entry := range strict {
		if entry.Outcome.Matched() {
			t.Fatalf("strict threshold still paired: %+v", strict)
		}
	}
}
