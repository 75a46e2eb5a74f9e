package phash_test

import (
	"errors"
	"testing"

	"pagesync/internal/phash"
	"pagesync/internal/testsupport"
)

func TestComputeDeterministic(t *testing.T) {
	data := testsupport.PageImage(t, 1)

	first, width, height, err := phash.Compute(data, phash.DefaultHashSize)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if width != 128 || height != 128 {
		t.Fatalf("dimensions = %dx%d, want 128x128", width, height)
	}
	if first.Len() != 64 {
		t.Fatalf("digest length = %d bits, want 64", first.Len())
	}

	second, _, _, err := phash.Compute(data, phash.DefaultHashSize)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	dist, err := first.Distance(second)
	if err != nil {
		t.Fatalf("distance: %v", err)
	}
	if dist != 0 {
		t.Fatalf("same bytes produced distance %d", dist)
	}
}

func TestComputeHashSize(t *testing.T) {
	data := testsupport.PageImage(t, 2)

	d, _, _, err := phash.Compute(data, 16)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if d.Len() != 256 {
		t.Fatalf("digest length = %d bits, want 256", d.Len())
	}

	// Sizes below the minimum fall back to the default.
	fallback, _, _, err := phash.Compute(data, 1)
	if err != nil {
		t.Fatalf("compute with tiny size: %v", err)
	}
	if fallback.Len() != 64 {
		t.Fatalf("fallback digest length = %d bits, want 64", fallback.Len())
	}
}

func TestComputeDecodeError(t *testing.T) {
	_, _, _, err := phash.Compute([]byte("definitely not an image"), phash.DefaultHashSize)
	if err == nil {
		t.Fatal("expected decode error")
	}
	var decodeErr *phash.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}
