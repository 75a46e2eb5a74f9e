package phash

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"
)

// ErrShapeMismatch indicates two digests of different bit lengths were
// compared. This means the two sides were fingerprinted with different
// hash sizes, which invalidates every distance computed from them; callers
// should surface it rather than recover.
var ErrShapeMismatch = errors.New("phash: digest length mismatch")

// Digest is a fixed-length perceptual hash bit vector. The zero value is an
// empty digest.
type Digest struct {
	bits []byte
	n    int
}

func newDigest(bitCount int) Digest {
	return Digest{bits: make([]byte, (bitCount+7)/8), n: bitCount}
}

func (d *Digest) setBit(i int) {
	d.bits[i/8] |= 1 << (7 - uint(i%8))
}

// Len returns the number of bits in the digest.
func (d Digest) Len() int { return d.n }

// IsZero reports whether the digest is empty (unset).
func (d Digest) IsZero() bool { return d.n == 0 }

// String renders the digest as lowercase hex, most significant bit first.
func (d Digest) String() string {
	return hex.EncodeToString(d.bits)
}

// ParseDigest decodes a hex digest produced by String. The bit length is
// taken from the encoded size, so digests narrower than a byte boundary do
// not round-trip exactly.
func ParseDigest(s string) (Digest, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, fmt.Errorf("parse digest: %w", err)
	}
	return Digest{bits: raw, n: len(raw) * 8}, nil
}

// Distance returns the Hamming distance between two equal-length digests.
func (d Digest) Distance(other Digest) (int, error) {
	if d.n != other.n || len(d.bits) != len(other.bits) {
		return 0, fmt.Errorf("%w: %d bits vs %d bits", ErrShapeMismatch, d.n, other.n)
	}
	total := 0
	for i := range d.bits {
		total += bits.OnesCount8(d.bits[i] ^ other.bits[i])
	}
	return total, nil
}

// MarshalJSON encodes the digest as its hex string.
func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a hex string digest.
func (d *Digest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDigest(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
