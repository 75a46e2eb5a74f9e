// Package align matches pages between two versions of the same chapter using
// global sequence alignment over perceptual hash distances.
//
// The alignment is Needleman–Wunsch style: substitution cost is the
// fingerprint distance between a candidate page pair, leaving a page
// unmatched costs a gap penalty derived from the threshold, and a pair more
// dissimilar than the threshold is treated as two independent insertions
// instead of a forced match. The result preserves both sides' original page
// order.
package align
