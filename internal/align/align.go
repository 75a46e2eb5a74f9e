package align

import (
	"fmt"
	"math"

	"pagesync/internal/phash"
)

// gapPenalty is the cost of leaving one page unmatched. Tied to the
// threshold so that loosening the match criterion also makes gaps cheaper in
// proportion.
func gapPenalty(threshold int) int {
	return threshold + 5
}

// Align computes the minimum-cost order-preserving alignment of two page
// sequences. The substitution cost of a candidate pair is its fingerprint
// distance when within threshold; beyond the threshold the pair costs two
// gap penalties, which lets the traceback split it into two insertions
// instead of forcing a wrong match.
//
// The returned entries are in forward page order for both sides. An error is
// only possible when the two sides were fingerprinted with different hash
// sizes (phash.ErrShapeMismatch).
func Align(seqA, seqB []phash.PageFingerprint, threshold int) ([]Entry, error) {
	n := len(seqA)
	m := len(seqB)

	if n == 0 && m == 0 {
		return []Entry{}, nil
	}
	if n == 0 {
		entries := make([]Entry, 0, m)
		for i := range seqB {
			entries = append(entries, Entry{PageB: &seqB[i], Outcome: OutcomeBOnly})
		}
		return entries, nil
	}
	if m == 0 {
		entries := make([]Entry, 0, n)
		for i := range seqA {
			entries = append(entries, Entry{PageA: &seqA[i], Outcome: OutcomeAOnly})
		}
		return entries, nil
	}

	dist, err := distanceMatrix(seqA, seqB)
	if err != nil {
		return nil, err
	}

	gap := gapPenalty(threshold)
	badMatch := 2 * gap

	// dp[i][j] = minimum cost to align A[0:i] with B[0:j].
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
		for j := range dp[i] {
			dp[i][j] = math.MaxInt / 2
		}
	}
	dp[0][0] = 0
	for i := 1; i <= n; i++ {
		dp[i][0] = i * gap
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = j * gap
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := dist[i-1][j-1]
			diag := dp[i-1][j-1] + badMatch
			if cost <= threshold {
				diag = dp[i-1][j-1] + cost
			}
			best := diag
			if up := dp[i-1][j] + gap; up < best {
				best = up
			}
			if left := dp[i][j-1] + gap; left < best {
				best = left
			}
			dp[i][j] = best
		}
	}

	// Traceback re-derives which branch produced each stored minimum. Ties
	// prefer the diagonal so a true match is never split into two
	// insertions purely by a numeric tie.
	entries := make([]Entry, 0, n+m)
	i, j := n, m
	for i > 0 || j > 0 {
		if i > 0 && j > 0 {
			cost := dist[i-1][j-1]
			if cost <= threshold && dp[i][j] == dp[i-1][j-1]+cost {
				outcome := OutcomeMatch
				if cost > threshold/2 {
					outcome = OutcomeWeakMatch
				}
				d := cost
				entries = append(entries, Entry{
					PageA:    &seqA[i-1],
					PageB:    &seqB[j-1],
					Distance: &d,
					Outcome:  outcome,
				})
				i--
				j--
				continue
			}
			if cost > threshold && dp[i][j] == dp[i-1][j-1]+badMatch {
				// Both indices advance, but as two independent unmatched
				// pages, not a pairing.
				entries = append(entries,
					Entry{PageA: &seqA[i-1], Outcome: OutcomeAOnly},
					Entry{PageB: &seqB[j-1], Outcome: OutcomeBOnly},
				)
				i--
				j--
				continue
			}
		}

		if i > 0 && dp[i][j] == dp[i-1][j]+gap {
			entries = append(entries, Entry{PageA: &seqA[i-1], Outcome: OutcomeAOnly})
			i--
		} else if j > 0 {
			entries = append(entries, Entry{PageB: &seqB[j-1], Outcome: OutcomeBOnly})
			j--
		} else {
			break
		}
	}

	reverse(entries)
	return entries, nil
}

func distanceMatrix(seqA, seqB []phash.PageFingerprint) ([][]int, error) {
	matrix := make([][]int, len(seqA))
	for i := range seqA {
		row := make([]int, len(seqB))
		for j := range seqB {
			d, err := seqA[i].Digest.Distance(seqB[j].Digest)
			if err != nil {
				return nil, fmt.Errorf("page %s vs %s: %w", seqA[i].Filename, seqB[j].Filename, err)
			}
			row[j] = d
		}
		matrix[i] = row
	}
	return matrix, nil
}

func reverse(entries []Entry) {
	for left, right := 0, len(entries)-1; left < right; left, right = left+1, right-1 {
		entries[left], entries[right] = entries[right], entries[left]
	}
}
