package align

// Summary aggregates entry counts and the mean pairing distance.
//
// Matched counts only strong matches; weak matches are excluded from the
// count but their distances still contribute to AvgDistance. Downstream
// consumers depend on these exact counts, so the asymmetry is deliberate and
// must not be "fixed".
type Summary struct {
	Matched     int
	WeakMatched int
	AOnly       int
	BOnly       int
	AvgDistance float64
}

// Summarize derives aggregate statistics from an alignment entry list.
func Summarize(entries []Entry) Summary {
	var s Summary
	var distanceSum int
	var distanceCount int
	for _, entry := range entries {
		switch entry.Outcome {
		case OutcomeMatch:
			s.Matched++
		case OutcomeWeakMatch:
			s.WeakMatched++
		case OutcomeAOnly:
			s.AOnly++
		case OutcomeBOnly:
			s.BOnly++
		}
		if entry.Distance != nil {
			distanceSum += *entry.Distance
			distanceCount++
		}
	}
	if distanceCount > 0 {
		s.AvgDistance = float64(distanceSum) / float64(distanceCount)
	}
	return s
}
