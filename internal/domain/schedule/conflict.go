package schedule

import "time"

// Interval is a half-open time range [StartAt, EndAt).
type Interval struct {
	StartAt time.Time
	EndAt   time.Time
}

// Overlaps reports whether two half-open intervals share any instant.
// Back-to-back sessions where one ends exactly when the other starts
// do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.StartAt.Before(b.EndAt) && b.StartAt.Before(a.EndAt)
}

func (a Interval) Contains(t time.Time) bool {
	return !t.Before(a.StartAt) && t.Before(a.EndAt)
}

// FindConflict returns the first requested occurrence that overlaps
// any busy interval, checking occurrences in order. A single conflict
// anywhere in the series rejects the whole request.
func FindConflict(occurrences []Occurrence, busy []Interval) (Occurrence, bool) {
	for _, occ := range occurrences {
		candidate := occ.Interval()
		for _, b := range busy {
			if candidate.Overlaps(b) {
				return occ, true
			}
		}
	}
	return Occurrence{}, false
}
