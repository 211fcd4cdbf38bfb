// Free-slot suggestion: a plain interval-overlap scan over working hours.
package slots

import (
	"time"
)

// Interval is a half-open busy window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two intervals share any time.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether t falls inside the interval.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Params bounds the scan: candidate slots start after After, end before
// Before, and run DurationHours each.
type Params struct {
	After         time.Time
	Before        time.Time
	DurationHours int
}

const (
	dayStartHour = 9
	dayEndHour   = 18
)

// Suggest walks each day between After and Before, proposing hourly start
// times inside working hours (09:00 up to 18:00 minus the duration) and
// dropping any candidate that overlaps a busy interval.
func Suggest(p Params, busy []Interval) []time.Time {
	if p.DurationHours <= 0 {
		p.DurationHours = 1
	}

	var out []time.Time
	day := time.Date(p.After.Year(), p.After.Month(), p.After.Day(), 0, 0, 0, 0, p.After.Location())
	end := time.Date(p.Before.Year(), p.Before.Month(), p.Before.Day(), 23, 59, 59, 0, p.Before.Location())

	for day.Before(end) {
		for hour := dayStartHour; hour <= dayEndHour-p.DurationHours; hour++ {
			start := day.Add(time.Duration(hour) * time.Hour)
			candidate := Interval{Start: start, End: start.Add(time.Duration(p.DurationHours) * time.Hour)}
			if !conflicts(candidate, busy) {
				out = append(out, start)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

func conflicts(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
