package appointment

import "time"

// DayRange is the half-open instant range [Start, End).
type DayRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayBounds truncates date to UTC midnight. The server's local zone is never
// consulted, so "today" means the same instants on every host.
func DayBounds(date time.Time) (DayRange, error) {
	if err := checkDate(date); err != nil {
		return DayRange{}, err
	}

	y, m, d := date.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return DayRange{Start: start, End: start.Add(24 * time.Hour)}, nil
}

// MonthBounds is the UTC calendar month containing date.
func MonthBounds(date time.Time) (DayRange, error) {
	if err := checkDate(date); err != nil {
		return DayRange{}, err
	}

	y, m, _ := date.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)

	return DayRange{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

func (r DayRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// CountActive counts bookings starting inside r that are not cancelled or no-show.
func CountActive(r DayRange, booked []BookedInterval) int {
	n := 0
	for _, b := range booked {
		if b.Status.Active() && r.Contains(b.DateTime) {
			n++
		}
	}
	return n
}
