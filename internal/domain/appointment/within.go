package appointment

import (
	"time"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

// FitsAvailability reports whether [start, end) fits inside one window of the
// day without touching the break. Wall-clock is read in start's location.
func FitsAvailability(av Availability, start, end time.Time) error {
	if !start.Before(end) {
		return httperr.Input("duration", "must be positive")
	}

	day := av.Day(start.Weekday())
	if !day.IsAvailable {
		return httperr.ErrBusiness(httperr.CodeOutsideAvailability)
	}
	if err := day.Validate(); err != nil {
		return err
	}

	if day.Break != nil && overlaps(start, end, day.Break.Start.On(start), day.Break.End.On(start)) {
		return httperr.ErrBusiness(httperr.CodeOutsideAvailability)
	}

	for _, w := range day.Slots {
		if !start.Before(w.Start.On(start)) && !end.After(w.End.On(start)) {
			return nil
		}
	}

	return httperr.ErrBusiness(httperr.CodeOutsideAvailability)
}

// overlaps compares half-open intervals [aStart, aEnd) and [bStart, bEnd).
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
