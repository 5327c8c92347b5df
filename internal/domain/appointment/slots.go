package appointment

import (
	"sort"
	"time"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

// Years a date may carry; protocol numbers and the day bounds use a four digit year.
const (
	minYear = 1000
	maxYear = 9999
)

func checkDate(date time.Time) error {
	if date.IsZero() {
		return httperr.Input("date", "missing")
	}
	if y := date.Year(); y < minYear || y > maxYear {
		return httperr.Input("date", "year outside 1000-9999")
	}
	return nil
}

// CalculateSlots returns the bookable increments of date's weekday, in
// chronological order. Template times are wall-clock in date's location.
// An increment touching the break or any active booking is dropped whole.
func CalculateSlots(
	av Availability,
	date time.Time,
	increment time.Duration,
	booked []BookedInterval,
) ([]TimeSlot, error) {

	if err := checkDate(date); err != nil {
		return nil, err
	}
	if increment <= 0 {
		return nil, httperr.Validation("increment", "must be positive")
	}

	day := av.Day(date.Weekday())
	if !day.IsAvailable {
		return []TimeSlot{}, nil
	}
	if err := day.Validate(); err != nil {
		return nil, err
	}

	busy := make([]BookedInterval, 0, len(booked))
	for _, b := range booked {
		if b.Status.Active() && b.Duration > 0 {
			busy = append(busy, b)
		}
	}

	var breakStart, breakEnd time.Time
	if day.Break != nil {
		breakStart = day.Break.Start.On(date)
		breakEnd = day.Break.End.On(date)
	}

	slots := []TimeSlot{}

	for _, w := range day.Slots {
		windowEnd := w.End.On(date)

		for cur := w.Start.On(date); !cur.Add(increment).After(windowEnd); cur = cur.Add(increment) {
			end := cur.Add(increment)

			if day.Break != nil && overlaps(cur, end, breakStart, breakEnd) {
				continue
			}

			taken := false
			for _, b := range busy {
				if overlaps(cur, end, b.DateTime, b.End()) {
					taken = true
					break
				}
			}
			if taken {
				continue
			}

			slots = append(slots, TimeSlot{Start: cur, End: end})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots, nil
}
