package appointment

import (
	"fmt"
	"sort"
	"time"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

// TimeOfDay is a wall-clock HH:mm without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return TimeOfDay{}, fmt.Errorf("%q is not HH:mm", s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// On places the wall-clock time on the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, date.Location())
}

type TimeRange struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (r TimeRange) valid() bool {
	return r.Start.minutes() < r.End.minutes()
}

type DayAvailability struct {
	Weekday     time.Weekday
	IsAvailable bool
	Slots       []TimeRange
	Break       *TimeRange
}

// Availability is the weekly template indexed by time.Weekday.
type Availability [7]DayAvailability

// NewAvailability returns a template with every weekday unavailable.
func NewAvailability() Availability {
	var av Availability
	for i := range av {
		av[i].Weekday = time.Weekday(i)
	}
	return av
}

// Day returns the entry for a weekday.
func (a Availability) Day(wd time.Weekday) DayAvailability {
	return a[wd]
}

// Validate checks one weekday: windows ordered start < end, no overlapping
// windows, and a well-formed break.
func (d DayAvailability) Validate() error {
	field := "availability." + d.Weekday.String()

	if d.Break != nil && !d.Break.valid() {
		return httperr.Validation(field+".break", "start must be before end")
	}

	windows := make([]TimeRange, len(d.Slots))
	copy(windows, d.Slots)
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.minutes() < windows[j].Start.minutes()
	})

	for i, w := range windows {
		if !w.valid() {
			return httperr.Validation(field+".slots", fmt.Sprintf("window %s-%s: start must be before end", w.Start, w.End))
		}
		if i > 0 && w.Start.minutes() < windows[i-1].End.minutes() {
			return httperr.Validation(field+".slots", fmt.Sprintf("window %s-%s overlaps %s-%s", w.Start, w.End, windows[i-1].Start, windows[i-1].End))
		}
	}

	return nil
}

// Validate checks every weekday of the template.
func (a Availability) Validate() error {
	for _, d := range a {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// BookedInterval is the part of an existing appointment the calculator needs.
type BookedInterval struct {
	DateTime time.Time
	Duration time.Duration
	Status   Status
}

func (b BookedInterval) End() time.Time {
	return b.DateTime.Add(b.Duration)
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
