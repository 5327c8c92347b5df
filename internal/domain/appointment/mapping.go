package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

// AvailabilityFromModels builds the weekly template from stored rows.
// Weekdays without a row are unavailable.
func AvailabilityFromModels(days []models.DayAvailability) (Availability, error) {
	av := NewAvailability()

	for _, d := range days {
		if d.Weekday < 0 || d.Weekday > 6 {
			return av, httperr.Validation("availability.weekday", fmt.Sprintf("%d is not 0-6", d.Weekday))
		}

		day := DayAvailability{
			Weekday:     time.Weekday(d.Weekday),
			IsAvailable: d.IsAvailable,
		}
		field := "availability." + day.Weekday.String()

		for _, w := range d.Windows {
			r, err := parseRange(w.Start, w.End)
			if err != nil {
				return av, httperr.Validation(field+".slots", err.Error())
			}
			day.Slots = append(day.Slots, r)
		}

		if d.BreakStart != "" || d.BreakEnd != "" {
			r, err := parseRange(d.BreakStart, d.BreakEnd)
			if err != nil {
				return av, httperr.Validation(field+".break", err.Error())
			}
			day.Break = &r
		}

		av[day.Weekday] = day
	}

	return av, nil
}

func parseRange(start, end string) (TimeRange, error) {
	s, err := ParseTimeOfDay(strings.TrimSpace(start))
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ParseTimeOfDay(strings.TrimSpace(end))
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: s, End: e}, nil
}

// AvailabilityToModels produces one row per weekday, ready to be stored.
func AvailabilityToModels(nutritionistID uuid.UUID, av Availability) []models.DayAvailability {
	days := make([]models.DayAvailability, 0, len(av))

	for i, d := range av {
		row := models.DayAvailability{
			NutritionistID: nutritionistID,
			Weekday:        i,
			IsAvailable:    d.IsAvailable,
		}
		if d.Break != nil {
			row.BreakStart = d.Break.Start.String()
			row.BreakEnd = d.Break.End.String()
		}
		for _, w := range d.Slots {
			row.Windows = append(row.Windows, models.AvailabilityWindow{
				Start: w.Start.String(),
				End:   w.End.String(),
			})
		}
		days = append(days, row)
	}

	return days
}

func BookedFromModels(apps []models.Appointment) []BookedInterval {
	out := make([]BookedInterval, 0, len(apps))
	for _, a := range apps {
		out = append(out, BookedInterval{
			DateTime: a.DateTime,
			Duration: time.Duration(a.Duration) * time.Minute,
			Status:   Status(a.Status),
		})
	}
	return out
}

// VideoRoomURL is the call room of an ONLINE appointment.
func VideoRoomURL(base string, appointmentID uuid.UUID) string {
	return strings.TrimRight(base, "/") + "/nutri-" + appointmentID.String()
}
