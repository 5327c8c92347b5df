package timezone

import (
	"fmt"
	"sync/atomic"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

var fallback atomic.Pointer[time.Location]

// SetDefault changes the zone used for nutritionists without a valid timezone.
func SetDefault(tz string) error {
	if !IsValid(tz) {
		return fmt.Errorf("timezone: unknown zone %q", tz)
	}
	loc, _ := time.LoadLocation(tz)
	fallback.Store(loc)
	return nil
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to the configured default zone.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return Default()
}

func Default() *time.Location {
	if loc := fallback.Load(); loc != nil {
		return loc
	}
	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}
