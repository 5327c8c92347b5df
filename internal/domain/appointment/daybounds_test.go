package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

func TestDayBounds_LateEveningLocalCountsForNextUTCDay(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	appointmentAt := time.Date(2025, 3, 10, 23, 30, 0, 0, brt)

	r, err := DayBounds(time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, r.Contains(appointmentAt))
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), r.End)
}

func TestDayBounds_IgnoresInputZone(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2025, 3, 11, 2, 30, 0, 0, time.UTC)

	a, err := DayBounds(instant.In(brt))
	require.NoError(t, err)
	b, err := DayBounds(instant.In(tokyo))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, time.UTC, a.Start.Location())
}

func TestDayRange_HalfOpen(t *testing.T) {
	r, err := DayBounds(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, r.Contains(r.Start))
	assert.False(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.Start.Add(-time.Nanosecond)))
}

func TestDayBounds_RejectsUnrepresentableDates(t *testing.T) {
	_, err := DayBounds(time.Time{})
	var ie *httperr.InputError
	assert.True(t, errors.As(err, &ie))

	_, err = DayBounds(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, errors.As(err, &ie))
}

func TestMonthBounds(t *testing.T) {
	r, err := MonthBounds(time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.End)
}

func TestCountActive(t *testing.T) {
	r, err := DayBounds(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	brt := time.FixedZone("BRT", -3*60*60)
	booked := []BookedInterval{
		{DateTime: time.Date(2025, 3, 10, 23, 30, 0, 0, brt), Status: StatusConfirmed},
		{DateTime: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), Status: StatusScheduled},
		{DateTime: time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC), Status: StatusCancelled},
		{DateTime: time.Date(2025, 3, 11, 11, 0, 0, 0, time.UTC), Status: StatusNoShow},
		{DateTime: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Status: StatusScheduled},
	}

	assert.Equal(t, 2, CountActive(r, booked))
}
