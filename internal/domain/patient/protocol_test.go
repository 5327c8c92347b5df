package patient

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

func TestNextProtocolNumber(t *testing.T) {
	jan := time.Date(2025, 1, 20, 15, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		now    time.Time
		latest string
		want   string
	}{
		{"continues the month", jan, "NUTRI-202501-0042", "NUTRI-202501-0043"},
		{"first of the month", feb, "", "NUTRI-202502-0001"},
		{"carries into next digit", jan, "NUTRI-202501-0099", "NUTRI-202501-0100"},
		{"last possible", jan, "NUTRI-202501-9998", "NUTRI-202501-9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextProtocolNumber("NUTRI", tt.now, tt.latest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextProtocolNumber_Exhausted(t *testing.T) {
	now := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	_, err := NextProtocolNumber("NUTRI", now, "NUTRI-202501-9999")

	assert.True(t, httperr.IsBusiness(err, httperr.CodeSequenceExhausted))
}

func TestNextProtocolNumber_RejectsOtherMonth(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := NextProtocolNumber("NUTRI", now, "NUTRI-202501-0042")

	var ve *httperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestMonthPrefix_UsesUTCMonth(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	// 31 Jan 22:30 in Brazil is already February in UTC.
	local := time.Date(2025, 1, 31, 22, 30, 0, 0, brt)

	assert.Equal(t, "NUTRI-202502", MonthPrefix("NUTRI", local))
	assert.Equal(t, "NUTRI-202502", MonthPrefix("", local))
}

func TestParseProtocol(t *testing.T) {
	prefix, n, err := ParseProtocol("NUTRI-202501-0042")
	require.NoError(t, err)
	assert.Equal(t, "NUTRI-202501", prefix)
	assert.Equal(t, 42, n)

	for _, bad := range []string{"", "NUTRI", "NUTRI-202501-42", "NUTRI-2025-0042", "NUTRI-202513-0001", "NUTRI-202501-00a1", "NUTRI-202501-0000"} {
		_, _, err := ParseProtocol(bad)
		assert.Error(t, err, bad)
	}
}
