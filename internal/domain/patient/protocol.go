package patient

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

const (
	DefaultProtocolPrefix = "NUTRI"

	// MaxSequence is the largest four digit suffix of a month.
	MaxSequence = 9999
)

// MonthPrefix is "<prefix>-YYYYMM" for the UTC calendar month of t.
func MonthPrefix(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = DefaultProtocolPrefix
	}
	return fmt.Sprintf("%s-%s", prefix, t.UTC().Format("200601"))
}

// NextProtocolNumber returns the number following latest inside the month of now.
// latest is the highest existing number with the month prefix, or "" when
// the month has none yet.
func NextProtocolNumber(prefix string, now time.Time, latest string) (string, error) {
	monthPrefix := MonthPrefix(prefix, now)

	seq := 0
	if latest != "" {
		p, n, err := ParseProtocol(latest)
		if err != nil {
			return "", err
		}
		if p != monthPrefix {
			return "", httperr.Validation("protocol_number", fmt.Sprintf("%s does not belong to %s", latest, monthPrefix))
		}
		seq = n
	}

	if seq >= MaxSequence {
		return "", httperr.ErrBusiness(httperr.CodeSequenceExhausted)
	}

	return FormatProtocol(monthPrefix, seq+1), nil
}

func FormatProtocol(monthPrefix string, seq int) string {
	return fmt.Sprintf("%s-%04d", monthPrefix, seq)
}

// ParseProtocol splits "NUTRI-202501-0042" into "NUTRI-202501" and 42.
func ParseProtocol(s string) (string, int, error) {
	i := strings.LastIndex(s, "-")
	if i <= 0 {
		return "", 0, httperr.Validation("protocol_number", s+" has no sequence")
	}

	monthPrefix, suffix := s[:i], s[i+1:]
	if len(suffix) != 4 {
		return "", 0, httperr.Validation("protocol_number", s+" sequence is not four digits")
	}

	j := strings.LastIndex(monthPrefix, "-")
	if j <= 0 || len(monthPrefix)-j-1 != 6 {
		return "", 0, httperr.Validation("protocol_number", s+" has no YYYYMM")
	}
	if _, err := time.Parse("200601", monthPrefix[j+1:]); err != nil {
		return "", 0, httperr.Validation("protocol_number", s+" has no YYYYMM")
	}

	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return "", 0, httperr.Validation("protocol_number", s+" sequence is not a positive number")
	}

	return monthPrefix, n, nil
}
