package appointment

import (
	"time"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/timezone"
)

// Settings are the service-wide scheduling values read from config.
type Settings struct {
	SlotMinutes      int
	VideoCallBaseURL string
	Now              func() time.Time
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// increment is the nutritionist's own slot size, else the service default.
func (s Settings) increment(n *models.Nutritionist) time.Duration {
	if n.SlotDurationMin > 0 {
		return time.Duration(n.SlotDurationMin) * time.Minute
	}
	if s.SlotMinutes > 0 {
		return time.Duration(s.SlotMinutes) * time.Minute
	}
	return time.Hour
}

func location(n *models.Nutritionist) *time.Location {
	return timezone.Location(n.Timezone)
}
