package dto

import "time"

// DashboardDTO is the "today" view of a nutritionist, bounded in UTC.
type DashboardDTO struct {
	DayStart     time.Time            `json:"day_start"`
	DayEnd       time.Time            `json:"day_end"`
	ActiveToday  int                  `json:"active_today"`
	TotalToday   int                  `json:"total_today"`
	ByStatus     map[string]int       `json:"by_status"`
	Appointments []AppointmentListDTO `json:"appointments"`
}
