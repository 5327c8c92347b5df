package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

type AppointmentListDTO struct {
	ID             uuid.UUID `json:"id"`
	DateTime       time.Time `json:"date_time"`
	EndTime        time.Time `json:"end_time"`
	Duration       int       `json:"duration"`
	Status         string    `json:"status"`
	Type           string    `json:"type"`
	PatientID      uuid.UUID `json:"patient_id"`
	PatientName    string    `json:"patient_name"`
	ProtocolNumber string    `json:"protocol_number,omitempty"`
	VideoRoomURL   string    `json:"video_room_url,omitempty"`
}

func AppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		item := AppointmentListDTO{
			ID:           ap.ID,
			DateTime:     ap.DateTime,
			EndTime:      ap.EndTime(),
			Duration:     ap.Duration,
			Status:       ap.Status,
			Type:         ap.Type,
			PatientID:    ap.PatientID,
			PatientName:  ap.Patient.Name,
			VideoRoomURL: ap.VideoRoomURL,
		}
		if ap.Patient.ProtocolNumber != nil {
			item.ProtocolNumber = *ap.Patient.ProtocolNumber
		}
		out = append(out, item)
	}
	return out
}
