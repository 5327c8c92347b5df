package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	NutritionistID uuid.UUID    `gorm:"type:uuid;index:idx_appointment_schedule,priority:1;not null" json:"nutritionist_id"`
	Nutritionist   Nutritionist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	PatientID uuid.UUID `gorm:"type:uuid;index;not null" json:"patient_id"`
	Patient   Patient   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DateTime time.Time `gorm:"index:idx_appointment_schedule,priority:2;not null" json:"date_time"`
	Duration int       `gorm:"not null" json:"duration"` // minutes

	Status string `gorm:"size:20;default:'SCHEDULED'" json:"status"`
	Type   string `gorm:"size:20;default:'ONLINE'" json:"type"`

	Notes        string `gorm:"size:255" json:"notes"`
	VideoRoomURL string `gorm:"size:255" json:"video_room_url,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndTime is DateTime + Duration.
func (a Appointment) EndTime() time.Time {
	return a.DateTime.Add(time.Duration(a.Duration) * time.Minute)
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
