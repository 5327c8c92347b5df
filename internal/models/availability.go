package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DayAvailability is one weekday (0 = Sunday) of a nutritionist's weekly template.
type DayAvailability struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NutritionistID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_availability_day;not null" json:"nutritionist_id"`

	Weekday     int  `gorm:"uniqueIndex:idx_availability_day;not null" json:"weekday"`
	IsAvailable bool `json:"is_available"`

	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	Windows []AvailabilityWindow `gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE;" json:"windows"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvailabilityWindow is a bookable HH:mm range inside a DayAvailability.
type AvailabilityWindow struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DayID uuid.UUID `gorm:"type:uuid;index;not null" json:"day_id"`

	Start string `gorm:"column:start_time;size:5;not null" json:"start"`
	End   string `gorm:"column:end_time;size:5;not null" json:"end"`
}

func (d *DayAvailability) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (w *AvailabilityWindow) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
