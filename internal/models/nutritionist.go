package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Nutritionist struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`
	Timezone string `gorm:"size:64" json:"timezone"`

	// SlotDurationMin overrides the service-wide slot size when > 0.
	SlotDurationMin int `gorm:"default:0" json:"slot_duration_min"`

	Availability []DayAvailability `gorm:"foreignKey:NutritionistID;constraint:OnDelete:CASCADE;" json:"availability,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Nutritionist) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
