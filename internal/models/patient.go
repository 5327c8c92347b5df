package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeatureFlags are the app modules a nutritionist enabled for a patient.
type FeatureFlags struct {
	Appointments     bool `json:"appointments"`
	MealPlan         bool `json:"mealPlan"`
	Recipes          bool `json:"recipes"`
	Chat             bool `json:"chat"`
	VideoCall        bool `json:"videoCall"`
	FoodDiary        bool `json:"foodDiary"`
	ProgressTracking bool `json:"progressTracking"`
	Notifications    bool `json:"notifications"`
	Documents        bool `json:"documents"`
}

type Patient struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	NutritionistID uuid.UUID    `gorm:"type:uuid;index;not null" json:"nutritionist_id"`
	Nutritionist   Nutritionist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	// ProtocolNumber is NULL only for legacy rows awaiting backfill.
	ProtocolNumber *string `gorm:"size:20;uniqueIndex" json:"protocol_number"`

	PlanType string       `gorm:"size:20;default:'FREE'" json:"plan_type"`
	Features FeatureFlags `gorm:"type:jsonb;serializer:json" json:"features"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Patient) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
