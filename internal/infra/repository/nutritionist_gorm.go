package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

// NutritionistGormRepository serves the profile endpoints and the seed command.
type NutritionistGormRepository struct {
	db *gorm.DB
}

func NewNutritionistGormRepository(db *gorm.DB) *NutritionistGormRepository {
	return &NutritionistGormRepository{db: db}
}

func (r *NutritionistGormRepository) Create(
	ctx context.Context,
	n *models.Nutritionist,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error
}

func (r *NutritionistGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Nutritionist, error) {

	var n models.Nutritionist
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&n).Error; err != nil {
		return nil, translate("nutritionist", err, httperr.CodeNutritionistNotFound)
	}
	return &n, nil
}

// UpdateProfile writes the editable profile fields.
func (r *NutritionistGormRepository) UpdateProfile(
	ctx context.Context,
	n *models.Nutritionist,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Nutritionist{ID: n.ID}).
		Select("name", "phone", "timezone", "slot_duration_min").
		Updates(n)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNutritionistNotFound)
	}
	return nil
}
