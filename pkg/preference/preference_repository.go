package preference

import (
	"context"

	"gorm.io/gorm"

	"pantry-planner/entities"
)

type (
	PreferenceRepository interface {
		GetPreferences(ctx context.Context) (*entities.UserPreference, error)
		SavePreferences(ctx context.Context, pref *entities.UserPreference) error
	}

	preferenceRepository struct {
		db *gorm.DB
	}
)

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetPreferences(ctx context.Context) (*entities.UserPreference, error) {
	var pref entities.UserPreference
	if err := r.db.WithContext(ctx).Order("id asc").First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) SavePreferences(ctx context.Context, pref *entities.UserPreference) error {
	return r.db.WithContext(ctx).Save(pref).Error
}
