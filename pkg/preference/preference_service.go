package preference

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pantry-planner/domain"
	"pantry-planner/entities"
)

type (
	PreferenceService interface {
		GetPreferences(ctx context.Context) (domain.PreferencesResponse, error)
		SetPreferences(ctx context.Context, req domain.UpdatePreferencesRequest) (domain.PreferencesResponse, error)
	}

	preferenceService struct {
		preferenceRepository PreferenceRepository
	}
)

func NewPreferenceService(preferenceRepository PreferenceRepository) PreferenceService {
	return &preferenceService{preferenceRepository: preferenceRepository}
}

// GetPreferences returns an empty profile when none has been saved yet.
func (s *preferenceService) GetPreferences(ctx context.Context) (domain.PreferencesResponse, error) {
	pref, err := s.preferenceRepository.GetPreferences(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PreferencesResponse{}, nil
		}
		return domain.PreferencesResponse{}, err
	}
	return toPreferencesResponse(pref), nil
}

// SetPreferences creates the profile row lazily on first write and
// upserts it afterwards.
func (s *preferenceService) SetPreferences(ctx context.Context, req domain.UpdatePreferencesRequest) (domain.PreferencesResponse, error) {
	pref, err := s.preferenceRepository.GetPreferences(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PreferencesResponse{}, err
		}
		pref = &entities.UserPreference{}
	}

	if req.Allergens != nil {
		pref.Allergens = *req.Allergens
	}
	if req.DietType != nil {
		pref.DietType = *req.DietType
	}
	if req.LikedProducts != nil {
		pref.LikedProducts = *req.LikedProducts
	}
	if req.DislikedProducts != nil {
		pref.DislikedProducts = *req.DislikedProducts
	}

	if err := s.preferenceRepository.SavePreferences(ctx, pref); err != nil {
		return domain.PreferencesResponse{}, err
	}
	return toPreferencesResponse(pref), nil
}

func toPreferencesResponse(pref *entities.UserPreference) domain.PreferencesResponse {
	return domain.PreferencesResponse{
		Allergens:        pref.Allergens,
		DietType:         pref.DietType,
		LikedProducts:    pref.LikedProducts,
		DislikedProducts: pref.DislikedProducts,
	}
}
