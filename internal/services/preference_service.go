package services

import (
	"vivaham/internal/apperrors"
	"vivaham/internal/models"
	"vivaham/internal/repositories"
)

// PreferenceService manages partner preferences.
type PreferenceService struct {
	prefRepo repositories.PreferenceRepository
	userRepo repositories.UserRepository
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(prefRepo repositories.PreferenceRepository, userRepo repositories.UserRepository) *PreferenceService {
	return &PreferenceService{prefRepo: prefRepo, userRepo: userRepo}
}

// GetPreferences returns the preferences of userID. Members may only read
// their own.
func (s *PreferenceService) GetPreferences(actorID, userID uint) (*models.UserPreference, error) {
	if actorID != userID {
		return nil, apperrors.Forbidden("Forbidden. You can only view your own preferences.")
	}
	pref, err := s.prefRepo.GetByUserID(userID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.NotFoundf("Preferences not found")
		}
		return nil, err
	}
	return pref, nil
}

// CreatePreferences stores the first preference record of pref.UserID.
func (s *PreferenceService) CreatePreferences(actorID uint, pref *models.UserPreference) error {
	if actorID != pref.UserID {
		return apperrors.Forbidden("Forbidden. You can only create preferences for yourself.")
	}
	if err := pref.CheckAgeRange(); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(pref.UserID); err != nil {
		return err
	}
	return s.prefRepo.Create(pref)
}

// UpdatePreferences merges patch over preference id, which must be the
// actor's own record.
func (s *PreferenceService) UpdatePreferences(actorID, id uint, patch models.PreferencePatch) (*models.UserPreference, error) {
	own, err := s.prefRepo.GetByUserID(actorID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.NotFoundf("Preferences not found")
		}
		return nil, err
	}
	if own.ID != id {
		return nil, apperrors.Forbidden("Forbidden. You can only update your own preferences.")
	}
	return s.prefRepo.Update(id, patch)
}
