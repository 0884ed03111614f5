package repositories

import (
	"errors"
	"fmt"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"

	"gorm.io/gorm"
)

// GORMPreferenceRepository is a GORM implementation of PreferenceRepository.
// The unique index on user_id backs the one-record-per-user rule.
type GORMPreferenceRepository struct {
	db *gorm.DB
}

// NewGORMPreferenceRepository creates a new instance of GORMPreferenceRepository.
func NewGORMPreferenceRepository(db *gorm.DB) *GORMPreferenceRepository {
	return &GORMPreferenceRepository{db: db}
}

func (r *GORMPreferenceRepository) Create(pref *models.UserPreference) error {
	pref.ID = 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserPreference{}).Where("user_id = ?", pref.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(pref).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("Preferences already exist. Use PUT to update.")
		}
		return fmt.Errorf("failed to create preferences: %w", err)
	}
	return nil
}

func (r *GORMPreferenceRepository) GetByID(id uint) (*models.UserPreference, error) {
	var pref models.UserPreference
	if err := r.db.First(&pref, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("preference", id)
		}
		return nil, fmt.Errorf("failed to get preference %d: %w", id, err)
	}
	return &pref, nil
}

func (r *GORMPreferenceRepository) GetByUserID(userID uint) (*models.UserPreference, error) {
	var pref models.UserPreference
	if err := r.db.First(&pref, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("preferences for user %d not found", userID)
		}
		return nil, fmt.Errorf("failed to get preferences for user %d: %w", userID, err)
	}
	return &pref, nil
}

func (r *GORMPreferenceRepository) Update(id uint, patch models.PreferencePatch) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pref, "id = ?", id).Error; err != nil {
			return err
		}
		patch.Apply(&pref)
		if err := pref.CheckAgeRange(); err != nil {
			return err
		}
		return tx.Save(&pref).Error
	})
	switch {
	case err == nil:
		return &pref, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.NotFound("preference", id)
	case apperrors.KindOf(err) != apperrors.KindInternal:
		return nil, err
	default:
		return nil, fmt.Errorf("failed to update preference %d: %w", id, err)
	}
}
