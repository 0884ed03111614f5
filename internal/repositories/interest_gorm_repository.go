package repositories

import (
	"errors"
	"fmt"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"

	"gorm.io/gorm"
)

// GORMInterestRepository is a GORM implementation of InterestRepository.
type GORMInterestRepository struct {
	db *gorm.DB
}

// NewGORMInterestRepository creates a new instance of GORMInterestRepository.
func NewGORMInterestRepository(db *gorm.DB) *GORMInterestRepository {
	return &GORMInterestRepository{db: db}
}

func (r *GORMInterestRepository) Create(interest *models.Interest) error {
	now := time.Now()
	interest.ID = 0
	interest.Status = models.InterestPending
	interest.CreatedAt = now
	interest.UpdatedAt = now
	if err := r.db.Create(interest).Error; err != nil {
		return fmt.Errorf("failed to create interest: %w", err)
	}
	return nil
}

func (r *GORMInterestRepository) GetByID(id uint) (*models.Interest, error) {
	var interest models.Interest
	if err := r.db.First(&interest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("interest", id)
		}
		return nil, fmt.Errorf("failed to get interest %d: %w", id, err)
	}
	return &interest, nil
}

func (r *GORMInterestRepository) ListForUser(userID uint) ([]models.Interest, error) {
	interests := make([]models.Interest, 0)
	err := r.db.Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("id").
		Find(&interests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interests for user %d: %w", userID, err)
	}
	return interests, nil
}

// UpdateStatus uses a conditional update so only one answer can win even
// across processes sharing the database.
func (r *GORMInterestRepository) UpdateStatus(id uint, status models.InterestStatus) (*models.Interest, error) {
	interest, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(interest, status); err != nil {
		return nil, err
	}

	updatedAt := laterThan(interest.CreatedAt)
	res := r.db.Model(&models.Interest{}).
		Where("id = ? AND status = ?", id, models.InterestPending).
		Updates(map[string]interface{}{"status": status, "updated_at": updatedAt})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update interest %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost a race against another answer.
		current, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		return nil, checkTransition(current, status)
	}
	interest.Status = status
	interest.UpdatedAt = updatedAt
	return interest, nil
}
