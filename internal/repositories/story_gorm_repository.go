package repositories

import (
	"errors"
	"fmt"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"

	"gorm.io/gorm"
)

// GORMSuccessStoryRepository is a GORM implementation of SuccessStoryRepository.
type GORMSuccessStoryRepository struct {
	db *gorm.DB
}

// NewGORMSuccessStoryRepository creates a new instance of GORMSuccessStoryRepository.
func NewGORMSuccessStoryRepository(db *gorm.DB) *GORMSuccessStoryRepository {
	return &GORMSuccessStoryRepository{db: db}
}

func (r *GORMSuccessStoryRepository) Create(story *models.SuccessStory) error {
	story.ID = 0
	story.CreatedAt = time.Now()
	if err := r.db.Create(story).Error; err != nil {
		return fmt.Errorf("failed to create success story: %w", err)
	}
	return nil
}

func (r *GORMSuccessStoryRepository) GetByID(id uint) (*models.SuccessStory, error) {
	var story models.SuccessStory
	if err := r.db.First(&story, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("success story", id)
		}
		return nil, fmt.Errorf("failed to get success story %d: %w", id, err)
	}
	return &story, nil
}

func (r *GORMSuccessStoryRepository) List(limit int) ([]models.SuccessStory, error) {
	stories := make([]models.SuccessStory, 0)
	query := r.db.Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&stories).Error; err != nil {
		return nil, fmt.Errorf("failed to list success stories: %w", err)
	}
	return stories, nil
}

// AutoMigrate creates or updates the tables for every entity kind.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserPreference{},
		&models.Interest{},
		&models.Message{},
		&models.SuccessStory{},
	)
}

// NewGORMStore returns a Store backed by db. Call AutoMigrate first.
func NewGORMStore(db *gorm.DB) *Store {
	return &Store{
		Users:       NewGORMUserRepository(db),
		Preferences: NewGORMPreferenceRepository(db),
		Interests:   NewGORMInterestRepository(db),
		Messages:    NewGORMMessageRepository(db),
		Stories:     NewGORMSuccessStoryRepository(db),
	}
}
