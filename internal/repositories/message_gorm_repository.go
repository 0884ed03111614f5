package repositories

import (
	"errors"
	"fmt"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"

	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{db: db}
}

func (r *GORMMessageRepository) Create(message *models.Message) error {
	message.ID = 0
	message.CreatedAt = time.Now()
	message.Read = false
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *GORMMessageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("message", id)
		}
		return nil, fmt.Errorf("failed to get message %d: %w", id, err)
	}
	return &message, nil
}

func (r *GORMMessageRepository) ListForUser(userID uint) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	err := r.db.Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("id").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for user %d: %w", userID, err)
	}
	return messages, nil
}

func (r *GORMMessageRepository) Thread(a, b uint) ([]models.Message, error) {
	messages := make([]models.Message, 0)
	err := r.db.
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get thread between %d and %d: %w", a, b, err)
	}
	return messages, nil
}

func (r *GORMMessageRepository) MarkRead(id uint) (*models.Message, error) {
	message, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message.Read {
		return message, nil
	}
	if err := r.db.Model(&models.Message{}).Where("id = ?", id).Update("read", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark message %d as read: %w", id, err)
	}
	message.Read = true
	return message, nil
}
