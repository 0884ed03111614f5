package repositories

import (
	"errors"
	"fmt"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	now := time.Now()
	user.ID = 0
	user.ProfileCreatedAt = now
	user.LastActive = now
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("Username or email already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Order("id").First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user with username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Order("id").First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// Update merges patch over the stored user and re-stamps lastActive.
func (r *GORMUserRepository) Update(id uint, patch models.UserPatch) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		patch.Apply(&user)
		user.LastActive = laterThan(user.LastActive)
		return tx.Save(&user).Error
	})
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.NotFound("user", id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, apperrors.Conflict("Username or email already exists")
	default:
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
}

// List retrieves all users in insertion order.
func (r *GORMUserRepository) List() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Search narrows candidates with the exact-match filters in SQL and applies
// the full predicate in Go so both stores share one definition of a match.
func (r *GORMUserRepository) Search(filter models.SearchFilter, now time.Time) ([]models.User, error) {
	query := r.db.Order("id")
	if filter.Gender != nil {
		query = query.Where("gender = ?", *filter.Gender)
	}
	if filter.MotherTongue != nil && *filter.MotherTongue != models.AnyMotherTongue {
		query = query.Where("mother_tongue = ?", *filter.MotherTongue)
	}
	if filter.Religion != nil {
		query = query.Where("religion = ?", *filter.Religion)
	}
	if filter.MaritalStatus != nil {
		query = query.Where("marital_status = ?", *filter.MaritalStatus)
	}

	var candidates []models.User
	if err := query.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	users := make([]models.User, 0, len(candidates))
	for i := range candidates {
		if filter.Matches(&candidates[i], now) {
			users = append(users, candidates[i])
		}
	}
	return users, nil
}

// Featured retrieves the first limit users in insertion order.
func (r *GORMUserRepository) Featured(limit int) ([]models.User, error) {
	users := make([]models.User, 0)
	if limit <= 0 {
		return users, nil
	}
	if err := r.db.Order("id").Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get featured users: %w", err)
	}
	return users, nil
}
