package repositories

import (
	"time"

	"vivaham/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(id uint, patch models.UserPatch) (*models.User, error)
	List() ([]models.User, error)
	Search(filter models.SearchFilter, now time.Time) ([]models.User, error)
	Featured(limit int) ([]models.User, error)
}

// PreferenceRepository defines the interface for partner preference data access.
type PreferenceRepository interface {
	// Create fails with a Conflict if the user already has preferences.
	Create(pref *models.UserPreference) error
	GetByID(id uint) (*models.UserPreference, error)
	GetByUserID(userID uint) (*models.UserPreference, error)
	Update(id uint, patch models.PreferencePatch) (*models.UserPreference, error)
}

// InterestRepository defines the interface for interest data access.
type InterestRepository interface {
	Create(interest *models.Interest) error
	GetByID(id uint) (*models.Interest, error)
	ListForUser(userID uint) ([]models.Interest, error)
	// UpdateStatus moves a pending interest to status. Answered interests yield a Conflict.
	UpdateStatus(id uint, status models.InterestStatus) (*models.Interest, error)
}

// MessageRepository defines the interface for message data access.
type MessageRepository interface {
	Create(message *models.Message) error
	GetByID(id uint) (*models.Message, error)
	ListForUser(userID uint) ([]models.Message, error)
	// Thread returns messages between a and b, oldest first.
	Thread(a, b uint) ([]models.Message, error)
	MarkRead(id uint) (*models.Message, error)
}

// SuccessStoryRepository defines the interface for success story data access.
type SuccessStoryRepository interface {
	Create(story *models.SuccessStory) error
	GetByID(id uint) (*models.SuccessStory, error)
	// List returns stories in creation order; limit <= 0 means all.
	List(limit int) ([]models.SuccessStory, error)
}

// Store bundles one repository per entity kind.
type Store struct {
	Users       UserRepository
	Preferences PreferenceRepository
	Interests   InterestRepository
	Messages    MessageRepository
	Stories     SuccessStoryRepository
}
