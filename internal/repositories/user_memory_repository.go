package repositories

import (
	"sync"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Records are kept in insertion order and handed out as copies.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  []models.User
	index  map[uint]int
	nextID uint
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		index:  make(map[uint]int),
		nextID: 1,
	}
}

// Create allocates the next id and stamps profileCreatedAt and lastActive.
// Uniqueness of username and email is the caller's responsibility.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user.ID = r.nextID
	user.ProfileCreatedAt = now
	user.LastActive = now
	r.nextID++

	r.index[user.ID] = len(r.users)
	r.users = append(r.users, *user)
	return nil
}

// GetByID returns a user by their ID.
func (r *MemoryUserRepository) GetByID(id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	user := r.users[i]
	return &user, nil
}

// GetByUsername returns the first user with exactly this username.
func (r *MemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username },
		"user with username %s not found", username)
}

// GetByEmail returns the first user with exactly this email.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email },
		"user with email %s not found", email)
}

func (r *MemoryUserRepository) find(match func(*models.User) bool, format string, arg string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if match(&r.users[i]) {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, apperrors.NotFoundf(format, arg)
}

// Update merges patch over the stored user and re-stamps lastActive.
func (r *MemoryUserRepository) Update(id uint, patch models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	user := r.users[i]
	patch.Apply(&user)
	user.LastActive = laterThan(user.LastActive)
	r.users[i] = user
	return &user, nil
}

// List returns all users in insertion order.
func (r *MemoryUserRepository) List() ([]models.User, error) {
	return r.filter(func(*models.User) bool { return true }, 0), nil
}

// Search returns the users matching filter, in insertion order.
func (r *MemoryUserRepository) Search(filter models.SearchFilter, now time.Time) ([]models.User, error) {
	return r.filter(func(u *models.User) bool { return filter.Matches(u, now) }, 0), nil
}

// Featured returns the first limit users in insertion order.
func (r *MemoryUserRepository) Featured(limit int) ([]models.User, error) {
	if limit <= 0 {
		return []models.User{}, nil
	}
	return r.filter(func(*models.User) bool { return true }, limit), nil
}

// filter copies matching users; max <= 0 means no cap.
func (r *MemoryUserRepository) filter(keep func(*models.User) bool, max int) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0)
	for i := range r.users {
		if max > 0 && len(out) == max {
			break
		}
		if keep(&r.users[i]) {
			out = append(out, r.users[i])
		}
	}
	return out
}
