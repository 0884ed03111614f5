package services

import (
	"fmt"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"
	"vivaham/internal/repositories"
)

// UserService handles business logic for member profiles.
type UserService struct {
	userRepo repositories.UserRepository
	guard    *IdentityGuard
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, guard *IdentityGuard) *UserService {
	return &UserService{userRepo: userRepo, guard: guard, now: time.Now}
}

// GetUser retrieves a profile by id.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile merges patch over the profile of id. Only the owner may
// update it, and a new username or email must not belong to anyone else.
func (s *UserService) UpdateProfile(actorID, id uint, patch models.UserPatch) (*models.User, error) {
	if actorID != id {
		return nil, apperrors.Forbidden("Forbidden. You can only update your own profile.")
	}
	if _, err := s.userRepo.GetByID(id); err != nil {
		return nil, err
	}

	var username, email string
	if patch.Username != nil {
		username = *patch.Username
	}
	if patch.Email != nil {
		email = *patch.Email
	}

	var updated *models.User
	err := s.guard.Claim(username, email, id, func() error {
		var err error
		updated, err = s.userRepo.Update(id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SearchUsers returns the profiles matching filter in store order.
func (s *UserService) SearchUsers(filter models.SearchFilter) ([]models.User, error) {
	users, err := s.userRepo.Search(filter, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// FeaturedProfiles returns the first limit profiles.
func (s *UserService) FeaturedProfiles(limit int) ([]models.User, error) {
	users, err := s.userRepo.Featured(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured profiles: %w", err)
	}
	return users, nil
}

// Now returns the clock used for age calculations.
func (s *UserService) Now() time.Time {
	return s.now()
}
