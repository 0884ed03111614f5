package services

import (
	"vivaham/internal/apperrors"
	"vivaham/internal/events"
	"vivaham/internal/models"
	"vivaham/internal/repositories"
)

// StoryService manages success stories.
type StoryService struct {
	storyRepo repositories.SuccessStoryRepository
	userRepo  repositories.UserRepository
	publisher events.Publisher
}

// NewStoryService creates a new StoryService.
func NewStoryService(storyRepo repositories.SuccessStoryRepository, userRepo repositories.UserRepository, publisher events.Publisher) *StoryService {
	return &StoryService{storyRepo: storyRepo, userRepo: userRepo, publisher: publisher}
}

// ListStories returns stories in creation order; limit <= 0 means all.
func (s *StoryService) ListStories(limit int) ([]models.SuccessStory, error) {
	return s.storyRepo.List(limit)
}

func (s *StoryService) GetStory(id uint) (*models.SuccessStory, error) {
	return s.storyRepo.GetByID(id)
}

// CreateStory stores a story told by one of its two partners.
func (s *StoryService) CreateStory(actorID uint, story *models.SuccessStory) error {
	if actorID != story.User1ID && actorID != story.User2ID {
		return apperrors.Forbidden("Forbidden. You can only create success stories involving yourself.")
	}
	if story.User1ID == story.User2ID {
		return apperrors.Validation("Validation failed", map[string]string{"user2Id": "must differ from user1Id"})
	}
	for _, id := range []uint{story.User1ID, story.User2ID} {
		if _, err := s.userRepo.GetByID(id); err != nil {
			return err
		}
	}
	if err := s.storyRepo.Create(story); err != nil {
		return err
	}
	s.publisher.Publish(events.New(events.StoryCreated, story))
	return nil
}
