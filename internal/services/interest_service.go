package services

import (
	"vivaham/internal/apperrors"
	"vivaham/internal/events"
	"vivaham/internal/models"
	"vivaham/internal/repositories"
)

// InterestService runs the express-interest workflow.
type InterestService struct {
	interestRepo repositories.InterestRepository
	userRepo     repositories.UserRepository
	publisher    events.Publisher
}

// NewInterestService creates a new InterestService.
func NewInterestService(interestRepo repositories.InterestRepository, userRepo repositories.UserRepository, publisher events.Publisher) *InterestService {
	return &InterestService{interestRepo: interestRepo, userRepo: userRepo, publisher: publisher}
}

// ListInterests returns the interests userID sent or received.
func (s *InterestService) ListInterests(userID uint) ([]models.Interest, error) {
	return s.interestRepo.ListForUser(userID)
}

// ExpressInterest records a pending interest from the actor.
func (s *InterestService) ExpressInterest(actorID uint, interest *models.Interest) error {
	if actorID != interest.FromUserID {
		return apperrors.Forbidden("Forbidden. You can only express interest from your own account.")
	}
	if interest.FromUserID == interest.ToUserID {
		return apperrors.Validation("Validation failed", map[string]string{"toUserId": "must differ from fromUserId"})
	}
	if _, err := s.userRepo.GetByID(interest.ToUserID); err != nil {
		return err
	}
	if err := s.interestRepo.Create(interest); err != nil {
		return err
	}
	s.publisher.Publish(events.New(events.InterestCreated, interest))
	return nil
}

// RespondToInterest lets the recipient accept or decline a pending interest.
func (s *InterestService) RespondToInterest(actorID, id uint, status models.InterestStatus) (*models.Interest, error) {
	interest, err := s.interestRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if actorID != interest.ToUserID {
		return nil, apperrors.Forbidden("Forbidden. You can only respond to interests sent to you.")
	}
	updated, err := s.interestRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(events.New(events.InterestResponded, updated))
	return updated, nil
}
