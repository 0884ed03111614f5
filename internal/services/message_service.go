package services

import (
	"fmt"
	"strings"

	"vivaham/internal/apperrors"
	"vivaham/internal/events"
	"vivaham/internal/models"
	"vivaham/internal/repositories"
)

// MessageService handles direct messages between members.
type MessageService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	publisher   events.Publisher
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, publisher events.Publisher) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo, publisher: publisher}
}

// ListMessages returns every message userID sent or received.
func (s *MessageService) ListMessages(userID uint) ([]models.Message, error) {
	return s.messageRepo.ListForUser(userID)
}

// Thread returns the messages between userID and otherID, oldest first.
func (s *MessageService) Thread(userID, otherID uint) ([]models.Message, error) {
	return s.messageRepo.Thread(userID, otherID)
}

// SendMessage stores a message from the actor.
func (s *MessageService) SendMessage(actorID uint, message *models.Message) error {
	if actorID != message.FromUserID {
		return apperrors.Forbidden("Forbidden. You can only send messages from your own account.")
	}
	if strings.TrimSpace(message.Content) == "" {
		return apperrors.Validation("Validation failed", map[string]string{"content": "is required"})
	}
	if message.FromUserID == message.ToUserID {
		return apperrors.Validation("Validation failed", map[string]string{"toUserId": "must differ from fromUserId"})
	}
	if _, err := s.userRepo.GetByID(message.ToUserID); err != nil {
		return err
	}
	if err := s.messageRepo.Create(message); err != nil {
		return err
	}
	s.publisher.Publish(events.New(events.MessageSent, message))
	return nil
}

// MarkAsRead flags message id as read. Only the recipient may do so, and
// the check happens before anything is written.
func (s *MessageService) MarkAsRead(actorID, id uint) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if actorID != message.ToUserID {
		return nil, apperrors.Forbidden("Forbidden. You can only mark messages addressed to you as read.")
	}
	return s.messageRepo.MarkRead(id)
}

// Conversations summarises userID's message history per counterpart.
func (s *MessageService) Conversations(userID uint) ([]models.Conversation, error) {
	messages, err := s.messageRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return GroupConversations(messages, userID, func(id uint) (*models.User, bool) {
		u, err := s.userRepo.GetByID(id)
		return u, err == nil
	}), nil
}
