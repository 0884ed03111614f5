package repositories

import (
	"sort"
	"sync"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"
)

// MemoryMessageRepository is an in-memory implementation of MessageRepository.
type MemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []models.Message
	index    map[uint]int
	nextID   uint
}

// NewMemoryMessageRepository creates a new instance of MemoryMessageRepository.
func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{
		index:  make(map[uint]int),
		nextID: 1,
	}
}

// Create stores an unread message stamped with the current time.
func (r *MemoryMessageRepository) Create(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = r.nextID
	message.CreatedAt = time.Now()
	message.Read = false
	r.nextID++

	r.index[message.ID] = len(r.messages)
	r.messages = append(r.messages, *message)
	return nil
}

// GetByID returns a message by its ID.
func (r *MemoryMessageRepository) GetByID(id uint) (*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("message", id)
	}
	message := r.messages[i]
	return &message, nil
}

// ListForUser returns every message sent or received by userID, in creation order.
func (r *MemoryMessageRepository) ListForUser(userID uint) ([]models.Message, error) {
	return r.filter(func(m *models.Message) bool { return m.Involves(userID) }), nil
}

// Thread returns the messages exchanged between a and b, oldest first.
func (r *MemoryMessageRepository) Thread(a, b uint) ([]models.Message, error) {
	thread := r.filter(func(m *models.Message) bool { return m.Between(a, b) })
	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].CreatedAt.Before(thread[j].CreatedAt)
	})
	return thread, nil
}

// MarkRead flags a message as read. Marking an already read message is a no-op.
func (r *MemoryMessageRepository) MarkRead(id uint) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("message", id)
	}
	r.messages[i].Read = true
	message := r.messages[i]
	return &message, nil
}

func (r *MemoryMessageRepository) filter(keep func(*models.Message) bool) []models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Message, 0)
	for i := range r.messages {
		if keep(&r.messages[i]) {
			out = append(out, r.messages[i])
		}
	}
	return out
}
