package repositories

import (
	"sync"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"
)

// MemorySuccessStoryRepository is an in-memory implementation of SuccessStoryRepository.
type MemorySuccessStoryRepository struct {
	mu      sync.RWMutex
	stories []models.SuccessStory
	index   map[uint]int
	nextID  uint
}

// NewMemorySuccessStoryRepository creates a new instance of MemorySuccessStoryRepository.
func NewMemorySuccessStoryRepository() *MemorySuccessStoryRepository {
	return &MemorySuccessStoryRepository{
		index:  make(map[uint]int),
		nextID: 1,
	}
}

// Create stores a new story.
func (r *MemorySuccessStoryRepository) Create(story *models.SuccessStory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	story.ID = r.nextID
	story.CreatedAt = time.Now()
	r.nextID++

	r.index[story.ID] = len(r.stories)
	r.stories = append(r.stories, *story)
	return nil
}

// GetByID returns a story by its ID.
func (r *MemorySuccessStoryRepository) GetByID(id uint) (*models.SuccessStory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("success story", id)
	}
	story := r.stories[i]
	return &story, nil
}

// List returns up to limit stories in creation order.
func (r *MemorySuccessStoryRepository) List(limit int) ([]models.SuccessStory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.stories)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.SuccessStory, n)
	copy(out, r.stories[:n])
	return out, nil
}

// NewMemoryStore returns a Store backed entirely by in-memory repositories.
func NewMemoryStore() *Store {
	return &Store{
		Users:       NewMemoryUserRepository(),
		Preferences: NewMemoryPreferenceRepository(),
		Interests:   NewMemoryInterestRepository(),
		Messages:    NewMemoryMessageRepository(),
		Stories:     NewMemorySuccessStoryRepository(),
	}
}
