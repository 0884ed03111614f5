package repositories

import (
	"fmt"
	"sync"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"
)

// MemoryInterestRepository is an in-memory implementation of InterestRepository.
type MemoryInterestRepository struct {
	mu        sync.RWMutex
	interests []models.Interest
	index     map[uint]int
	nextID    uint
}

// NewMemoryInterestRepository creates a new instance of MemoryInterestRepository.
func NewMemoryInterestRepository() *MemoryInterestRepository {
	return &MemoryInterestRepository{
		index:  make(map[uint]int),
		nextID: 1,
	}
}

// Create stores a new pending interest.
func (r *MemoryInterestRepository) Create(interest *models.Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	interest.ID = r.nextID
	interest.Status = models.InterestPending
	interest.CreatedAt = now
	interest.UpdatedAt = now
	r.nextID++

	r.index[interest.ID] = len(r.interests)
	r.interests = append(r.interests, *interest)
	return nil
}

// GetByID returns an interest by its ID.
func (r *MemoryInterestRepository) GetByID(id uint) (*models.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("interest", id)
	}
	interest := r.interests[i]
	return &interest, nil
}

// ListForUser returns interests sent or received by userID, in creation order.
func (r *MemoryInterestRepository) ListForUser(userID uint) ([]models.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Interest, 0)
	for i := range r.interests {
		if r.interests[i].Involves(userID) {
			out = append(out, r.interests[i])
		}
	}
	return out, nil
}

// UpdateStatus answers a pending interest.
func (r *MemoryInterestRepository) UpdateStatus(id uint, status models.InterestStatus) (*models.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("interest", id)
	}
	interest := r.interests[i]
	if err := checkTransition(&interest, status); err != nil {
		return nil, err
	}
	interest.Status = status
	interest.UpdatedAt = laterThan(interest.CreatedAt)
	r.interests[i] = interest
	return &interest, nil
}

func checkTransition(interest *models.Interest, status models.InterestStatus) error {
	if !status.IsResponse() {
		return apperrors.Validation("Invalid status. Must be 'accepted' or 'declined'.",
			map[string]string{"status": "must be one of [accepted declined]"})
	}
	if interest.Status != models.InterestPending {
		return apperrors.Conflict(fmt.Sprintf("Interest %d has already been %s", interest.ID, interest.Status))
	}
	return nil
}

// laterThan returns the current time, nudged forward if the clock has not
// advanced past t.
func laterThan(t time.Time) time.Time {
	now := time.Now()
	if !now.After(t) {
		now = t.Add(time.Microsecond)
	}
	return now
}
