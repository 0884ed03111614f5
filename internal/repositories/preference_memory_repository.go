package repositories

import (
	"sync"

	"vivaham/internal/apperrors"
	"vivaham/internal/models"
)

// MemoryPreferenceRepository is an in-memory implementation of PreferenceRepository.
type MemoryPreferenceRepository struct {
	mu     sync.RWMutex
	prefs  []models.UserPreference
	index  map[uint]int
	byUser map[uint]uint
	nextID uint
}

// NewMemoryPreferenceRepository creates a new instance of MemoryPreferenceRepository.
func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{
		index:  make(map[uint]int),
		byUser: make(map[uint]uint),
		nextID: 1,
	}
}

// Create stores pref unless its user already has preferences. The check and
// the insert happen under the same lock.
func (r *MemoryPreferenceRepository) Create(pref *models.UserPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUser[pref.UserID]; exists {
		return apperrors.Conflict("Preferences already exist. Use PUT to update.")
	}
	pref.ID = r.nextID
	r.nextID++

	r.index[pref.ID] = len(r.prefs)
	r.byUser[pref.UserID] = pref.ID
	r.prefs = append(r.prefs, *pref)
	return nil
}

// GetByID returns preferences by their ID.
func (r *MemoryPreferenceRepository) GetByID(id uint) (*models.UserPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("preference", id)
	}
	pref := r.prefs[i]
	return &pref, nil
}

// GetByUserID returns the preferences owned by userID.
func (r *MemoryPreferenceRepository) GetByUserID(userID uint) (*models.UserPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[userID]
	if !ok {
		return nil, apperrors.NotFoundf("preferences for user %d not found", userID)
	}
	pref := r.prefs[r.index[id]]
	return &pref, nil
}

// Update merges patch over the stored preferences.
func (r *MemoryPreferenceRepository) Update(id uint, patch models.PreferencePatch) (*models.UserPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound("preference", id)
	}
	pref := r.prefs[i]
	patch.Apply(&pref)
	if err := pref.CheckAgeRange(); err != nil {
		return nil, err
	}
	r.prefs[i] = pref
	return &pref, nil
}
