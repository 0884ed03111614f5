package services_test

import (
	"testing"

	"vivaham/internal/apperrors"
	"vivaham/internal/events"
	"vivaham/internal/models"
	"vivaham/internal/repositories"
	"vivaham/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T, usernames ...string) *repositories.Store {
	t.Helper()
	store := repositories.NewMemoryStore()
	for _, name := range usernames {
		require.NoError(t, store.Users.Create(&models.User{Username: name, Email: name + "@example.com", FirstName: name}))
	}
	return store
}

func TestPreferenceService(t *testing.T) {
	store := seededStore(t, "alice", "bob")
	svc := services.NewPreferenceService(store.Preferences, store.Users)

	// Only for oneself
	err := svc.CreatePreferences(2, &models.UserPreference{UserID: 1, AgeMin: 25, AgeMax: 30})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	// Inverted range
	err = svc.CreatePreferences(1, &models.UserPreference{UserID: 1, AgeMin: 40, AgeMax: 30})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Reading before creation
	_, err = svc.GetPreferences(1, 1)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	pref := &models.UserPreference{UserID: 1, AgeMin: 25, AgeMax: 30}
	require.NoError(t, svc.CreatePreferences(1, pref))

	err = svc.CreatePreferences(1, &models.UserPreference{UserID: 1, AgeMin: 25, AgeMax: 30})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	got, err := svc.GetPreferences(1, 1)
	require.NoError(t, err)
	assert.Equal(t, pref.ID, got.ID)

	_, err = svc.GetPreferences(2, 1)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	// Update: bob has none, so 404; alice updating another id is forbidden.
	ageMax := 32
	_, err = svc.UpdatePreferences(2, pref.ID, models.PreferencePatch{AgeMax: &ageMax})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = svc.UpdatePreferences(1, pref.ID+1, models.PreferencePatch{AgeMax: &ageMax})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	updated, err := svc.UpdatePreferences(1, pref.ID, models.PreferencePatch{AgeMax: &ageMax})
	require.NoError(t, err)
	assert.Equal(t, 32, updated.AgeMax)
}

func TestStoryService(t *testing.T) {
	store := seededStore(t, "alice", "bob", "carol")
	publisher := new(MockPublisher)
	svc := services.NewStoryService(store.Stories, store.Users, publisher)

	err := svc.CreateStory(3, &models.SuccessStory{User1ID: 1, User2ID: 2, MarriageDate: "2024-02-14", Story: "We met here"})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	err = svc.CreateStory(1, &models.SuccessStory{User1ID: 1, User2ID: 42, MarriageDate: "2024-02-14", Story: "We met here"})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	publisher.On("Publish", eventOfType(events.StoryCreated)).Once()
	story := &models.SuccessStory{User1ID: 1, User2ID: 2, MarriageDate: "2024-02-14", Story: "We met here"}
	require.NoError(t, svc.CreateStory(2, story))
	publisher.AssertExpectations(t)

	got, err := svc.GetStory(story.ID)
	require.NoError(t, err)
	assert.Equal(t, "We met here", got.Story)

	stories, err := svc.ListStories(0)
	require.NoError(t, err)
	assert.Len(t, stories, 1)
}
