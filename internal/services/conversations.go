package services

import (
	"fmt"
	"sort"

	"vivaham/internal/models"
)

// UserLookup resolves a user id to a profile.
type UserLookup func(id uint) (*models.User, bool)

// GroupConversations keeps the most recent message per counterpart of
// userID and returns the summaries newest first. messages must be in store
// order, which breaks timestamp ties.
func GroupConversations(messages []models.Message, userID uint, lookup UserLookup) []models.Conversation {
	sorted := make([]models.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	unread := make(map[uint]int)
	for i := range sorted {
		m := &sorted[i]
		if m.ToUserID == userID && !m.Read {
			unread[m.FromUserID]++
		}
	}

	out := make([]models.Conversation, 0)
	seen := make(map[uint]bool)
	for i := range sorted {
		m := &sorted[i]
		if !m.Involves(userID) {
			continue
		}
		other := m.Counterpart(userID)
		if seen[other] {
			continue
		}
		seen[other] = true

		conv := models.Conversation{
			UserID:        other,
			UserName:      fmt.Sprintf("User %d", other),
			LastMessage:   m.Content,
			LastMessageID: m.ID,
			Timestamp:     m.CreatedAt,
			Unread:        unread[other],
		}
		if u, ok := lookup(other); ok {
			conv.UserName = u.DisplayName()
			if u.ProfilePic != nil {
				conv.ProfilePic = *u.ProfilePic
			}
		}
		out = append(out, conv)
	}
	return out
}
