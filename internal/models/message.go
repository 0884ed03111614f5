package models

import "time"

// Message is a direct message between two members.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FromUserID uint      `json:"fromUserId" gorm:"index;not null"`
	ToUserID   uint      `json:"toUserId" gorm:"index;not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	Read       bool      `json:"read" gorm:"not null;default:false"`
}

// Involves reports whether userID sent or received m.
func (m *Message) Involves(userID uint) bool {
	return m.FromUserID == userID || m.ToUserID == userID
}

// Between reports whether m was exchanged between a and b, in either direction.
func (m *Message) Between(a, b uint) bool {
	return (m.FromUserID == a && m.ToUserID == b) || (m.FromUserID == b && m.ToUserID == a)
}

// Counterpart returns the other participant from userID's point of view.
func (m *Message) Counterpart(userID uint) uint {
	if m.FromUserID == userID {
		return m.ToUserID
	}
	return m.FromUserID
}

// Conversation summarises the latest exchange with one counterpart.
type Conversation struct {
	UserID        uint      `json:"userId"`
	UserName      string    `json:"userName"`
	ProfilePic    string    `json:"profilePic"`
	LastMessage   string    `json:"lastMessage"`
	LastMessageID uint      `json:"lastMessageId"`
	Timestamp     time.Time `json:"timestamp"`
	Unread        int       `json:"unread"`
}
