package models

import "time"

type InterestStatus string

const (
	InterestPending  InterestStatus = "pending"
	InterestAccepted InterestStatus = "accepted"
	InterestDeclined InterestStatus = "declined"
)

// IsResponse reports whether s is a status a recipient may answer with.
func (s InterestStatus) IsResponse() bool {
	return s == InterestAccepted || s == InterestDeclined
}

// Interest is a directed request from one member to another.
type Interest struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	FromUserID uint           `json:"fromUserId" gorm:"index;not null"`
	ToUserID   uint           `json:"toUserId" gorm:"index;not null"`
	Status     InterestStatus `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// Involves reports whether userID is the sender or the recipient.
func (i *Interest) Involves(userID uint) bool {
	return i.FromUserID == userID || i.ToUserID == userID
}
