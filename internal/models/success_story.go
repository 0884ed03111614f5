package models

import "time"

// SuccessStory is a curated account of a couple who met on the platform.
type SuccessStory struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	User1ID      uint      `json:"user1Id" gorm:"column:user1_id;not null"`
	User2ID      uint      `json:"user2Id" gorm:"column:user2_id;not null"`
	MarriageDate string    `json:"marriageDate" gorm:"not null"`
	Story        string    `json:"story" gorm:"type:text;not null"`
	Photo        *string   `json:"photo"`
	CreatedAt    time.Time `json:"createdAt"`
}
