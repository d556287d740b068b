package models

import "time"

// Feedback is a free-form rating a user leaves about the platform.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID   uint   `gorm:"index;not null" json:"userId"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
	Feedback string `gorm:"type:text;not null" json:"feedback"`
	Rating   int    `gorm:"not null" json:"rating"`
}
