package models

import "time"

// TeamJoinRequest tracks a user asking to join a team. A user has at most
// one pending request per team; accepting it adds the membership.
type TeamJoinRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID uint   `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	TeamID uint   `gorm:"index;not null" json:"teamId"`
	Team   Team   `gorm:"foreignKey:TeamID" json:"-"`
	Status string `gorm:"size:16;not null;default:PENDING" json:"status"`
}
