package models

import "time"

// Team is a user-formed group inside a cohort program. Admins manage the
// team, leaders are a subset of members with a coordination role.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Members []User `gorm:"many2many:team_members;" json:"members,omitempty"`
	Admins  []User `gorm:"many2many:team_admins;" json:"admins,omitempty"`
	Leaders []User `gorm:"many2many:team_leaders;" json:"leaders,omitempty"`
}
