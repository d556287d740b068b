package models

import "time"

// Cohort groups users into a program intake.
type Cohort struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string     `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`

	Members []User `gorm:"many2many:cohort_members;" json:"members,omitempty"`
}
