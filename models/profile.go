package models

import "time"

// Profile represents a member's team-builder profile (one-to-one with User).
type Profile struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"-"`

	UserID uint `gorm:"uniqueIndex;not null" json:"userId"` // one-to-one relation

	FullName    string `gorm:"size:255" json:"fullName"`
	DisplayName string `gorm:"size:255" json:"displayName"`
	Pronouns    string `gorm:"size:64" json:"pronouns,omitempty"`
	Title       string `gorm:"size:255" json:"title,omitempty"`
	Bio         string `gorm:"type:text" json:"bio,omitempty"`

	Skills StringList `gorm:"type:text" json:"skills"`
	Roles  StringList `gorm:"type:text" json:"roles"`

	ExperienceYears   int    `gorm:"default:0" json:"experienceYears"`
	ExperienceSummary string `gorm:"type:text" json:"experienceSummary,omitempty"`

	Projects ProjectList `gorm:"type:text" json:"projects"`

	GithubURL   string `gorm:"size:512" json:"githubUrl,omitempty"`
	LinkedinURL string `gorm:"size:512" json:"linkedinUrl,omitempty"`
	WebsiteURL  string `gorm:"size:512" json:"websiteUrl,omitempty"`
	TwitterURL  string `gorm:"size:512" json:"twitterUrl,omitempty"`

	PreferredRoles    StringList `gorm:"type:text" json:"preferredRoles"`
	PreferredTeamSize int        `gorm:"default:4" json:"preferredTeamSize"`
	WillingToLead     bool       `gorm:"default:false" json:"willingToLead"`

	Availability string `gorm:"size:16;not null;default:AVAILABLE" json:"availability"`
	AvatarURL    string `gorm:"size:512" json:"avatarUrl,omitempty"`

	Cohorts []Cohort `gorm:"many2many:profile_cohorts;" json:"cohorts,omitempty"`
}
