package models

import (
	"time"
)

// User model. Password, refresh token and the hashed temporary tokens are
// never serialized; handlers additionally omit them when loading the user
// for a request. The refresh token column holds at most one value, the
// most recently issued refresh token.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"-"`

	Email           string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username        string `gorm:"size:255;not null" json:"username"`
	Password        string `gorm:"size:255;not null" json:"-"`
	Role            string `gorm:"size:16;not null;default:USER" json:"role"`
	LoginType       string `gorm:"size:32;not null;default:EMAIL_PASSWORD" json:"loginType"`
	IsEmailVerified bool   `gorm:"default:false" json:"isEmailVerified"`
	AvatarURL       string `gorm:"size:512" json:"avatarUrl,omitempty"`

	RefreshToken string `gorm:"size:512" json:"-"`

	EmailVerificationToken  string     `gorm:"size:128" json:"-"`
	EmailVerificationExpiry *time.Time `json:"-"`
	ForgotPasswordToken     string     `gorm:"size:128" json:"-"`
	ForgotPasswordExpiry    *time.Time `json:"-"`

	ProfileID *uint    `gorm:"index" json:"profileId,omitempty"`
	Profile   *Profile `gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

// SensitiveUserColumns are omitted when a user is loaded on behalf of a
// request (auth gate, current-user, login response).
var SensitiveUserColumns = []string{
	"password",
	"refresh_token",
	"email_verification_token",
	"email_verification_expiry",
	"forgot_password_token",
	"forgot_password_expiry",
}
