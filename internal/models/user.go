package models

import "gorm.io/gorm"

// User represents a registered account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`
}

// Profile holds the public-facing part of an account. It is created lazily the
// first time a profile is requested, so a row is not guaranteed to exist for
// every user.
type Profile struct {
	gorm.Model
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Bio       string `gorm:"size:180"`
	AvatarRef string `gorm:"size:512"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
