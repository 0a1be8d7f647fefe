package models

import (
	"time"

	"gorm.io/gorm"
)

// List is a named set of users curated by its creator. A private list's feed
// is only visible to the creator; membership is creator-mutable only.
type List struct {
	gorm.Model
	Name        string `gorm:"size:50;not null"`
	Description string `gorm:"size:255"`
	Private     bool   `gorm:"not null;default:false"`
	CreatorID   uint   `gorm:"not null;index"`

	Creator User    `gorm:"foreignKey:CreatorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Members []*User `gorm:"many2many:list_members;"`
}

// ListMember is the join row between a list and a member. The composite
// unique index keeps a user from being added to the same list twice.
type ListMember struct {
	ListID    uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}
