package models

import "gorm.io/gorm"

// Collection is a private set of tweets saved by its owner. Adding a tweet is
// a set-union operation: adding the same tweet twice is a no-op, not an error.
type Collection struct {
	gorm.Model
	Name        string `gorm:"size:100;not null"`
	Description string
	OwnerID     uint `gorm:"not null;index"`

	Owner  User     `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweets []*Tweet `gorm:"many2many:collection_tweets;"`
}
