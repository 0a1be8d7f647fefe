package models

import "gorm.io/gorm"

// Draft is an unpublished tweet body kept per author. Publishing turns it
// into a real tweet exactly once; a published draft stays around as a record
// and publishing it again is a no-op.
type Draft struct {
	gorm.Model
	AuthorID  uint   `gorm:"not null;index"`
	Content   string `gorm:"size:280;not null"`
	Published bool   `gorm:"not null;default:false"`
	TweetID   *uint  `gorm:"index"`

	Author User   `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweet  *Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
