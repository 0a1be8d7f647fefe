package models

import "gorm.io/gorm"

// Notification verbs. Each social action directed at another user's content
// produces exactly one notification with one of these verbs.
const (
	VerbLiked     = "liked"
	VerbRetweeted = "retweeted"
	VerbQuoted    = "quoted"
	VerbCommented = "commented"
)

// Notification is an immutable record of a social action aimed at the
// recipient. Only the Read flag ever changes after creation. Rows where the
// actor is the recipient are never created.
type Notification struct {
	gorm.Model
	ActorID     uint   `gorm:"not null;index"`
	RecipientID uint   `gorm:"not null;index"`
	Verb        string `gorm:"size:80;not null"`
	TweetID     *uint  `gorm:"index"`
	Read        bool   `gorm:"not null;default:false"`

	Actor     User   `gorm:"foreignKey:ActorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Recipient User   `gorm:"foreignKey:RecipientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweet     *Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
