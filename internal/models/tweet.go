package models

import "gorm.io/gorm"

// Tweet is the base content item. A tweet with a parent is either a pure
// retweet (empty content, IsRetweet) or a quote (own content, !IsRetweet);
// the handlers never persist any other combination. The partial unique index
// allows at most one pure retweet per (author, original) while leaving quotes
// unconstrained. Deleting the parent clears ParentID instead of cascading, so
// reshares outlive the original.
type Tweet struct {
	gorm.Model
	AuthorID  uint   `gorm:"not null;index;uniqueIndex:idx_retweet_pair,where:is_retweet"`
	Content   string `gorm:"size:280"`
	ImageRef  string `gorm:"size:512"`
	ParentID  *uint  `gorm:"index;uniqueIndex:idx_retweet_pair,where:is_retweet"`
	IsRetweet bool   `gorm:"not null;default:false"`

	Author User   `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Parent *Tweet `gorm:"foreignKey:ParentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

// Like marks that a user liked a tweet. The composite unique index gives the
// (user, tweet) pair toggle semantics: a concurrent duplicate insert fails on
// the constraint and is treated as "already liked".
type Like struct {
	gorm.Model
	UserID  uint `gorm:"not null;index;uniqueIndex:idx_like_pair"`
	TweetID uint `gorm:"not null;index;uniqueIndex:idx_like_pair"`

	User  User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweet Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Comment is a reply to a tweet. Unlike likes there is no uniqueness rule:
// every submission creates a new row.
type Comment struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	TweetID uint   `gorm:"not null;index"`
	Content string `gorm:"size:280;not null"`

	User  User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tweet Tweet `gorm:"foreignKey:TweetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
