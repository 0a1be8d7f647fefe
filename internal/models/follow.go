package models

import "time"

// Follow is a directed edge in the social graph: FollowerID follows FollowingID.
// The composite unique index makes the edge idempotent; a user never follows
// the same account twice. Self-edges are rejected before insert.
type Follow struct {
	ID          uint `gorm:"primarykey"`
	FollowerID  uint `gorm:"not null;index;uniqueIndex:idx_follow_pair"`
	FollowingID uint `gorm:"not null;index;uniqueIndex:idx_follow_pair"`
	CreatedAt   time.Time

	Follower  User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Following User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
