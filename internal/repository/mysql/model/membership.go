package model

import "time"

// Membership tables hold one set per user. The composite primary key makes
// inserting a present member a no-op.
const (
	FollowersTable = "user_followers"
	FollowingTable = "user_followings"
	BlocksTable    = "user_blocks"
)

type Membership struct {
	UserID    string    `gorm:"primaryKey;type:varchar(36)"`
	MemberID  string    `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `gorm:"type:datetime(6)"`
}

type UserFollower struct{ Membership }

func (UserFollower) TableName() string { return FollowersTable }

type UserFollowing struct{ Membership }

func (UserFollowing) TableName() string { return FollowingTable }

type UserBlock struct{ Membership }

func (UserBlock) TableName() string { return BlocksTable }
