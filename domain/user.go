package domain

import (
	"context"
	"time"
)

// User represents a user entity in the system.
// Followers, Following and BlockedIDs are the user's halves of the social graph;
// a follow edge A->B is stored as B in A.Following and A in B.Followers.
type User struct {
	ID             string    `validate:"required"`
	Username       string    `validate:"required,max=32"`
	DisplayName    string    `validate:"required,max=64"`
	ProfilePicture string    `validate:"omitempty,max=512"`
	Bio            string    `validate:"omitempty,max=280"`
	Location       string    `validate:"omitempty,max=64"`
	JoinDate       time.Time `validate:"required"`
	Followers      []string
	Following      []string
	BlockedIDs     []string
}

// Validate checks the record shape before it reaches a store.
func (u *User) Validate() error {
	return validateStruct(u)
}

// HasFollower reports whether id is in the user's follower set.
func (u User) HasFollower(id string) bool {
	return contains(u.Followers, id)
}

// IsFollowing reports whether the user follows id.
func (u User) IsFollowing(id string) bool {
	return contains(u.Following, id)
}

// HasBlocked reports whether the user blocked id.
func (u User) HasBlocked(id string) bool {
	return contains(u.BlockedIDs, id)
}

// AsAuthor returns the snapshot embedded into posts written by the user.
func (u User) AsAuthor() Author {
	return Author{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserRepository defines the contract for the identity store.
// Membership mutations are idempotent: adding a present member or removing an
// absent one succeeds without change. They return ErrNotFound when userID does
// not resolve.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByUsername retrieves a user by their username.
	GetByUsername(ctx context.Context, username string) (User, error)

	// Store creates a new user. Returns ErrConflict if the username is taken.
	Store(ctx context.Context, u *User) error

	AddFollower(ctx context.Context, userID, followerID string) error
	RemoveFollower(ctx context.Context, userID, followerID string) error
	AddFollowing(ctx context.Context, userID, followingID string) error
	RemoveFollowing(ctx context.Context, userID, followingID string) error
	AddBlocked(ctx context.Context, userID, blockedID string) error
	RemoveBlocked(ctx context.Context, userID, blockedID string) error

	// FetchBlockerIDs returns the ids of users whose block set holds userID.
	FetchBlockerIDs(ctx context.Context, userID string) ([]string, error)
}

// UserUsecase defines the business logic contract for user operations.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the username already exists.
	Register(ctx context.Context, username, displayName string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

// RelationshipUsecase keeps follow and block edges mirrored across two users.
type RelationshipUsecase interface {
	// Follow toggles the follow edge follower -> target.
	Follow(ctx context.Context, followerID, targetID string) (FollowResult, error)
	// Block toggles blockedID in the blocker's block set, severing follow edges on block.
	Block(ctx context.Context, blockerID, blockedID string) (BlockResult, error)
}

// FollowResult is the state after a follow toggle.
type FollowResult struct {
	Followed bool
}

// BlockResult is the state after a block toggle.
type BlockResult struct {
	Blocked bool
	Message string
}
