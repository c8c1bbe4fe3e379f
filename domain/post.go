package domain

import (
	"context"
	"fmt"
	"time"
)

// Author is the author snapshot denormalized into each post
type Author struct {
	ID             string `validate:"required"`
	Username       string
	DisplayName    string
	ProfilePicture string
}

// Post is a root post or a reply. Replies holds child ids in insertion order.
type Post struct {
	ID           string    `validate:"required"`
	Author       Author    `validate:"required"`
	Text         string    `validate:"required,max=280"`
	ImageURL     string    `validate:"omitempty,max=512"`
	Date         time.Time `validate:"required"`
	LikeCounter  int64     `validate:"gte=0"`
	LikedBy      []string
	IsReply      bool
	ParentPostID string
	Replies      []string
}

// Validate checks the record shape and the reply and like rules before a store write.
func (p *Post) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if p.IsReply != (p.ParentPostID != "") {
		return fmt.Errorf("%w: reply flag does not match parent link", ErrBadParamInput)
	}
	if p.ParentPostID == p.ID {
		return fmt.Errorf("%w: post cannot reply to itself", ErrBadParamInput)
	}
	if p.LikeCounter != int64(len(p.LikedBy)) {
		return fmt.Errorf("%w: like counter %d does not match %d likes", ErrBadParamInput, p.LikeCounter, len(p.LikedBy))
	}
	if !uniqueIDs(p.LikedBy) {
		return fmt.Errorf("%w: duplicate like", ErrBadParamInput)
	}
	return nil
}

// IsLikedBy reports whether userID is in the like set.
func (p Post) IsLikedBy(userID string) bool {
	return contains(p.LikedBy, userID)
}

// HasReply reports whether replyID is linked as a child.
func (p Post) HasReply(replyID string) bool {
	return contains(p.Replies, replyID)
}

// SubjectPath is the notification subject that points at the post.
func (p Post) SubjectPath() string {
	return PostSubject(p.ID)
}

// PostRepository defines the contract for the content store
type PostRepository interface {
	// GetByID retrieves a single post by its ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id string) (Post, error)

	// Store creates a new post in the repository.
	Store(ctx context.Context, p *Post) error

	// Delete removes a single post record. Children are not touched.
	// Returns ErrNotFound if not exists
	Delete(ctx context.Context, id string) error

	// AddLike adds userID to the like set and increments the counter in one
	// atomic step, only if userID is absent. Reports whether it applied.
	AddLike(ctx context.Context, postID, userID string) (bool, error)

	// RemoveLike removes userID and decrements the counter in one atomic step,
	// only if userID is present. Reports whether it applied.
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)

	// AppendReply links replyID at the end of the parent's replies.
	// Returns ErrNotFound if the parent doesn't exist.
	AppendReply(ctx context.Context, parentID, replyID string) error

	// RemoveReply unlinks replyID from the parent's replies.
	RemoveReply(ctx context.Context, parentID, replyID string) error

	// FetchIDs pages through post ids in ascending order after the given id.
	FetchIDs(ctx context.Context, afterID string, limit int64) ([]string, error)

	// Fetch lists root posts not written by any of excludeAuthorIDs.
	// Listings are ordered by (Date, ID) descending and start after the cursor.
	Fetch(ctx context.Context, excludeAuthorIDs []string, after Cursor, num int64) ([]Post, error)

	// FetchByAuthors lists posts and replies written by any of authorIDs.
	FetchByAuthors(ctx context.Context, authorIDs []string, after Cursor, num int64) ([]Post, error)

	// FetchLikedBy lists posts and replies whose like set contains userID.
	FetchLikedBy(ctx context.Context, userID string, after Cursor, num int64) ([]Post, error)
}

// Uncached returns the store behind a caching post repository, or r itself.
// Reads that decide a write use it so they never act on a cached copy.
func Uncached(r PostRepository) PostRepository {
	if c, ok := r.(interface{ Uncached() PostRepository }); ok {
		return c.Uncached()
	}
	return r
}

// PostCache caches whole posts. Misses return ErrCacheMiss.
type PostCache interface {
	GetPost(ctx context.Context, id string) (post Post, expired bool, err error)
	SetPost(ctx context.Context, p *Post, ttl time.Duration) error
	DeletePost(ctx context.Context, id string) error
}

// PostUsecase covers post creation, reply attachment and cascade deletion.
type PostUsecase interface {
	Create(ctx context.Context, authorID, text, imageURL string) (Post, error)
	GetByID(ctx context.Context, id string) (Post, error)
	// AddReply creates a reply under parentPostID and links it to the parent.
	AddReply(ctx context.Context, parentPostID, authorID, text, imageURL string) (Post, error)
	// DeleteCascade removes the post and every descendant reply.
	// Returns ErrUnauthorized unless requesterID is the author.
	DeleteCascade(ctx context.Context, postID, requesterID string) error
	InitBloomFilter(ctx context.Context) error
}

// EngagementUsecase toggles likes.
type EngagementUsecase interface {
	ToggleLike(ctx context.Context, postID, userID string) (LikeResult, error)
}

// FeedUsecase lists posts for timelines and profiles. Each call returns the
// page and the cursor of the next one, empty when nothing is left.
type FeedUsecase interface {
	// Timeline lists root posts, hiding authors the viewer blocked and
	// authors who blocked the viewer.
	Timeline(ctx context.Context, viewerID, cursor string, num int64) ([]Post, string, error)
	// Following lists posts by the users the viewer follows.
	Following(ctx context.Context, viewerID, cursor string, num int64) ([]Post, string, error)
	FetchByAuthor(ctx context.Context, authorID, cursor string, num int64) ([]Post, string, error)
	FetchLikedBy(ctx context.Context, userID, cursor string, num int64) ([]Post, string, error)
}

// LikeResult is the state after a like toggle.
type LikeResult struct {
	Liked bool
	Post  Post
}
