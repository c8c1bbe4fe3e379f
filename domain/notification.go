package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NotificationKind is the social event that produced a notification
type NotificationKind string

const (
	KindLike   NotificationKind = "like"
	KindFollow NotificationKind = "follow"
	KindReply  NotificationKind = "reply"
)

var likeNamespace = uuid.MustParse("6f1c9a52-3d0e-4f7b-9c55-1a2b3c4d5e6f")

const (
	likeText   = "liked your post"
	followText = "started following you"
	replyText  = "replied to your post"
)

// Notification is an event record owned by OwnerUserID.
type Notification struct {
	ID          string           `validate:"required"`
	FromUserID  string           `validate:"required"`
	OwnerUserID string           `validate:"required"`
	Text        string           `validate:"required"`
	Kind        NotificationKind `validate:"required,oneof=like follow reply"`
	SubjectPath string           `validate:"required"`
	Date        time.Time        `validate:"required"`
	Read        bool
}

// Validate checks the record shape before a store write.
func (n *Notification) Validate() error {
	return validateStruct(n)
}

// PostSubject is the subject path of a post.
func PostSubject(postID string) string {
	return "/post/" + postID
}

// ProfileSubject is the subject path of a user profile.
func ProfileSubject(username string) string {
	return "/profile/" + username
}

// LikeNotificationID is the fixed id of the active like notification for the
// (from, owner, subject) triple. Two stores of the same triple collide, so at
// most one can be active.
func LikeNotificationID(fromUserID, ownerUserID, subjectPath string) string {
	return uuid.NewSHA1(likeNamespace, []byte(fromUserID+"|"+ownerUserID+"|"+subjectPath)).String()
}

// NewLikeNotification builds the notification sent to the post author.
func NewLikeNotification(fromUserID string, p Post, now time.Time) Notification {
	return Notification{
		ID:          LikeNotificationID(fromUserID, p.Author.ID, p.SubjectPath()),
		FromUserID:  fromUserID,
		OwnerUserID: p.Author.ID,
		Text:        likeText,
		Kind:        KindLike,
		SubjectPath: p.SubjectPath(),
		Date:        now,
	}
}

// NewFollowNotification builds the notification sent to the followed user.
func NewFollowNotification(follower User, targetID string, now time.Time) Notification {
	return Notification{
		ID:          NewID(),
		FromUserID:  follower.ID,
		OwnerUserID: targetID,
		Text:        followText,
		Kind:        KindFollow,
		SubjectPath: ProfileSubject(follower.Username),
		Date:        now,
	}
}

// NewReplyNotification builds the notification sent to the parent post author.
func NewReplyNotification(reply Post, parent Post, now time.Time) Notification {
	return Notification{
		ID:          NewID(),
		FromUserID:  reply.Author.ID,
		OwnerUserID: parent.Author.ID,
		Text:        replyText,
		Kind:        KindReply,
		SubjectPath: parent.SubjectPath(),
		Date:        now,
	}
}

// NotificationRepository defines the contract for the notification store.
type NotificationRepository interface {
	Store(ctx context.Context, n *Notification) error

	// DeleteLike removes every like notification for the (from, owner, subject)
	// triple and returns how many were removed.
	DeleteLike(ctx context.Context, fromUserID, ownerUserID, subjectPath string) (int64, error)

	// FetchByOwner returns the owner's notifications ordered by (Date, ID)
	// descending, starting after the cursor.
	FetchByOwner(ctx context.Context, ownerUserID string, after Cursor, num int64) ([]Notification, error)

	// MarkRead sets the read flag. Returns ErrNotFound when the id does not
	// belong to the owner.
	MarkRead(ctx context.Context, id, ownerUserID string) error
}

// NotificationUsecase lists and acknowledges notifications.
type NotificationUsecase interface {
	FetchByOwner(ctx context.Context, ownerUserID, cursor string, num int64) ([]Notification, string, error)
	MarkRead(ctx context.Context, id, ownerUserID string) error
}
