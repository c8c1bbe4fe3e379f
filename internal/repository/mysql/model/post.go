package model

import (
	"time"

	"github.com/Guyuepp/go-social-feed/domain"
)

// Post stores the author snapshot inline; likes and replies live in their own tables.
type Post struct {
	ID                   string    `gorm:"primaryKey;type:varchar(36)"`
	AuthorID             string    `gorm:"type:varchar(36);index;not null"`
	AuthorUsername       string    `gorm:"type:varchar(32)"`
	AuthorDisplayName    string    `gorm:"type:varchar(64)"`
	AuthorProfilePicture string    `gorm:"type:varchar(512)"`
	Text                 string    `gorm:"type:varchar(280);not null"`
	ImageURL             string    `gorm:"type:varchar(512)"`
	Date                 time.Time `gorm:"type:datetime(6);not null"`
	LikeCounter          int64     `gorm:"default:0;not null"`
	IsReply              bool      `gorm:"not null"`
	ParentPostID         string    `gorm:"type:varchar(36);index"`
}

func (Post) TableName() string {
	return "posts"
}

func (m *Post) ToDomain(likedBy, replies []string) domain.Post {
	return domain.Post{
		ID: m.ID,
		Author: domain.Author{
			ID:             m.AuthorID,
			Username:       m.AuthorUsername,
			DisplayName:    m.AuthorDisplayName,
			ProfilePicture: m.AuthorProfilePicture,
		},
		Text:         m.Text,
		ImageURL:     m.ImageURL,
		Date:         m.Date,
		LikeCounter:  m.LikeCounter,
		LikedBy:      likedBy,
		IsReply:      m.IsReply,
		ParentPostID: m.ParentPostID,
		Replies:      replies,
	}
}

func NewPostFromDomain(p *domain.Post) *Post {
	return &Post{
		ID:                   p.ID,
		AuthorID:             p.Author.ID,
		AuthorUsername:       p.Author.Username,
		AuthorDisplayName:    p.Author.DisplayName,
		AuthorProfilePicture: p.Author.ProfilePicture,
		Text:                 p.Text,
		ImageURL:             p.ImageURL,
		Date:                 p.Date,
		LikeCounter:          p.LikeCounter,
		IsReply:              p.IsReply,
		ParentPostID:         p.ParentPostID,
	}
}

type PostLike struct {
	PostID    string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `gorm:"type:datetime(6)"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

// PostReply links a reply to its parent. Seq keeps insertion order.
type PostReply struct {
	Seq      int64  `gorm:"primaryKey;autoIncrement"`
	ParentID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_parent_reply"`
	ReplyID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_parent_reply"`
}

func (PostReply) TableName() string {
	return "post_replies"
}
