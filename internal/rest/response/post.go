package response

import "github.com/Guyuepp/go-social-feed/domain"

type Author struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

type Post struct {
	ID           string   `json:"id"`
	Author       Author   `json:"author"`
	Text         string   `json:"text"`
	ImageURL     string   `json:"image_url,omitempty"`
	Date         string   `json:"date"`
	LikeCounter  int64    `json:"like_counter"`
	LikedBy      []string `json:"liked_by"`
	IsReply      bool     `json:"is_reply"`
	ParentPostID string   `json:"parent_post_id,omitempty"`
	Replies      []string `json:"replies"`
}

func NewPostFromDomain(p *domain.Post) Post {
	return Post{
		ID: p.ID,
		Author: Author{
			ID:             p.Author.ID,
			Username:       p.Author.Username,
			DisplayName:    p.Author.DisplayName,
			ProfilePicture: p.Author.ProfilePicture,
		},
		Text:         p.Text,
		ImageURL:     p.ImageURL,
		Date:         p.Date.Format(DateTimeFormat),
		LikeCounter:  p.LikeCounter,
		LikedBy:      orEmpty(p.LikedBy),
		IsReply:      p.IsReply,
		ParentPostID: p.ParentPostID,
		Replies:      orEmpty(p.Replies),
	}
}

// Like is the result of a like toggle
type Like struct {
	Liked bool `json:"liked"`
	Post  Post `json:"post"`
}
