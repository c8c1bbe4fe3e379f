package response

import "github.com/Guyuepp/go-social-feed/domain"

const DateTimeFormat = "2006-01-02T15:04:05Z07:00"

type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	DisplayName    string   `json:"display_name"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Location       string   `json:"location,omitempty"`
	JoinDate       string   `json:"join_date"`
	Followers      []string `json:"followers"`
	Following      []string `json:"following"`
	FollowerCount  int      `json:"follower_count"`
	FollowingCount int      `json:"following_count"`
}

func NewUserFromDomain(u *domain.User) User {
	return User{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Location:       u.Location,
		JoinDate:       u.JoinDate.Format(DateTimeFormat),
		Followers:      orEmpty(u.Followers),
		Following:      orEmpty(u.Following),
		FollowerCount:  len(u.Followers),
		FollowingCount: len(u.Following),
	}
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
