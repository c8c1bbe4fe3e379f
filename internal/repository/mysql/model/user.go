package model

import (
	"time"

	"github.com/Guyuepp/go-social-feed/domain"
)

type User struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)"`
	Username       string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	DisplayName    string    `gorm:"type:varchar(64);not null"`
	ProfilePicture string    `gorm:"type:varchar(512)"`
	Bio            string    `gorm:"type:varchar(280)"`
	Location       string    `gorm:"type:varchar(64)"`
	JoinDate       time.Time `gorm:"type:datetime(6);not null"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain maps the row and its membership sets back into a domain user.
func (m *User) ToDomain(followers, following, blocked []string) domain.User {
	return domain.User{
		ID:             m.ID,
		Username:       m.Username,
		DisplayName:    m.DisplayName,
		ProfilePicture: m.ProfilePicture,
		Bio:            m.Bio,
		Location:       m.Location,
		JoinDate:       m.JoinDate,
		Followers:      followers,
		Following:      following,
		BlockedIDs:     blocked,
	}
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Location:       u.Location,
		JoinDate:       u.JoinDate,
	}
}
