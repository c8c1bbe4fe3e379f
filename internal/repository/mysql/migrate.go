package mysql

import (
	"gorm.io/gorm"

	"github.com/Guyuepp/go-social-feed/internal/repository/mysql/model"
)

// AutoMigrate creates or updates every table the repositories use.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserFollower{},
		&model.UserFollowing{},
		&model.UserBlock{},
		&model.Post{},
		&model.PostLike{},
		&model.PostReply{},
		&model.Notification{},
	)
}
