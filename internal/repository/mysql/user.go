package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/repository/mysql/model"
)

type userRepository struct {
	DB *gorm.DB
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository will create an implementation of domain.UserRepository
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		DB: db,
	}
}

func (m *userRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return m.getBy(ctx, "id = ?", id)
}

func (m *userRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getBy(ctx, "username = ?", username)
}

func (m *userRepository) getBy(ctx context.Context, query string, arg string) (domain.User, error) {
	db := m.DB.WithContext(ctx)

	var user model.User
	if err := db.First(&user, query, arg).Error; err != nil {
		return domain.User{}, translateError(err)
	}

	followers, err := m.members(db, model.FollowersTable, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	following, err := m.members(db, model.FollowingTable, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	blocked, err := m.members(db, model.BlocksTable, user.ID)
	if err != nil {
		return domain.User{}, err
	}

	return user.ToDomain(followers, following, blocked), nil
}

func (m *userRepository) members(db *gorm.DB, table, userID string) ([]string, error) {
	var ids []string
	err := db.Table(table).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("member_id", &ids).Error
	return ids, translateError(err)
}

// FetchBlockerIDs lists the users whose block list contains userID.
func (m *userRepository) FetchBlockerIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := m.DB.WithContext(ctx).
		Table(model.BlocksTable).
		Where("member_id = ?", userID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, translateError(err)
}

func (m *userRepository) Store(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	userModel := model.NewUserFromDomain(u)
	return translateError(m.DB.WithContext(ctx).Create(userModel).Error)
}

func (m *userRepository) AddFollower(ctx context.Context, userID, followerID string) error {
	return m.addMember(ctx, model.FollowersTable, userID, followerID)
}

func (m *userRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return m.removeMember(ctx, model.FollowersTable, userID, followerID)
}

func (m *userRepository) AddFollowing(ctx context.Context, userID, followingID string) error {
	return m.addMember(ctx, model.FollowingTable, userID, followingID)
}

func (m *userRepository) RemoveFollowing(ctx context.Context, userID, followingID string) error {
	return m.removeMember(ctx, model.FollowingTable, userID, followingID)
}

func (m *userRepository) AddBlocked(ctx context.Context, userID, blockedID string) error {
	return m.addMember(ctx, model.BlocksTable, userID, blockedID)
}

func (m *userRepository) RemoveBlocked(ctx context.Context, userID, blockedID string) error {
	return m.removeMember(ctx, model.BlocksTable, userID, blockedID)
}

func (m *userRepository) addMember(ctx context.Context, table, userID, memberID string) error {
	db := m.DB.WithContext(ctx)
	if err := m.mustExist(db, userID); err != nil {
		return err
	}
	row := model.Membership{UserID: userID, MemberID: memberID, CreatedAt: time.Now()}
	err := db.Table(table).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	return translateError(err)
}

func (m *userRepository) removeMember(ctx context.Context, table, userID, memberID string) error {
	db := m.DB.WithContext(ctx)
	if err := m.mustExist(db, userID); err != nil {
		return err
	}
	err := db.Table(table).
		Where("user_id = ? AND member_id = ?", userID, memberID).
		Delete(&model.Membership{}).Error
	return translateError(err)
}

func (m *userRepository) mustExist(db *gorm.DB, userID string) error {
	var count int64
	if err := db.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return nil
}
