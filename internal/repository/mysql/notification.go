package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/repository/mysql/model"
)

type notificationRepository struct {
	DB *gorm.DB
}

var _ domain.NotificationRepository = (*notificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *notificationRepository {
	return &notificationRepository{DB: db}
}

func (m *notificationRepository) Store(ctx context.Context, n *domain.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	return translateError(m.DB.WithContext(ctx).Create(model.NewNotificationFromDomain(n)).Error)
}

func (m *notificationRepository) DeleteLike(ctx context.Context, fromUserID, ownerUserID, subjectPath string) (int64, error) {
	result := m.DB.WithContext(ctx).
		Where("kind = ? AND from_user_id = ? AND owner_user_id = ? AND subject_path = ?",
			string(domain.KindLike), fromUserID, ownerUserID, subjectPath).
		Delete(&model.Notification{})
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

func (m *notificationRepository) FetchByOwner(ctx context.Context, ownerUserID string, after domain.Cursor, num int64) ([]domain.Notification, error) {
	var rows []model.Notification
	err := m.DB.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Scopes(newestAfter(after, num)).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}

	res := make([]domain.Notification, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
	}
	return res, nil
}

func (m *notificationRepository) MarkRead(ctx context.Context, id, ownerUserID string) error {
	db := m.DB.WithContext(ctx)

	var row model.Notification
	if err := db.First(&row, "id = ? AND owner_user_id = ?", id, ownerUserID).Error; err != nil {
		return translateError(err)
	}
	if row.Read {
		return nil
	}
	err := db.Model(&model.Notification{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true).Error
	return translateError(err)
}
