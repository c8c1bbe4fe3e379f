package model

import (
	"time"

	"github.com/Guyuepp/go-social-feed/domain"
)

type Notification struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	FromUserID  string    `gorm:"type:varchar(36);not null;index:idx_like_triple"`
	OwnerUserID string    `gorm:"type:varchar(36);not null;index:idx_owner_date;index:idx_like_triple"`
	Text        string    `gorm:"type:varchar(128);not null"`
	Kind        string    `gorm:"type:varchar(16);not null"`
	SubjectPath string    `gorm:"type:varchar(255);not null;index:idx_like_triple"`
	Date        time.Time `gorm:"type:datetime(6);not null;index:idx_owner_date"`
	Read        bool      `gorm:"column:is_read;not null"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (m *Notification) ToDomain() domain.Notification {
	return domain.Notification{
		ID:          m.ID,
		FromUserID:  m.FromUserID,
		OwnerUserID: m.OwnerUserID,
		Text:        m.Text,
		Kind:        domain.NotificationKind(m.Kind),
		SubjectPath: m.SubjectPath,
		Date:        m.Date,
		Read:        m.Read,
	}
}

func NewNotificationFromDomain(n *domain.Notification) *Notification {
	return &Notification{
		ID:          n.ID,
		FromUserID:  n.FromUserID,
		OwnerUserID: n.OwnerUserID,
		Text:        n.Text,
		Kind:        string(n.Kind),
		SubjectPath: n.SubjectPath,
		Date:        n.Date,
		Read:        n.Read,
	}
}
