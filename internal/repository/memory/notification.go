package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Guyuepp/go-social-feed/domain"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]domain.Notification
}

var _ domain.NotificationRepository = (*notificationRepository)(nil)

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{notifications: make(map[string]domain.Notification)}
}

func (r *notificationRepository) Store(_ context.Context, n *domain.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notifications[n.ID]; ok {
		return domain.ErrConflict
	}
	r.notifications[n.ID] = *n
	return nil
}

func (r *notificationRepository) DeleteLike(_ context.Context, fromUserID, ownerUserID, subjectPath string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, n := range r.notifications {
		if n.Kind == domain.KindLike && n.FromUserID == fromUserID && n.OwnerUserID == ownerUserID && n.SubjectPath == subjectPath {
			delete(r.notifications, id)
			removed++
		}
	}
	return removed, nil
}

func (r *notificationRepository) FetchByOwner(_ context.Context, ownerUserID string, after domain.Cursor, num int64) ([]domain.Notification, error) {
	r.mu.RLock()
	res := make([]domain.Notification, 0)
	for _, n := range r.notifications {
		if n.OwnerUserID == ownerUserID && after.Admits(n.Date, n.ID) {
			res = append(res, n)
		}
	}
	r.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		return domain.NewestFirst(res[i].Date, res[i].ID, res[j].Date, res[j].ID)
	})
	if int64(len(res)) > num {
		res = res[:num]
	}
	return res, nil
}

func (r *notificationRepository) MarkRead(_ context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok || n.OwnerUserID != ownerUserID {
		return domain.ErrNotFound
	}
	n.Read = true
	r.notifications[id] = n
	return nil
}
