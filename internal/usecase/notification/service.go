package notification

import (
	"context"
	"fmt"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/repository"
)

type Service struct {
	notificationRepo domain.NotificationRepository
}

var _ domain.NotificationUsecase = (*Service)(nil)

func NewService(n domain.NotificationRepository) *Service {
	return &Service{notificationRepo: n}
}

// FetchByOwner pages the owner's notifications newest first. The returned
// cursor is empty when there is nothing more to read.
func (s *Service) FetchByOwner(ctx context.Context, ownerUserID, cursor string, num int64) ([]domain.Notification, string, error) {
	repository.PageVerify(&num)
	after, err := repository.DecodeCursor(cursor)
	if err != nil {
		return nil, "", fmt.Errorf("%w: bad cursor", domain.ErrBadParamInput)
	}

	res, err := s.notificationRepo.FetchByOwner(ctx, ownerUserID, after, num)
	if err != nil {
		return nil, "", err
	}

	if len(res) == 0 {
		return res, "", nil
	}
	last := res[len(res)-1]
	return res, repository.NextCursor(last.Date, last.ID, int64(len(res)), num), nil
}

func (s *Service) MarkRead(ctx context.Context, id, ownerUserID string) error {
	return s.notificationRepo.MarkRead(ctx, id, ownerUserID)
}
