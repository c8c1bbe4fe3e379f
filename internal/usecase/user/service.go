package user

import (
	"context"
	"strings"
	"time"

	"github.com/Guyuepp/go-social-feed/domain"
)

type Service struct {
	userRepo domain.UserRepository
	now      func() time.Time
}

var _ domain.UserUsecase = (*Service)(nil)

// NewService will create a new user service object
func NewService(u domain.UserRepository) *Service {
	return &Service{
		userRepo: u,
		now:      time.Now,
	}
}

func (s *Service) Register(ctx context.Context, username, displayName string) (domain.User, error) {
	username = strings.TrimSpace(username)
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = username
	}
	u := domain.User{
		ID:          domain.NewID(),
		Username:    username,
		DisplayName: displayName,
		JoinDate:    s.now(),
	}
	if err := s.userRepo.Store(ctx, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}
