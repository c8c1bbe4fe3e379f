package feed

import (
	"context"
	"fmt"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/repository"
)

// Service lists posts for timelines and profile pages. Listings read the
// store directly and page by (date, id), newest first.
type Service struct {
	postRepo domain.PostRepository
	userRepo domain.UserRepository
}

var _ domain.FeedUsecase = (*Service)(nil)

func NewService(p domain.PostRepository, u domain.UserRepository) *Service {
	return &Service{postRepo: p, userRepo: u}
}

type lister func(after domain.Cursor, num int64) ([]domain.Post, error)

// Timeline lists root posts, leaving out authors the viewer blocked and
// authors who blocked the viewer.
func (s *Service) Timeline(ctx context.Context, viewerID, cursor string, num int64) ([]domain.Post, string, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, "", err
	}
	blockers, err := s.userRepo.FetchBlockerIDs(ctx, viewerID)
	if err != nil {
		return nil, "", err
	}
	exclude := append(append([]string{}, viewer.BlockedIDs...), blockers...)

	return page(cursor, num, func(after domain.Cursor, num int64) ([]domain.Post, error) {
		return s.postRepo.Fetch(ctx, exclude, after, num)
	})
}

// Following lists posts and replies by the users the viewer follows.
func (s *Service) Following(ctx context.Context, viewerID, cursor string, num int64) ([]domain.Post, string, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, "", err
	}
	return page(cursor, num, func(after domain.Cursor, num int64) ([]domain.Post, error) {
		return s.postRepo.FetchByAuthors(ctx, viewer.Following, after, num)
	})
}

// FetchByAuthor lists everything authorID wrote, replies included.
func (s *Service) FetchByAuthor(ctx context.Context, authorID, cursor string, num int64) ([]domain.Post, string, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, "", err
	}
	return page(cursor, num, func(after domain.Cursor, num int64) ([]domain.Post, error) {
		return s.postRepo.FetchByAuthors(ctx, []string{authorID}, after, num)
	})
}

func (s *Service) FetchLikedBy(ctx context.Context, userID, cursor string, num int64) ([]domain.Post, string, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, "", err
	}
	return page(cursor, num, func(after domain.Cursor, num int64) ([]domain.Post, error) {
		return s.postRepo.FetchLikedBy(ctx, userID, after, num)
	})
}

func page(cursor string, num int64, list lister) ([]domain.Post, string, error) {
	repository.PageVerify(&num)
	after, err := repository.DecodeCursor(cursor)
	if err != nil {
		return nil, "", fmt.Errorf("%w: bad cursor", domain.ErrBadParamInput)
	}

	res, err := list(after, num)
	if err != nil {
		return nil, "", err
	}
	if len(res) == 0 {
		return res, "", nil
	}
	last := res[len(res)-1]
	return res, repository.NextCursor(last.Date, last.ID, int64(len(res)), num), nil
}
