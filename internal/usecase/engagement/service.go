package engagement

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-social-feed/domain"
)

// Service flips like membership on posts and keeps the like notification in step.
type Service struct {
	postRepo         domain.PostRepository
	postStore        domain.PostRepository
	notificationRepo domain.NotificationRepository
	bloomRepo        domain.BloomRepository
	retractOnUnlike  bool
	now              func() time.Time
}

var _ domain.EngagementUsecase = (*Service)(nil)

// Option tweaks a Service at construction time.
type Option func(*Service)

// WithRetractOnUnlike removes the like notification when the like is retracted.
// Off by default: the unlike path leaves notifications as they are.
func WithRetractOnUnlike(enabled bool) Option {
	return func(s *Service) { s.retractOnUnlike = enabled }
}

// WithBloomFilter short-circuits toggles on post ids that were never created.
func WithBloomFilter(b domain.BloomRepository) Option {
	return func(s *Service) { s.bloomRepo = b }
}

// NewService will create a new engagement service object
func NewService(p domain.PostRepository, n domain.NotificationRepository, opts ...Option) *Service {
	s := &Service{
		postRepo:         p,
		postStore:        domain.Uncached(p),
		notificationRepo: n,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ToggleLike likes the post if userID has not liked it yet, and unlikes it otherwise.
//
// The membership read comes from the store, never the cache, and only picks
// the direction. The store applies the
// change conditionally on that membership, so counter and like set move
// together; if the condition no longer holds another toggle won the race and
// ErrConflict is returned.
func (s *Service) ToggleLike(ctx context.Context, postID, userID string) (domain.LikeResult, error) {
	if err := s.mustExist(ctx, postID); err != nil {
		return domain.LikeResult{}, err
	}
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return domain.LikeResult{}, err
	}

	liked := !post.IsLikedBy(userID)
	var applied bool
	if liked {
		applied, err = s.postRepo.AddLike(ctx, postID, userID)
	} else {
		applied, err = s.postRepo.RemoveLike(ctx, postID, userID)
	}
	if err != nil {
		return domain.LikeResult{}, err
	}
	if !applied {
		if _, err := s.postStore.GetByID(ctx, postID); err != nil {
			return domain.LikeResult{}, err
		}
		return domain.LikeResult{}, domain.ErrConflict
	}

	if userID != post.Author.ID {
		if liked {
			s.notifyLike(ctx, userID, post)
		} else if s.retractOnUnlike {
			s.retractLike(ctx, userID, post)
		}
	}

	updated, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return domain.LikeResult{}, err
	}
	return domain.LikeResult{Liked: liked, Post: updated}, nil
}

// notifyLike replaces any active like notification for (user, author, post) with a fresh one.
func (s *Service) notifyLike(ctx context.Context, userID string, post domain.Post) {
	logger := logrus.WithFields(logrus.Fields{"post": post.ID, "user": userID})
	if _, err := s.notificationRepo.DeleteLike(ctx, userID, post.Author.ID, post.SubjectPath()); err != nil {
		logger.Errorf("failed to clear previous like notification: %v", err)
		return
	}
	n := domain.NewLikeNotification(userID, post, s.now())
	err := s.notificationRepo.Store(ctx, &n)
	switch {
	case errors.Is(err, domain.ErrConflict):
		// a concurrent like of the same triple stored it first
		logger.Debug("like notification already active")
	case err != nil:
		logger.Errorf("failed to store like notification: %v", err)
	}
}

func (s *Service) retractLike(ctx context.Context, userID string, post domain.Post) {
	if _, err := s.notificationRepo.DeleteLike(ctx, userID, post.Author.ID, post.SubjectPath()); err != nil {
		logrus.WithFields(logrus.Fields{"post": post.ID, "user": userID}).
			Errorf("failed to retract like notification: %v", err)
	}
}

func (s *Service) mustExist(ctx context.Context, postID string) error {
	if s.bloomRepo == nil {
		return nil
	}
	exists, err := s.bloomRepo.Exists(ctx, postID)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says post %s does not exist", postID)
		return domain.ErrNotFound
	}
	return nil
}
