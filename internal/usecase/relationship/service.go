package relationship

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/go-social-feed/domain"
)

const (
	// compensateTimeout bounds the undo of a half-applied pair once the caller is gone
	compensateTimeout = 5 * time.Second

	msgBlocked   = "User blocked"
	msgUnblocked = "User unblocked"
)

// Service keeps follow edges mirrored across the two user documents.
//
// Stores only promise single-document atomicity, so every edge is written
// in an order that leaves a retry-safe half state: add the target side
// first and the initiator side second, remove the initiator side first and
// the target side second. The target's Followers set is therefore the source
// of truth for a half-applied pair.
type Service struct {
	userRepo            domain.UserRepository
	notificationRepo    domain.NotificationRepository
	repairer            domain.EdgeRepairer
	refuseBlockedFollow bool
	now                 func() time.Time
}

var _ domain.RelationshipUsecase = (*Service)(nil)

// Option tweaks a Service at construction time.
type Option func(*Service)

// WithBlockedFollowRefused makes Follow fail with ErrForbidden while either
// user blocks the other. Off by default: a block only severs existing edges.
func WithBlockedFollowRefused(enabled bool) Option {
	return func(s *Service) { s.refuseBlockedFollow = enabled }
}

// NewService will create a new relationship service object
func NewService(u domain.UserRepository, n domain.NotificationRepository, r domain.EdgeRepairer, opts ...Option) *Service {
	s := &Service{
		userRepo:         u,
		notificationRepo: n,
		repairer:         r,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Follow toggles follower -> target and reports the resulting state.
func (s *Service) Follow(ctx context.Context, followerID, targetID string) (domain.FollowResult, error) {
	if followerID == targetID {
		return domain.FollowResult{}, fmt.Errorf("%w: cannot follow yourself", domain.ErrBadParamInput)
	}
	follower, target, err := s.loadPair(ctx, followerID, targetID)
	if err != nil {
		return domain.FollowResult{}, err
	}

	if target.HasFollower(followerID) {
		if err := s.unlinkFollow(ctx, followerID, targetID); err != nil {
			return domain.FollowResult{}, err
		}
		return domain.FollowResult{Followed: false}, nil
	}

	if s.refuseBlockedFollow && (target.HasBlocked(followerID) || follower.HasBlocked(targetID)) {
		return domain.FollowResult{}, domain.ErrForbidden
	}

	if err := s.userRepo.AddFollower(ctx, targetID, followerID); err != nil {
		return domain.FollowResult{}, err
	}
	if err := s.userRepo.AddFollowing(ctx, followerID, targetID); err != nil {
		s.compensate(ctx, domain.EdgeRepair{FollowerID: followerID, TargetID: targetID}, func(ctx context.Context) error {
			return s.userRepo.RemoveFollower(ctx, targetID, followerID)
		})
		return domain.FollowResult{}, err
	}

	n := domain.NewFollowNotification(follower, targetID, s.now())
	if err := s.notificationRepo.Store(ctx, &n); err != nil {
		// edge already complete
		logrus.WithFields(logrus.Fields{
			"follower": followerID,
			"target":   targetID,
		}).Errorf("failed to store follow notification: %v", err)
	}
	return domain.FollowResult{Followed: true}, nil
}

// Block toggles blockedID in the blocker's block set.
// Blocking severs follow edges in both directions; unblocking restores nothing.
// A follow that read the pair before the block and wrote after the first
// sever is caught by a second sever once the block is stored.
func (s *Service) Block(ctx context.Context, blockerID, blockedID string) (domain.BlockResult, error) {
	if blockerID == blockedID {
		return domain.BlockResult{}, fmt.Errorf("%w: cannot block yourself", domain.ErrBadParamInput)
	}
	blocker, _, err := s.loadPair(ctx, blockerID, blockedID)
	if err != nil {
		return domain.BlockResult{}, err
	}

	if blocker.HasBlocked(blockedID) {
		if err := s.userRepo.RemoveBlocked(ctx, blockerID, blockedID); err != nil {
			return domain.BlockResult{}, err
		}
		return domain.BlockResult{Blocked: false, Message: msgUnblocked}, nil
	}

	// Sever first: until AddBlocked succeeds the pair reads as unblocked and
	// a retry lands in this branch again.
	if err := s.unlinkFollow(ctx, blockerID, blockedID); err != nil {
		return domain.BlockResult{}, err
	}
	if err := s.unlinkFollow(ctx, blockedID, blockerID); err != nil {
		return domain.BlockResult{}, err
	}
	if err := s.userRepo.AddBlocked(ctx, blockerID, blockedID); err != nil {
		return domain.BlockResult{}, err
	}
	s.resever(ctx, blockerID, blockedID)
	return domain.BlockResult{Blocked: true, Message: msgBlocked}, nil
}

// resever drops follow edges that landed while Block was running. The block
// is already stored, so a failure here is logged rather than returned: a
// retried Block would take the unblock branch.
func (s *Service) resever(ctx context.Context, blockerID, blockedID string) {
	for _, pair := range [][2]string{{blockerID, blockedID}, {blockedID, blockerID}} {
		if err := s.unlinkFollow(ctx, pair[0], pair[1]); err != nil {
			logrus.WithFields(logrus.Fields{
				"follower": pair[0],
				"target":   pair[1],
			}).Errorf("failed to sever follow edge after block: %v", err)
		}
	}
}

// unlinkFollow removes follower -> target, initiator side first.
func (s *Service) unlinkFollow(ctx context.Context, followerID, targetID string) error {
	if err := s.userRepo.RemoveFollowing(ctx, followerID, targetID); err != nil {
		return err
	}
	if err := s.userRepo.RemoveFollower(ctx, targetID, followerID); err != nil {
		s.compensate(ctx, domain.EdgeRepair{FollowerID: followerID, TargetID: targetID}, func(ctx context.Context) error {
			return s.userRepo.AddFollowing(ctx, followerID, targetID)
		})
		return err
	}
	return nil
}

// compensate reverts the first half of a pair after the second half failed.
// It runs detached from the request so a canceled caller still converges; if
// the revert fails too the pair goes to the repair worker.
func (s *Service) compensate(ctx context.Context, edge domain.EdgeRepair, revert func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()

	logger := logrus.WithFields(logrus.Fields{
		"follower": edge.FollowerID,
		"target":   edge.TargetID,
	})
	if err := revert(ctx); err != nil {
		logger.Warnf("compensation failed, queueing edge repair: %v", err)
		if s.repairer != nil {
			s.repairer.Send(edge)
		}
		return
	}
	logger.Info("half-applied follow edge reverted")
}

func (s *Service) loadPair(ctx context.Context, firstID, secondID string) (first, second domain.User, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		first, err = s.userRepo.GetByID(gctx, firstID)
		return err
	})
	g.Go(func() error {
		var err error
		second, err = s.userRepo.GetByID(gctx, secondID)
		return err
	})
	if err = g.Wait(); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, domain.User{}, err
	}
	return first, second, nil
}
