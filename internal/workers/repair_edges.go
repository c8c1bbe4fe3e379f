package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-social-feed/domain"
)

const (
	defaultRepairQueueSize   = 1024
	defaultRepairInterval    = time.Second
	defaultRepairMaxAttempts = 5
	repairBatchSize          = 100
)

type edgeRepairWorker struct {
	userRepo    domain.UserRepository
	ch          chan domain.EdgeRepair
	interval    time.Duration
	maxAttempts int
}

var _ domain.EdgeRepairer = (*edgeRepairWorker)(nil)

// NewEdgeRepairWorker reconciles follow pairs whose compensation failed.
// Non-positive arguments fall back to defaults.
func NewEdgeRepairWorker(ur domain.UserRepository, queueSize int, interval time.Duration, maxAttempts int) *edgeRepairWorker {
	if queueSize <= 0 {
		queueSize = defaultRepairQueueSize
	}
	if interval <= 0 {
		interval = defaultRepairInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultRepairMaxAttempts
	}
	return &edgeRepairWorker{
		userRepo:    ur,
		ch:          make(chan domain.EdgeRepair, queueSize),
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

func (w *edgeRepairWorker) Send(repair domain.EdgeRepair) {
	select {
	case w.ch <- repair:
	default:
		logrus.WithFields(logrus.Fields{
			"follower": repair.FollowerID,
			"target":   repair.TargetID,
		}).Warn("edge repair queue is full, repair dropped")
	}
}

// Start runs until ctx is done. Pending repairs get one final pass on a
// detached context before it returns.
func (w *edgeRepairWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// pair -> attempts made so far
	pending := make(map[domain.EdgeRepair]int)
	for {
		select {
		case repair := <-w.ch:
			if _, ok := pending[repair]; !ok {
				pending[repair] = 0
			}
			if len(pending) >= repairBatchSize {
				pending = w.flush(ctx, pending)
			}
		case <-ticker.C:
			pending = w.flush(ctx, pending)
		case <-ctx.Done():
			logrus.Info("shutting down edge repair worker, flushing remaining repairs...")
			w.drain(pending)
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			w.flush(flushCtx, pending)
			cancel()
			return
		}
	}
}

func (w *edgeRepairWorker) drain(pending map[domain.EdgeRepair]int) {
	for {
		select {
		case repair := <-w.ch:
			if _, ok := pending[repair]; !ok {
				pending[repair] = 0
			}
		default:
			return
		}
	}
}

// flush reconciles every pending pair and returns the ones to retry.
func (w *edgeRepairWorker) flush(ctx context.Context, pending map[domain.EdgeRepair]int) map[domain.EdgeRepair]int {
	retry := make(map[domain.EdgeRepair]int)
	for repair, attempts := range pending {
		err := w.reconcile(ctx, repair)
		if err == nil {
			continue
		}
		logger := logrus.WithFields(logrus.Fields{
			"follower": repair.FollowerID,
			"target":   repair.TargetID,
			"attempt":  attempts + 1,
		})
		if attempts+1 >= w.maxAttempts || !domain.IsRetryable(err) {
			logger.Errorf("giving up on edge repair: %v", err)
			continue
		}
		logger.Warnf("edge repair failed, will retry: %v", err)
		retry[repair] = attempts + 1
	}
	return retry
}

// reconcile rewrites the follower half of the edge to match target.Followers.
func (w *edgeRepairWorker) reconcile(ctx context.Context, repair domain.EdgeRepair) error {
	target, err := w.userRepo.GetByID(ctx, repair.TargetID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// no target, so no edge may point at it
		err = w.userRepo.RemoveFollowing(ctx, repair.FollowerID, repair.TargetID)
	case err != nil:
		return err
	case target.HasFollower(repair.FollowerID):
		err = w.userRepo.AddFollowing(ctx, repair.FollowerID, repair.TargetID)
	default:
		err = w.userRepo.RemoveFollowing(ctx, repair.FollowerID, repair.TargetID)
	}
	if errors.Is(err, domain.ErrNotFound) {
		// follower is gone, nothing left to repair
		return nil
	}
	return err
}
