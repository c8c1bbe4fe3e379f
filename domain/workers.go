package domain

import "context"

// EdgeRepair names a follow pair whose two halves may disagree.
// Target.Followers is the source of truth; the follower's Following set is
// rewritten to match it.
type EdgeRepair struct {
	FollowerID string
	TargetID   string
}

// EdgeRepairer reconciles half-applied follow edges in the background.
type EdgeRepairer interface {
	Start(ctx context.Context)

	// Send queues a pair for reconciliation. It never blocks.
	Send(repair EdgeRepair)
}
