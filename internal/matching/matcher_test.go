package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchbook/internal/common"
	"matchbook/internal/logger"
	"matchbook/internal/matching"
	"matchbook/internal/queue"
)

func buildBidQueue(orders ...common.RestingOrder) queue.Queue {
	q := queue.NewSliceQueue(common.Buy)
	for _, o := range orders {
		q.Insert(o)
	}
	return q
}

func snapshot(q queue.Queue) []common.RestingOrder {
	var out []common.RestingOrder
	q.Walk(func(_ int, o *common.RestingOrder) bool {
		out = append(out, *o)
		return true
	})
	return out
}

// A Fill-or-Kill that cannot be fully satisfied must leave the queue
// byte-equivalent to its pre-call state and must not emit any log item
// (spec.md §8, invariant 7).
func TestMatchAgainst_FoKFailureLeavesQueueAndLogUntouched(t *testing.T) {
	q := buildBidQueue(
		common.RestingOrder{PriceLimit: 103, Size: 1, UserID: 1},
		common.RestingOrder{PriceLimit: 102, Size: 1, UserID: 2},
		common.RestingOrder{PriceLimit: 101, Size: 1, UserID: 4},
	)
	before := snapshot(q)

	active := &matching.Active{PriceLimit: 101, Size: 10, UserID: 0, Side: common.Sell, Kind: common.FillOrKill}
	log := logger.NewVectorLogger()
	matching.MatchAgainst(q, active, log)

	assert.Equal(t, uint64(10), active.Size, "active size is restored to its pre-walk value")
	assert.Empty(t, log.Items(), "every Fulfilled item emitted mid-walk must be rolled back")
	assert.Equal(t, before, snapshot(q), "queue must be byte-equivalent to its pre-call state")
}

// A Fill-or-Kill that exactly fills commits like any other successful
// walk: no rollback, full truncation.
func TestMatchAgainst_FoKSuccessCommits(t *testing.T) {
	q := buildBidQueue(
		common.RestingOrder{PriceLimit: 103, Size: 2, UserID: 1},
		common.RestingOrder{PriceLimit: 102, Size: 3, UserID: 2},
	)
	active := &matching.Active{PriceLimit: 102, Size: 5, UserID: 0, Side: common.Sell, Kind: common.FillOrKill}
	log := logger.NewVectorLogger()
	matching.MatchAgainst(q, active, log)

	require.Equal(t, uint64(0), active.Size)
	assert.Len(t, log.Items(), 2)
	assert.True(t, q.IsEmpty())
}

// No Fulfilled item is ever emitted for an incoming order whose user_id
// matches the passive order's (spec.md §8, invariant 8), and the queue
// restoration preserves the self-trade-skipped orders' relative order.
func TestMatchAgainst_SelfTradeAvoidance(t *testing.T) {
	q := buildBidQueue(
		common.RestingOrder{PriceLimit: 103, Size: 1, UserID: 3},
		common.RestingOrder{PriceLimit: 102, Size: 1, UserID: 0},
		common.RestingOrder{PriceLimit: 102, Size: 1, UserID: 2},
		common.RestingOrder{PriceLimit: 101, Size: 1, UserID: 1},
		common.RestingOrder{PriceLimit: 100, Size: 1, UserID: 0},
	)
	active := &matching.Active{PriceLimit: 90, Size: 5, UserID: 0, Side: common.Sell, Kind: common.Limit}
	log := logger.NewVectorLogger()
	matching.MatchAgainst(q, active, log)

	for _, item := range log.Items() {
		if item.Kind == logger.Fulfilled {
			assert.NotEqual(t, uint64(0), item.UserID, "user 0 must never trade against itself")
		}
	}
	assert.Equal(t, uint64(2), active.Size)
	assert.Equal(t, []common.RestingOrder{
		{PriceLimit: 102, Size: 1, UserID: 0},
		{PriceLimit: 100, Size: 1, UserID: 0},
	}, snapshot(q))
}

// An IoC residual is left for the book orchestrator to Cancel, not
// re-enqueued by the matcher itself — MatchAgainst only owns the walk and
// the queue commit, never the residual placement policy.
func TestMatchAgainst_IoCResidualIsNotEnqueuedByMatcher(t *testing.T) {
	q := buildBidQueue(common.RestingOrder{PriceLimit: 100, Size: 1, UserID: 1})
	active := &matching.Active{PriceLimit: 100, Size: 5, UserID: 0, Side: common.Sell, Kind: common.ImmediateOrCancel}
	log := logger.NewVectorLogger()
	matching.MatchAgainst(q, active, log)

	assert.Equal(t, uint64(4), active.Size)
	assert.Equal(t, []logger.LogItem{{Kind: logger.Fulfilled, Size: 1, Price: 100, UserID: 1}}, log.Items())
	assert.True(t, q.IsEmpty())
}

// Conservation (spec.md §8, invariant 6): the sum of Fulfilled sizes
// equals both the aggressor's consumed size and the reduction in the
// opposing queue's total resting size.
func TestMatchAgainst_Conservation(t *testing.T) {
	q := buildBidQueue(
		common.RestingOrder{PriceLimit: 110, Size: 4, UserID: 1},
		common.RestingOrder{PriceLimit: 105, Size: 6, UserID: 2},
	)
	totalBefore := totalSize(snapshot(q))

	active := &matching.Active{PriceLimit: 100, Size: 7, UserID: 0, Side: common.Sell, Kind: common.Limit}
	log := logger.NewVectorLogger()
	matching.MatchAgainst(q, active, log)

	var fulfilled uint64
	for _, item := range log.Items() {
		if item.Kind == logger.Fulfilled {
			fulfilled += item.Size
		}
	}
	consumedByAggressor := uint64(7) - active.Size
	reductionInQueue := totalBefore - totalSize(snapshot(q))

	assert.Equal(t, consumedByAggressor, fulfilled)
	assert.Equal(t, reductionInQueue, fulfilled)
}

func totalSize(orders []common.RestingOrder) uint64 {
	var total uint64
	for _, o := range orders {
		total += o.Size
	}
	return total
}
