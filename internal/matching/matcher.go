// Package matching implements the matching walk: consuming resting
// liquidity from one side's PriceTimeQueue against an active order from
// the other side, honoring price compatibility, self-trade avoidance, and
// the Fill-or-Kill all-or-nothing commit.
package matching

import (
	"matchbook/internal/common"
	"matchbook/internal/logger"
	"matchbook/internal/queue"
)

// Active is the mutable state of the order being matched: its remaining
// size, its limit price, its owner, its side, and the kind that governs
// the post-walk commit policy.
type Active struct {
	PriceLimit uint64
	Size       uint64
	UserID     uint64
	Side       common.OrderSide
	Kind       common.OrderKind
}

// MatchAgainst walks q best-first against active, emitting Fulfilled log
// items as it trades, skipping self-trades, and stopping at the first
// passive order that fails the price-match predicate or when the queue is
// exhausted or active.Size reaches zero.
//
// On success (any outcome other than a failed Fill-or-Kill) the queue is
// committed: the consumed prefix is truncated and any self-trade-skipped
// orders are restored to the front, in their original relative order.
//
// On a failed Fill-or-Kill, active.Size is restored to its pre-walk value,
// log.Rollback() is called to erase every Fulfilled item emitted during
// the walk, and the queue is left completely untouched — no truncation,
// no restoration, because no structural mutation was ever committed.
func MatchAgainst(q queue.Queue, active *Active, log logger.ExecutionLogger) {
	initialSize := active.Size
	dropFirst := 0
	var retained []common.RestingOrder

	// havePartial/partialSize record a passive order's in-place size
	// decrement that must stay pending until we know the walk will
	// commit: deferring it is what lets a failed FoK leave the queue
	// byte-equivalent to its pre-call state.
	havePartial := false
	var partialSize uint64

	q.Walk(func(index int, passive *common.RestingOrder) bool {
		if !common.PriceMatches(active.Side, active.PriceLimit, *passive) {
			return false
		}

		if passive.UserID == active.UserID {
			retained = append(retained, *passive)
			dropFirst = index + 1
			return true
		}

		traded := min(active.Size, passive.Size)
		active.Size -= traded
		log.Log(logger.LogItem{
			Kind:   logger.Fulfilled,
			Size:   traded,
			Price:  passive.PriceLimit,
			UserID: passive.UserID,
		})

		if passive.Size == traded {
			dropFirst = index + 1
			havePartial = false
		} else {
			dropFirst = index
			havePartial = true
			partialSize = passive.Size - traded
		}

		if active.Size == 0 {
			if havePartial {
				passive.Size = partialSize
			}
			return false
		}
		return true
	})

	if active.Kind == common.FillOrKill && active.Size != 0 {
		active.Size = initialSize
		log.Rollback()
		return
	}

	q.TruncateFront(dropFirst)
	for i := len(retained) - 1; i >= 0; i-- {
		q.PushFront(retained[i])
	}
}
