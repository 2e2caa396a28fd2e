// Package book implements the orchestrator that ties the matching walk
// (internal/matching) to the two side queues (internal/queue): routing an
// incoming order to the correct opposing queue, applying the
// order-kind policy to whatever remains, and driving the audit logger.
package book

import (
	"matchbook/internal/common"
	"matchbook/internal/logger"
	"matchbook/internal/matching"
	"matchbook/internal/queue"
)

// OrderBook is the aggregate of exactly two PriceTimeQueues: bid for
// Buy-side resting orders, ask for Sell-side. It owns its queues
// exclusively; queues are never shared between books. A book is created
// empty and mutated only by ExecuteOrder.
type OrderBook struct {
	bid queue.Queue
	ask queue.Queue
}

// New builds an empty order book backed by SliceQueue on both sides.
func New() *OrderBook {
	return &OrderBook{
		bid: queue.NewSliceQueue(common.Buy),
		ask: queue.NewSliceQueue(common.Sell),
	}
}

// NewWithQueues builds an empty order book backed by caller-supplied
// queue implementations, so that SliceQueue and ReversedQueue can be
// exercised interchangeably (see internal/queue).
func NewWithQueues(bid, ask queue.Queue) *OrderBook {
	return &OrderBook{bid: bid, ask: ask}
}

// Bid exposes the resting buy-side queue, read-only from the caller's
// perspective (used for snapshotting/serialization, not mutation).
func (b *OrderBook) Bid() queue.Queue { return b.bid }

// Ask exposes the resting sell-side queue.
func (b *OrderBook) Ask() queue.Queue { return b.ask }

// ExecuteOrder runs one order through the book to completion: it is not
// interleavable with any other call on the same book. It is infallible
// given a well-formed IncomingOrder (Size > 0); the resulting audit trail
// is written to log.
func (b *OrderBook) ExecuteOrder(order common.IncomingOrder, log logger.ExecutionLogger) {
	var sameSide queue.Queue
	var opposite queue.Queue
	switch order.Side {
	case common.Buy:
		sameSide, opposite = b.bid, b.ask
	case common.Sell:
		sameSide, opposite = b.ask, b.bid
	}

	active := &matching.Active{
		PriceLimit: order.PriceLimit,
		Size:       order.Size,
		UserID:     order.UserID,
		Side:       order.Side,
		Kind:       order.Kind,
	}

	initialSize := active.Size
	matching.MatchAgainst(opposite, active, log)

	switch {
	case active.Size == 0:
		// Fully filled; nothing further to do.
	case order.Kind == common.Limit:
		log.Log(logger.LogItem{Kind: logger.Enqueued, Size: active.Size})
		sameSide.Insert(common.RestingOrder{
			PriceLimit: order.PriceLimit,
			Size:       active.Size,
			UserID:     order.UserID,
		})
	case order.Kind == common.ImmediateOrCancel:
		log.Log(logger.LogItem{Kind: logger.Cancelled, Size: active.Size})
	case order.Kind == common.FillOrKill:
		// MatchAgainst already rolled active.Size back to its initial
		// value and rolled back the logger; the Cancelled item is
		// emitted after the rollback so it survives.
		log.Log(logger.LogItem{Kind: logger.Cancelled, Size: initialSize})
	}
}
