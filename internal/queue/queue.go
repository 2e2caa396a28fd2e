// Package queue implements the side-polarized price-time priority queue
// that backs one side of an order book. Two interchangeable backings are
// provided, both satisfying the same Queue contract: SliceQueue (grounded
// on a VecDeque-style backing) and ReversedQueue (grounded on a
// tail-appended-in-reverse backing). The choice between them is a
// performance concern, not a correctness one.
package queue

import "matchbook/internal/common"

// Visitor is called once per resting order during a Walk, in best-to-worst
// order, with the order's current index. It may mutate the order's Size
// in place. Returning false stops the walk.
type Visitor func(index int, order *common.RestingOrder) bool

// Queue is the contract the matching engine (internal/matching) and the
// book orchestrator (internal/book) depend on. Position 0 is always the
// best price for the queue's side; ties are broken FIFO (earlier arrival
// at a lower index).
type Queue interface {
	// Insert places order at the position that preserves price-time
	// priority: the first existing position whose price is strictly
	// worse than order.PriceLimit, or the tail if none is worse.
	Insert(order common.RestingOrder)

	// Walk iterates positions 0, 1, 2, ... giving the visitor mutable
	// access to each order, until the visitor returns false or the
	// queue is exhausted. Walk never itself removes or reorders
	// anything; structural mutation is driven by TruncateFront and
	// PushFront.
	Walk(visit Visitor)

	// TruncateFront removes the first n elements. Precondition: n <=
	// Len(). n == 0 is a no-op.
	TruncateFront(n int)

	// PushFront prepends order at position 0, shifting every other
	// element one position toward the tail. Used only to restore
	// self-trade-skipped orders (see internal/matching).
	PushFront(order common.RestingOrder)

	Len() int
	IsEmpty() bool
}
