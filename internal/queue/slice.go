package queue

import "matchbook/internal/common"

// SliceQueue stores resting orders in a single slice, logical front at
// physical index 0. It is grounded on the original implementation's
// VecDeque-backed queue: insertion does a linear scan for the insertion
// point, PushFront and TruncateFront are the natural VecDeque operations
// at the head.
type SliceQueue struct {
	side   common.OrderSide
	orders []common.RestingOrder
}

// NewSliceQueue builds an empty queue for the given side.
func NewSliceQueue(side common.OrderSide) *SliceQueue {
	return &SliceQueue{side: side}
}

func (q *SliceQueue) isWorse(existing, candidate uint64) bool {
	if q.side == common.Buy {
		return existing < candidate
	}
	return existing > candidate
}

func (q *SliceQueue) Insert(order common.RestingOrder) {
	for i, existing := range q.orders {
		if q.isWorse(existing.PriceLimit, order.PriceLimit) {
			q.orders = append(q.orders, common.RestingOrder{})
			copy(q.orders[i+1:], q.orders[i:])
			q.orders[i] = order
			return
		}
	}
	q.orders = append(q.orders, order)
}

func (q *SliceQueue) Walk(visit Visitor) {
	for i := range q.orders {
		if !visit(i, &q.orders[i]) {
			return
		}
	}
}

func (q *SliceQueue) TruncateFront(n int) {
	if n == 0 {
		return
	}
	q.orders = append(q.orders[:0], q.orders[n:]...)
}

func (q *SliceQueue) PushFront(order common.RestingOrder) {
	q.orders = append(q.orders, common.RestingOrder{})
	copy(q.orders[1:], q.orders[:len(q.orders)-1])
	q.orders[0] = order
}

func (q *SliceQueue) Len() int {
	return len(q.orders)
}

func (q *SliceQueue) IsEmpty() bool {
	return len(q.orders) == 0
}
