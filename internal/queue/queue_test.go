package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matchbook/internal/common"
	"matchbook/internal/queue"
)

// newQueues returns one SliceQueue and one ReversedQueue for the given
// side, so every test below exercises both backings identically and
// proves they are interchangeable per spec.md §9.
func newQueues(side common.OrderSide) []queue.Queue {
	return []queue.Queue{
		queue.NewSliceQueue(side),
		queue.NewReversedQueue(side),
	}
}

func snapshot(q queue.Queue) []common.RestingOrder {
	var out []common.RestingOrder
	q.Walk(func(_ int, o *common.RestingOrder) bool {
		out = append(out, *o)
		return true
	})
	return out
}

func TestInsert_BidPricePriority(t *testing.T) {
	for _, q := range newQueues(common.Buy) {
		q.Insert(common.RestingOrder{PriceLimit: 110, Size: 100, UserID: 42})
		q.Insert(common.RestingOrder{PriceLimit: 130, Size: 100, UserID: 42})
		q.Insert(common.RestingOrder{PriceLimit: 120, Size: 100, UserID: 42})
		q.Insert(common.RestingOrder{PriceLimit: 100, Size: 100, UserID: 42})

		got := snapshot(q)
		assert.Equal(t, []common.RestingOrder{
			{PriceLimit: 130, Size: 100, UserID: 42},
			{PriceLimit: 120, Size: 100, UserID: 42},
			{PriceLimit: 110, Size: 100, UserID: 42},
			{PriceLimit: 100, Size: 100, UserID: 42},
		}, got)
	}
}

func TestInsert_AskPricePriority(t *testing.T) {
	for _, q := range newQueues(common.Sell) {
		q.Insert(common.RestingOrder{PriceLimit: 110, Size: 1, UserID: 1})
		q.Insert(common.RestingOrder{PriceLimit: 90, Size: 1, UserID: 1})
		q.Insert(common.RestingOrder{PriceLimit: 100, Size: 1, UserID: 1})

		got := snapshot(q)
		assert.Equal(t, []uint64{90, 100, 110}, prices(got))
	}
}

func TestInsert_FIFOOnEqualPrice(t *testing.T) {
	for _, q := range newQueues(common.Buy) {
		q.Insert(common.RestingOrder{PriceLimit: 100, Size: 100, UserID: 41})
		q.Insert(common.RestingOrder{PriceLimit: 101, Size: 100, UserID: 42})
		q.Insert(common.RestingOrder{PriceLimit: 102, Size: 100, UserID: 43})
		q.Insert(common.RestingOrder{PriceLimit: 101, Size: 100, UserID: 44})
		q.Insert(common.RestingOrder{PriceLimit: 101, Size: 100, UserID: 45})

		got := snapshot(q)
		assert.Equal(t, []uint64{43, 42, 44, 45, 41}, userIDs(got))
		assert.Equal(t, []uint64{102, 101, 101, 101, 100}, prices(got))
	}
}

func TestTruncateFrontThenPushFront(t *testing.T) {
	for _, q := range newQueues(common.Buy) {
		q.Insert(common.RestingOrder{PriceLimit: 103, Size: 1, UserID: 1})
		q.Insert(common.RestingOrder{PriceLimit: 102, Size: 1, UserID: 2})
		q.Insert(common.RestingOrder{PriceLimit: 101, Size: 1, UserID: 3})
		q.Insert(common.RestingOrder{PriceLimit: 100, Size: 1, UserID: 4})

		assert.Equal(t, 4, q.Len())
		q.TruncateFront(2)
		assert.Equal(t, 2, q.Len())
		assert.Equal(t, []uint64{3, 4}, userIDs(snapshot(q)))

		q.PushFront(common.RestingOrder{PriceLimit: 105, Size: 1, UserID: 9})
		assert.Equal(t, []uint64{9, 3, 4}, userIDs(snapshot(q)))
		assert.False(t, q.IsEmpty())

		q.TruncateFront(3)
		assert.True(t, q.IsEmpty())
	}
}

func TestWalkStopsOnFalse(t *testing.T) {
	for _, q := range newQueues(common.Sell) {
		q.Insert(common.RestingOrder{PriceLimit: 10, Size: 1, UserID: 1})
		q.Insert(common.RestingOrder{PriceLimit: 20, Size: 1, UserID: 2})
		q.Insert(common.RestingOrder{PriceLimit: 30, Size: 1, UserID: 3})

		var visited []int
		q.Walk(func(i int, _ *common.RestingOrder) bool {
			visited = append(visited, i)
			return i < 1
		})
		assert.Equal(t, []int{0, 1}, visited)
	}
}

func TestWalkMutatesSizeInPlace(t *testing.T) {
	for _, q := range newQueues(common.Buy) {
		q.Insert(common.RestingOrder{PriceLimit: 10, Size: 5, UserID: 1})

		q.Walk(func(_ int, o *common.RestingOrder) bool {
			o.Size -= 2
			return true
		})
		assert.Equal(t, uint64(3), snapshot(q)[0].Size)
	}
}

func prices(orders []common.RestingOrder) []uint64 {
	out := make([]uint64, len(orders))
	for i, o := range orders {
		out[i] = o.PriceLimit
	}
	return out
}

func userIDs(orders []common.RestingOrder) []uint64 {
	out := make([]uint64, len(orders))
	for i, o := range orders {
		out[i] = o.UserID
	}
	return out
}
