package wire

import (
	"matchbook/internal/book"
	"matchbook/internal/common"
	"matchbook/internal/logger"
)

// SerializeBook renders every resting order in b as order-text lines,
// best-of-bids-first then best-of-asks-first, each as a Limit order
// carrying its own user id — the form that, replayed into an empty book
// via ReplayBook, reconstructs an equal book (spec.md §8's round-trip
// law).
func SerializeBook(b *book.OrderBook) []string {
	var lines []string
	b.Bid().Walk(func(_ int, order *common.RestingOrder) bool {
		lines = append(lines, FormatOrder(restingToIncoming(*order, common.Buy)))
		return true
	})
	b.Ask().Walk(func(_ int, order *common.RestingOrder) bool {
		lines = append(lines, FormatOrder(restingToIncoming(*order, common.Sell)))
		return true
	})
	return lines
}

// ReplayBook parses and executes each line into a fresh book, discarding
// the resulting log (any well-formed Limit order replayed in book order
// only ever enqueues, since it reproduces exactly the resting state it
// was serialized from and an empty book can never self-trade against it).
func ReplayBook(lines []string) (*book.OrderBook, error) {
	b := book.New()
	for _, line := range lines {
		order, err := ParseOrder(line)
		if err != nil {
			return nil, err
		}
		b.ExecuteOrder(order, logger.NullLogger{})
	}
	return b, nil
}

func restingToIncoming(order common.RestingOrder, side common.OrderSide) common.IncomingOrder {
	return common.IncomingOrder{
		PriceLimit: order.PriceLimit,
		Size:       order.Size,
		UserID:     order.UserID,
		Kind:       common.Limit,
		Side:       side,
	}
}
