// Package venue hosts many independently-matched instruments behind a
// single registry, one actor goroutine per ticker, so the single-book
// single-goroutine guarantee the core matching package relies on holds
// per instrument while unrelated tickers still match concurrently.
package venue

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"matchbook/internal/book"
	"matchbook/internal/common"
	"matchbook/internal/logger"
	"matchbook/internal/wire"
)

type orderRequest struct {
	correlationID uuid.UUID
	order         common.IncomingOrder
	reply         chan []logger.LogItem
}

type dumpRequest struct {
	reply chan []string
}

// Instrument owns a single book.OrderBook and only ever touches it from
// its own goroutine, reached through orders/dumps. Callers never see the
// book directly.
type Instrument struct {
	ticker string
	b      *book.OrderBook
	orders chan orderRequest
	dumps  chan dumpRequest
	done   chan struct{}
}

func newInstrument(ticker string) *Instrument {
	inst := &Instrument{
		ticker: ticker,
		b:      book.New(),
		orders: make(chan orderRequest),
		dumps:  make(chan dumpRequest),
		done:   make(chan struct{}),
	}
	go inst.run()
	return inst
}

func (inst *Instrument) run() {
	for {
		select {
		case req := <-inst.orders:
			l := logger.NewVectorLogger()
			inst.b.ExecuteOrder(req.order, l)
			log.Debug().
				Str("ticker", inst.ticker).
				Str("correlationID", req.correlationID.String()).
				Int("logItems", len(l.Items())).
				Msg("order executed")
			req.reply <- l.Items()
		case req := <-inst.dumps:
			req.reply <- wire.SerializeBook(inst.b)
		case <-inst.done:
			return
		}
	}
}

// Submit executes order against this instrument's book and returns the
// log items it produced, tagging the round trip with a fresh correlation
// id for tracing across the daemon's logs.
func (inst *Instrument) Submit(ctx context.Context, order common.IncomingOrder) ([]logger.LogItem, error) {
	req := orderRequest{
		correlationID: uuid.New(),
		order:         order,
		reply:         make(chan []logger.LogItem, 1),
	}
	select {
	case inst.orders <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case items := <-req.reply:
		return items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Dump serializes this instrument's resting orders (spec.md §8's
// round-trip law, per instrument).
func (inst *Instrument) Dump(ctx context.Context) ([]string, error) {
	req := dumpRequest{reply: make(chan []string, 1)}
	select {
	case inst.dumps <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case lines := <-req.reply:
		return lines, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops this instrument's actor goroutine. Submit/Dump calls
// racing a Close will block forever on a closed registry entry; callers
// are expected to Close only once every in-flight caller has drained.
func (inst *Instrument) Close() {
	close(inst.done)
}
