package venue

import (
	"context"
	"sync"

	"github.com/tidwall/btree"

	"matchbook/internal/common"
	"matchbook/internal/logger"
)

type tickerEntry struct {
	ticker     string
	instrument *Instrument
}

// Registry fans a multi-instrument venue out over one Instrument per
// ticker, indexed by a btree.BTreeG sorted on the ticker string so that
// DumpAll always enumerates instruments in the same deterministic order
// regardless of the order tickers were first referenced in.
type Registry struct {
	mu    sync.Mutex
	index *btree.BTreeG[*tickerEntry]
}

func NewRegistry() *Registry {
	return &Registry{
		index: btree.NewBTreeG(func(a, b *tickerEntry) bool {
			return a.ticker < b.ticker
		}),
	}
}

// instrumentFor returns the Instrument for ticker, lazily starting its
// actor goroutine the first time the ticker is referenced.
func (r *Registry) instrumentFor(ticker string) *Instrument {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.index.Get(&tickerEntry{ticker: ticker}); ok {
		return entry.instrument
	}
	entry := &tickerEntry{ticker: ticker, instrument: newInstrument(ticker)}
	r.index.Set(entry)
	return entry.instrument
}

// Submit routes order to ticker's instrument, creating it on first use.
func (r *Registry) Submit(ctx context.Context, ticker string, order common.IncomingOrder) ([]logger.LogItem, error) {
	return r.instrumentFor(ticker).Submit(ctx, order)
}

// TickerLog is one instrument's serialized resting orders.
type TickerLog struct {
	Ticker string
	Lines  []string
}

// DumpAll serializes every known instrument's book, ticker-ordered.
func (r *Registry) DumpAll(ctx context.Context) ([]TickerLog, error) {
	r.mu.Lock()
	entries := make([]*tickerEntry, 0, r.index.Len())
	r.index.Scan(func(entry *tickerEntry) bool {
		entries = append(entries, entry)
		return true
	})
	r.mu.Unlock()

	dumps := make([]TickerLog, 0, len(entries))
	for _, entry := range entries {
		lines, err := entry.instrument.Dump(ctx)
		if err != nil {
			return nil, err
		}
		dumps = append(dumps, TickerLog{Ticker: entry.ticker, Lines: lines})
	}
	return dumps, nil
}

// Close tears down every registered instrument's actor goroutine.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index.Scan(func(entry *tickerEntry) bool {
		entry.instrument.Close()
		return true
	})
}
