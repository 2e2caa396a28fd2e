// Package logger implements the audit-log sink the matching core writes
// to: a small sum type of log items (Fulfilled, Enqueued, Cancelled) and
// an ExecutionLogger contract supporting atomic rollback, so a failed
// Fill-or-Kill can erase every Fulfilled item it emitted mid-walk.
package logger

import "fmt"

// LogItemKind tags which variant a LogItem carries.
type LogItemKind int

const (
	Fulfilled LogItemKind = iota
	Enqueued
	Cancelled
)

// LogItem is the sum type emitted by the matching core. Not every field
// is meaningful for every Kind: Fulfilled uses Size/Price/UserID,
// Enqueued and Cancelled use only Size.
type LogItem struct {
	Kind   LogItemKind
	Size   uint64
	Price  uint64
	UserID uint64
}

func (item LogItem) String() string {
	switch item.Kind {
	case Fulfilled:
		return fmt.Sprintf("F #%d $%d u%d", item.Size, item.Price, item.UserID)
	case Enqueued:
		return fmt.Sprintf("Q #%d", item.Size)
	case Cancelled:
		return fmt.Sprintf("C #%d", item.Size)
	default:
		return fmt.Sprintf("LogItem(kind=%d)", int(item.Kind))
	}
}

// ExecutionLogger accumulates LogItems for one execute_order call. Rollback
// discards every item appended since the call began: the matcher invokes
// it exactly once per failed Fill-or-Kill. Implementations that instead
// clear everything (as VectorLogger does) only give per-call rollback when
// the logger is fresh or Reset before each ExecuteOrder call. OrderBook
// does not reset the logger itself; every caller in this repository
// passes a new logger for each call.
type ExecutionLogger interface {
	Log(item LogItem)
	Rollback()
}

// NullLogger discards everything. Used for benchmarks and for replaying a
// log text file into a book when only the resulting state is wanted.
type NullLogger struct{}

func (NullLogger) Log(LogItem) {}
func (NullLogger) Rollback()   {}

// VectorLogger collects items in arrival order and exposes them as a
// slice once an execute_order call completes.
type VectorLogger struct {
	items []LogItem
}

func NewVectorLogger() *VectorLogger {
	return &VectorLogger{}
}

func (l *VectorLogger) Log(item LogItem) {
	l.items = append(l.items, item)
}

func (l *VectorLogger) Rollback() {
	l.items = l.items[:0]
}

// Items returns the accumulated log items in emission order.
func (l *VectorLogger) Items() []LogItem {
	return l.items
}

// Reset clears the logger so that it can be reused for another
// execute_order call instead of allocating a fresh one.
func (l *VectorLogger) Reset() {
	l.items = l.items[:0]
}
