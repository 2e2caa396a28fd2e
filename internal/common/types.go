// Package common holds the plain value types shared by the matching core:
// order sides, order kinds, the external submission form of an order, and
// the form an order takes once it is resting in a book.
package common

import "fmt"

// OrderSide is a tagged enumeration of the two sides of the book.
type OrderSide int

const (
	Buy OrderSide = iota
	Sell
)

// Other returns the opposing side.
func (s OrderSide) Other() OrderSide {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s OrderSide) String() string {
	switch s {
	case Buy:
		return "B"
	case Sell:
		return "S"
	default:
		return fmt.Sprintf("OrderSide(%d)", int(s))
	}
}

// OrderKind is a tagged enumeration of the three order-kind semantics the
// matching core understands. A resting order never carries a kind: only
// Limit residuals rest, so RestingOrder omits the field entirely.
type OrderKind int

const (
	Limit OrderKind = iota
	FillOrKill
	ImmediateOrCancel
)

func (k OrderKind) String() string {
	switch k {
	case Limit:
		return "Lim"
	case FillOrKill:
		return "FoK"
	case ImmediateOrCancel:
		return "IoC"
	default:
		return fmt.Sprintf("OrderKind(%d)", int(k))
	}
}

// IncomingOrder is the external-submission form of an order. It is
// immutable once constructed; callers must only submit orders with
// Size > 0.
type IncomingOrder struct {
	PriceLimit uint64
	Size       uint64
	UserID     uint64
	Kind       OrderKind
	Side       OrderSide
}

func (o IncomingOrder) String() string {
	return fmt.Sprintf("%s %s $%d #%d u%d", o.Kind, o.Side, o.PriceLimit, o.Size, o.UserID)
}

// RestingOrder is held inside a PriceTimeQueue on one specific side. The
// side is implicit from which queue contains it; the order's kind is not
// retained because only Limit residuals ever rest.
type RestingOrder struct {
	PriceLimit uint64
	Size       uint64
	UserID     uint64
}

// PriceMatches reports whether a resting order on the given side is a
// valid passive counterparty for an active order with the given side and
// price limit: for an active Buy, the passive Sell's price must be at
// most the active's; for an active Sell, the passive Buy's price must be
// at least the active's.
func PriceMatches(activeSide OrderSide, activePriceLimit uint64, passive RestingOrder) bool {
	if activeSide == Buy {
		return passive.PriceLimit <= activePriceLimit
	}
	return passive.PriceLimit >= activePriceLimit
}
