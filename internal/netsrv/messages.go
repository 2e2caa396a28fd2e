package netsrv

import (
	"encoding/binary"
	"errors"

	"matchbook/internal/common"
)

var (
	ErrInvalidMessageType = errors.New("netsrv: invalid message type")
	ErrMessageTooShort    = errors.New("netsrv: message too short for its declared field lengths")
)

type MessageType uint16

const (
	NewOrder MessageType = iota
	LogBook
)

// Message format constants. Tickers are capped at 16 bytes (longer than
// any real exchange symbol needs, short enough to keep the header fixed
// size); the remaining NewOrder fields map directly onto
// common.IncomingOrder.
const (
	BaseMessageHeaderLen = 2
	tickerLen            = 16
	newOrderBodyLen      = tickerLen + 1 + 1 + 8 + 8 + 8 // ticker,kind,side,price,size,userID
)

// NewOrderMessage is a NewOrder request parsed off the wire.
type NewOrderMessage struct {
	Ticker string
	Order  common.IncomingOrder
}

// ParseMessage reads and validates the 2-byte type header and returns the
// type with the remaining body; the caller picks the body parser.
func ParseMessage(msg []byte) (MessageType, []byte, error) {
	if len(msg) < BaseMessageHeaderLen {
		return 0, nil, ErrMessageTooShort
	}
	typeOf := MessageType(binary.BigEndian.Uint16(msg[0:2]))
	switch typeOf {
	case NewOrder, LogBook:
		return typeOf, msg[2:], nil
	default:
		return 0, nil, ErrInvalidMessageType
	}
}

func ParseNewOrder(body []byte) (NewOrderMessage, error) {
	if len(body) < newOrderBodyLen {
		return NewOrderMessage{}, ErrMessageTooShort
	}
	ticker := trimTicker(body[0:tickerLen])
	kind := common.OrderKind(body[tickerLen])
	side := common.OrderSide(body[tickerLen+1])
	price := binary.BigEndian.Uint64(body[tickerLen+2 : tickerLen+10])
	size := binary.BigEndian.Uint64(body[tickerLen+10 : tickerLen+18])
	userID := binary.BigEndian.Uint64(body[tickerLen+18 : tickerLen+26])

	return NewOrderMessage{
		Ticker: ticker,
		Order: common.IncomingOrder{
			PriceLimit: price,
			Size:       size,
			UserID:     userID,
			Kind:       kind,
			Side:       side,
		},
	}, nil
}

// EncodeNewOrder is the client-side counterpart to ParseMessage +
// ParseNewOrder, used by matchbookctl.
func EncodeNewOrder(ticker string, order common.IncomingOrder) []byte {
	buf := make([]byte, BaseMessageHeaderLen+newOrderBodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(NewOrder))

	body := buf[BaseMessageHeaderLen:]
	copy(body[0:tickerLen], ticker)
	body[tickerLen] = byte(order.Kind)
	body[tickerLen+1] = byte(order.Side)
	binary.BigEndian.PutUint64(body[tickerLen+2:tickerLen+10], order.PriceLimit)
	binary.BigEndian.PutUint64(body[tickerLen+10:tickerLen+18], order.Size)
	binary.BigEndian.PutUint64(body[tickerLen+18:tickerLen+26], order.UserID)
	return buf
}

// EncodeLogBook is the client-side counterpart for requesting a full
// venue dump.
func EncodeLogBook() []byte {
	buf := make([]byte, BaseMessageHeaderLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(LogBook))
	return buf
}

func trimTicker(field []byte) string {
	end := len(field)
	for end > 0 && field[end-1] == 0 {
		end--
	}
	return string(field[:end])
}
