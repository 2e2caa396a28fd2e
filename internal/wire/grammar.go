// Package wire implements the order-text and log-text grammars from
// spec.md §6: the CLI's input/output format, out of scope for the
// matching core itself but needed to drive the scenarios the core is
// tested against.
//
//	<KIND> <SIDE> $<price_limit> #<size> u<user_id>
//	KIND ::= "Lim" | "FoK" | "IoC"
//	SIDE ::= "B" | "S"
package wire

import (
	"errors"
	"strconv"
	"strings"

	"matchbook/internal/common"
	"matchbook/internal/logger"
)

var (
	ErrWrongFieldCount = errors.New("wire: order line must have exactly five fields")
	ErrUnknownKind     = errors.New("wire: unrecognized order kind")
	ErrUnknownSide     = errors.New("wire: unrecognized order side")
	ErrBadPrefix       = errors.New("wire: field missing its required prefix")
	ErrBadInteger      = errors.New("wire: field body is not an unsigned decimal integer")
)

// ParseOrder parses one order-text line: exactly five whitespace-separated
// fields, kind, side, then the $price/#size/uuser fields in that order.
// Any deviation — wrong field count, missing prefix, non-integer body, or
// a negative sign — is rejected without reaching the matcher.
func ParseOrder(line string) (common.IncomingOrder, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return common.IncomingOrder{}, ErrWrongFieldCount
	}

	kind, err := parseKind(fields[0])
	if err != nil {
		return common.IncomingOrder{}, err
	}
	side, err := parseSide(fields[1])
	if err != nil {
		return common.IncomingOrder{}, err
	}
	price, err := parsePrefixedUint(fields[2], "$")
	if err != nil {
		return common.IncomingOrder{}, err
	}
	size, err := parsePrefixedUint(fields[3], "#")
	if err != nil {
		return common.IncomingOrder{}, err
	}
	userID, err := parsePrefixedUint(fields[4], "u")
	if err != nil {
		return common.IncomingOrder{}, err
	}

	return common.IncomingOrder{
		PriceLimit: price,
		Size:       size,
		UserID:     userID,
		Kind:       kind,
		Side:       side,
	}, nil
}

func parseKind(field string) (common.OrderKind, error) {
	switch field {
	case "Lim":
		return common.Limit, nil
	case "FoK":
		return common.FillOrKill, nil
	case "IoC":
		return common.ImmediateOrCancel, nil
	default:
		return 0, ErrUnknownKind
	}
}

func parseSide(field string) (common.OrderSide, error) {
	switch field {
	case "B":
		return common.Buy, nil
	case "S":
		return common.Sell, nil
	default:
		return 0, ErrUnknownSide
	}
}

// parsePrefixedUint requires field to start with prefix followed by at
// least one digit, with no sign of any kind (strconv.ParseUint already
// rejects a leading '-', but it would also accept a leading '+'; reject
// that too since the grammar names only unsigned decimal integers).
func parsePrefixedUint(field, prefix string) (uint64, error) {
	if !strings.HasPrefix(field, prefix) || len(field) <= len(prefix) {
		return 0, ErrBadPrefix
	}
	body := field[len(prefix):]
	if strings.HasPrefix(body, "+") {
		return 0, ErrBadInteger
	}
	value, err := strconv.ParseUint(body, 10, 64)
	if err != nil {
		return 0, ErrBadInteger
	}
	return value, nil
}

// FormatOrder renders an IncomingOrder back into the order-text grammar.
func FormatOrder(order common.IncomingOrder) string {
	return order.String()
}

// FormatLogItem renders a LogItem into the log-text grammar:
//
//	Enqueued:  Q #<size>
//	Fulfilled: F #<size> $<price> u<user_id>
//	Cancelled: C #<size>
func FormatLogItem(item logger.LogItem) string {
	return item.String()
}
