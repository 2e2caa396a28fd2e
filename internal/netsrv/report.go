package netsrv

import (
	"encoding/binary"
	"io"
)

type ReportType uint8

const (
	ExecutionReport ReportType = iota
	BookReport
	ErrorReport
)

// reportFixedHeaderLen covers Type, the ticker length, and the text
// length; Ticker and Text themselves are variable and follow.
const reportFixedHeaderLen = 1 + 1 + 4

// Report is one line of output bound for a connected client: an
// execution/enqueue/cancel log item, one line of a book dump, or an
// error string. Execution and book reports are tagged with the ticker
// they pertain to; error reports carry an empty ticker.
type Report struct {
	Type   ReportType
	Ticker string
	Text   string
}

// Serialize renders r onto the wire as Type(1) TickerLen(1) TextLen(4)
// Ticker(n) Text(m).
func (r Report) Serialize() []byte {
	buf := make([]byte, reportFixedHeaderLen+len(r.Ticker)+len(r.Text))
	buf[0] = byte(r.Type)
	buf[1] = byte(len(r.Ticker))
	binary.BigEndian.PutUint32(buf[2:6], uint32(len(r.Text)))
	copy(buf[reportFixedHeaderLen:], r.Ticker)
	copy(buf[reportFixedHeaderLen+len(r.Ticker):], r.Text)
	return buf
}

// ReadReport reads exactly one Report frame from r, blocking until the
// fixed header and its variable tail have both arrived.
func ReadReport(r io.Reader) (Report, error) {
	header := make([]byte, reportFixedHeaderLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return Report{}, err
	}
	tickerLen := int(header[1])
	textLen := int(binary.BigEndian.Uint32(header[2:6]))

	tail := make([]byte, tickerLen+textLen)
	if _, err := io.ReadFull(r, tail); err != nil {
		return Report{}, err
	}

	return Report{
		Type:   ReportType(header[0]),
		Ticker: string(tail[:tickerLen]),
		Text:   string(tail[tickerLen:]),
	}, nil
}
