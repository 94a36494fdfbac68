// Package entity defines the domain models for the history feature.
package entity

import (
	"fmt"
	"time"
)

// TimestampLayout is the vendor date/time format used in history requests ("YYYYMMDD HHMMSS").
const TimestampLayout = "20060102 150405"

// HistoryRequest describes one HIT (history interval) lookup for a single symbol.
type HistoryRequest struct {
	Symbol   string // Ticker symbol (e.g., "IVV", "QQQ")
	Interval string // Bar interval in seconds (e.g., "60")
	Start    string // Begin date/time in TimestampLayout
	End      string // End date/time in TimestampLayout
}

// NewHistoryRequest builds a HistoryRequest from time values.
func NewHistoryRequest(symbol, interval string, start, end time.Time) HistoryRequest {
	return HistoryRequest{
		Symbol:   symbol,
		Interval: interval,
		Start:    start.Format(TimestampLayout),
		End:      end.Format(TimestampLayout),
	}
}

// Command renders the request as the comma-delimited lookup command.
// Max datapoints is 0 (all) and the six trailing optional fields are left blank.
func (r HistoryRequest) Command() string {
	return fmt.Sprintf("HIT,%s,%s,%s,%s,0,,,,,,", r.Symbol, r.Interval, r.Start, r.End)
}
