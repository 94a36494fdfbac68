package entity

import "time"

// Bar represents one interval bar returned by the history lookup.
// The feed reports prices in high/low/open/close order.
type Bar struct {
	Symbol       string    // Ticker symbol
	Interval     string    // Bar interval in seconds
	Time         time.Time // Timestamp of the bar
	High         float64   // Highest price during the interval
	Low          float64   // Lowest price during the interval
	Open         float64   // Opening price
	Close        float64   // Closing price
	TotalVolume  int64     // Cumulative volume for the day
	PeriodVolume int64     // Volume within this interval
	Trades       int64     // Number of trades (0 when the feed omits it)
}
