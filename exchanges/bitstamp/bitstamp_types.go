package bitstamp

import (
	"time"

	"github.com/thrasher-corp/gctconnect/exchanges/order"
	"github.com/thrasher-corp/gctconnect/exchanges/orderbook"
	"github.com/volatiletech/null"
)

// Ticker holds ticker information
type Ticker struct {
	Last      float64
	Ask       float64
	Bid       float64
	High      null.Float64
	Low       null.Float64
	Vwap      null.Float64
	Open      null.Float64
	Volume    null.Float64
	Timestamp time.Time
}

// Orderbook holds orderbook information
type Orderbook struct {
	Timestamp time.Time
	Bids      orderbook.Levels
	Asks      orderbook.Levels
}

// Transaction holds a public trade
type Transaction struct {
	Date    time.Time
	TradeID string
	Price   float64
	Amount  float64
	Side    order.Side
}

// Balances holds every numeric field of a balance response keyed by field
// name, for example "btc_available" or "fee"
type Balances map[string]float64

// Order is an order confirmation
type Order struct {
	ID       string
	DateTime string
	Side     order.Side
	Price    null.Float64
	Amount   null.Float64
}
