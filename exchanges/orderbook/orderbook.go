package orderbook

import (
	"time"

	"github.com/thrasher-corp/gctconnect/currency"
)

// Level is a single price level
type Level struct {
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

// Levels keeps the order the exchange sent, best price first by convention
type Levels []Level

// Book is the canonical orderbook
type Book struct {
	Timestamp    time.Time     `json:"timestamp"`
	Pair         currency.Pair `json:"pair"`
	ExchangeName string        `json:"exchange"`
	Asks         Levels        `json:"asks"`
	Bids         Levels        `json:"bids"`
}

// TotalAmount sums the amount of every level
func (l Levels) TotalAmount() float64 {
	var total float64
	for i := range l {
		total += l[i].Amount
	}
	return total
}
