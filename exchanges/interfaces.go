package exchange

import (
	"context"

	"github.com/thrasher-corp/gctconnect/currency"
	"github.com/thrasher-corp/gctconnect/exchanges/order"
	"github.com/thrasher-corp/gctconnect/exchanges/orderbook"
	"github.com/thrasher-corp/gctconnect/exchanges/ticker"
	"github.com/volatiletech/null"
)

// IBotExchange is the exchange agnostic contract implemented once per
// exchange. Implementations are not safe for concurrent use: each call
// mutates the client's throttle state.
type IBotExchange interface {
	GetName() string
	// SupportsPair reports whether the exchange has a token for p
	SupportsPair(p currency.Pair) bool
	// Ticker returns the latest ticker for p
	Ticker(ctx context.Context, p currency.Pair) (*ticker.Price, error)
	// Orderbook returns the current book for p with the exchange's ordering
	Orderbook(ctx context.Context, p currency.Pair) (*orderbook.Book, error)
	// AddOrder places an order. price is required for limit order types and
	// ignored for market order types.
	AddOrder(ctx context.Context, t order.Type, p currency.Pair, quantity float64, price null.Float64) (*order.Info, error)
}
