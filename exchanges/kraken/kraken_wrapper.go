package kraken

import (
	"context"
	"fmt"
	"time"

	"github.com/thrasher-corp/gctconnect/common"
	"github.com/thrasher-corp/gctconnect/currency"
	"github.com/thrasher-corp/gctconnect/exchanges/order"
	"github.com/thrasher-corp/gctconnect/exchanges/orderbook"
	"github.com/thrasher-corp/gctconnect/exchanges/ticker"
	"github.com/volatiletech/null"
)

// orderbookDepth is the maximum depth Kraken serves
const orderbookDepth = 1000

// SupportsPair returns true if Kraken has a token for p
func (k *Kraken) SupportsPair(p currency.Pair) bool {
	_, ok := GetPairString(p)
	return ok
}

// Ticker returns the latest ticker for p
func (k *Kraken) Ticker(ctx context.Context, p currency.Pair) (*ticker.Price, error) {
	tick, err := k.GetTicker(ctx, p)
	if err != nil {
		return nil, err
	}
	return &ticker.Price{
		Timestamp:    time.Now(),
		Pair:         p,
		ExchangeName: k.Name,
		Last:         tick.Last,
		Ask:          tick.Ask,
		Bid:          tick.Bid,
		Volume:       tick.Volume,
	}, nil
}

// Orderbook returns the current orderbook for p
func (k *Kraken) Orderbook(ctx context.Context, p currency.Pair) (*orderbook.Book, error) {
	ob, err := k.GetDepth(ctx, p, orderbookDepth)
	if err != nil {
		return nil, err
	}
	return &orderbook.Book{
		Timestamp:    time.Now(),
		Pair:         p,
		ExchangeName: k.Name,
		Asks:         ob.Asks,
		Bids:         ob.Bids,
	}, nil
}

// AddOrder places an order. price is required for limit orders and ignored
// for market orders.
func (k *Kraken) AddOrder(ctx context.Context, t order.Type, p currency.Pair, quantity float64, price null.Float64) (*order.Info, error) {
	if !k.SupportsPair(p) {
		return nil, k.UnsupportedPairError(p)
	}
	if err := order.Validate(t, quantity, price); err != nil {
		return nil, fmt.Errorf("%s %w", k.Name, err)
	}
	if t.Kind() == order.Market {
		price = null.Float64{}
	}
	resp, err := k.AddStandardOrder(ctx, p, t.Side(), t.Kind(), quantity, price, nil)
	if err != nil {
		return nil, err
	}
	if len(resp.TransactionID) == 0 {
		return nil, fmt.Errorf("%w: %s order response has no txid", common.ErrInvalidData, k.Name)
	}
	return &order.Info{
		Timestamp:    time.Now(),
		ExchangeName: k.Name,
		IDs:          resp.TransactionID,
	}, nil
}
