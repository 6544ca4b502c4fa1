package bitstamp

import (
	"context"
	"fmt"
	"time"

	"github.com/thrasher-corp/gctconnect/currency"
	"github.com/thrasher-corp/gctconnect/exchanges/order"
	"github.com/thrasher-corp/gctconnect/exchanges/orderbook"
	"github.com/thrasher-corp/gctconnect/exchanges/ticker"
	"github.com/volatiletech/null"
)

// SupportsPair returns true if Bitstamp has a token for p
func (b *Bitstamp) SupportsPair(p currency.Pair) bool {
	_, ok := GetPairString(p)
	return ok
}

// Ticker returns the latest ticker for p
func (b *Bitstamp) Ticker(ctx context.Context, p currency.Pair) (*ticker.Price, error) {
	tick, err := b.GetTicker(ctx, p)
	if err != nil {
		return nil, err
	}
	return &ticker.Price{
		Timestamp:    time.Now(),
		Pair:         p,
		ExchangeName: b.Name,
		Last:         tick.Last,
		Ask:          tick.Ask,
		Bid:          tick.Bid,
		Volume:       tick.Volume,
	}, nil
}

// Orderbook returns the current orderbook for p
func (b *Bitstamp) Orderbook(ctx context.Context, p currency.Pair) (*orderbook.Book, error) {
	ob, err := b.GetOrderbook(ctx, p)
	if err != nil {
		return nil, err
	}
	return &orderbook.Book{
		Timestamp:    time.Now(),
		Pair:         p,
		ExchangeName: b.Name,
		Asks:         ob.Asks,
		Bids:         ob.Bids,
	}, nil
}

// AddOrder places an order. price is required for limit orders and ignored
// for market orders.
func (b *Bitstamp) AddOrder(ctx context.Context, t order.Type, p currency.Pair, quantity float64, price null.Float64) (*order.Info, error) {
	if !b.SupportsPair(p) {
		return nil, b.UnsupportedPairError(p)
	}
	if err := order.Validate(t, quantity, price); err != nil {
		return nil, fmt.Errorf("%s %w", b.Name, err)
	}

	var (
		resp *Order
		err  error
	)
	switch t {
	case order.BuyLimit:
		resp, err = b.BuyLimit(ctx, p, quantity, price.Float64, null.Float64{}, null.Bool{})
	case order.SellLimit:
		resp, err = b.SellLimit(ctx, p, quantity, price.Float64, null.Float64{}, null.Bool{})
	case order.BuyMarket:
		resp, err = b.BuyMarket(ctx, p, quantity)
	case order.SellMarket:
		resp, err = b.SellMarket(ctx, p, quantity)
	}
	if err != nil {
		return nil, err
	}
	return &order.Info{
		Timestamp:    time.Now(),
		ExchangeName: b.Name,
		IDs:          []string{resp.ID},
	}, nil
}
