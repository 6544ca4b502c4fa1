package bitstamp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gctconnect/common"
	"github.com/thrasher-corp/gctconnect/common/crypto"
	"github.com/thrasher-corp/gctconnect/currency"
	exchange "github.com/thrasher-corp/gctconnect/exchanges"
	"github.com/thrasher-corp/gctconnect/exchanges/account"
	"github.com/thrasher-corp/gctconnect/exchanges/nonce"
	"github.com/thrasher-corp/gctconnect/exchanges/order"
	"github.com/thrasher-corp/gctconnect/exchanges/request"
	"github.com/volatiletech/null"
)

const (
	bitstampAPIURL          = "https://www.bitstamp.net/api"
	bitstampAPIVersion      = "2"
	bitstampAPITicker       = "ticker"
	bitstampAPIOrderbook    = "order_book"
	bitstampAPITransactions = "transactions"
	bitstampAPIBalance      = "balance"
	bitstampAPIBuy          = "buy"
	bitstampAPISell         = "sell"
	bitstampAPIMarket       = "market"

	bitstampRateInterval = time.Minute * 10
	bitstampRequestRate  = 8000
	bitstampMinInterval  = time.Second
)

// Name is the exchange name used in errors and logs
const Name = "Bitstamp"

// Bitstamp is the overarching type across the bitstamp package. It is not
// safe for concurrent use.
type Bitstamp struct {
	exchange.Base
}

// New returns a Bitstamp client. Credentials may be empty when only public
// endpoints are used.
func New(creds account.Credentials, opts ...exchange.Option) *Bitstamp {
	b := new(Bitstamp)
	b.Setup(Name, bitstampAPIURL, creds, []request.RequesterOption{
		request.WithMinimumInterval(bitstampMinInterval),
		request.WithLimiter(request.NewRateLimit(bitstampRateInterval, bitstampRequestRate)),
	}, opts...)
	return b
}

// GetTicker returns ticker information
func (b *Bitstamp) GetTicker(ctx context.Context, p currency.Pair) (*Ticker, error) {
	token, ok := GetPairString(p)
	if !ok {
		return nil, b.UnsupportedPairError(p)
	}
	resp, err := b.SendHTTPRequest(ctx, b.path(bitstampAPITicker, token))
	if err != nil {
		return nil, err
	}
	return parseTicker(resp)
}

// GetOrderbook returns a JSON dictionary with "bids" and "asks". Each is a
// list of open orders and each order is represented as a list holding the
// price and the amount.
func (b *Bitstamp) GetOrderbook(ctx context.Context, p currency.Pair) (*Orderbook, error) {
	token, ok := GetPairString(p)
	if !ok {
		return nil, b.UnsupportedPairError(p)
	}
	resp, err := b.SendHTTPRequest(ctx, b.path(bitstampAPIOrderbook, token))
	if err != nil {
		return nil, err
	}
	return parseOrderbook(resp)
}

// GetTransactions returns the latest public trades for a pair
func (b *Bitstamp) GetTransactions(ctx context.Context, p currency.Pair) ([]Transaction, error) {
	token, ok := GetPairString(p)
	if !ok {
		return nil, b.UnsupportedPairError(p)
	}
	resp, err := b.SendHTTPRequest(ctx, b.path(bitstampAPITransactions, token))
	if err != nil {
		return nil, err
	}
	return parseTransactions(resp)
}

// GetBalance returns the account balances and fee for a pair
func (b *Bitstamp) GetBalance(ctx context.Context, p currency.Pair) (Balances, error) {
	token, ok := GetPairString(p)
	if !ok {
		return nil, b.UnsupportedPairError(p)
	}
	resp, err := b.SendAuthenticatedHTTPRequest(ctx, b.path(bitstampAPIBalance, token), nil)
	if err != nil {
		return nil, err
	}
	return parseBalances(resp)
}

// BuyLimit places a buy limit order. When limitPrice is set and the order is
// executed a sell order is placed at limitPrice. dailyOrder cancels the order
// at 0:00 UTC if it has not been executed.
func (b *Bitstamp) BuyLimit(ctx context.Context, p currency.Pair, amount, price float64, limitPrice null.Float64, dailyOrder null.Bool) (*Order, error) {
	return b.placeLimitOrder(ctx, order.Buy, p, amount, price, limitPrice, dailyOrder)
}

// SellLimit places a sell limit order. When limitPrice is set and the order
// is executed a buy order is placed at limitPrice. dailyOrder cancels the
// order at 0:00 UTC if it has not been executed.
func (b *Bitstamp) SellLimit(ctx context.Context, p currency.Pair, amount, price float64, limitPrice null.Float64, dailyOrder null.Bool) (*Order, error) {
	return b.placeLimitOrder(ctx, order.Sell, p, amount, price, limitPrice, dailyOrder)
}

// BuyMarket places a buy market order
func (b *Bitstamp) BuyMarket(ctx context.Context, p currency.Pair, amount float64) (*Order, error) {
	return b.placeMarketOrder(ctx, order.Buy, p, amount)
}

// SellMarket places a sell market order
func (b *Bitstamp) SellMarket(ctx context.Context, p currency.Pair, amount float64) (*Order, error) {
	return b.placeMarketOrder(ctx, order.Sell, p, amount)
}

func (b *Bitstamp) placeLimitOrder(ctx context.Context, side order.Side, p currency.Pair, amount, price float64, limitPrice null.Float64, dailyOrder null.Bool) (*Order, error) {
	token, ok := GetPairString(p)
	if !ok {
		return nil, b.UnsupportedPairError(p)
	}
	req := url.Values{}
	for _, n := range []struct {
		key string
		val null.Float64
	}{
		{"amount", null.Float64From(amount)},
		{"price", null.Float64From(price)},
		{"limit_price", limitPrice},
	} {
		if err := setNumber(req, n.key, n.val); err != nil {
			return nil, err
		}
	}
	// Bitstamp only understands "True"; false is sent by omitting the field
	if dailyOrder.Valid && dailyOrder.Bool {
		req.Set("daily_order", "True")
	}
	resp, err := b.SendAuthenticatedHTTPRequest(ctx, b.path(side.Lower(), token), req)
	if err != nil {
		return nil, err
	}
	return parseOrder(resp)
}

func (b *Bitstamp) placeMarketOrder(ctx context.Context, side order.Side, p currency.Pair, amount float64) (*Order, error) {
	token, ok := GetPairString(p)
	if !ok {
		return nil, b.UnsupportedPairError(p)
	}
	req := url.Values{}
	if err := setNumber(req, "amount", null.Float64From(amount)); err != nil {
		return nil, err
	}
	resp, err := b.SendAuthenticatedHTTPRequest(ctx, b.path(side.Lower()+"/"+bitstampAPIMarket, token), req)
	if err != nil {
		return nil, err
	}
	return parseOrder(resp)
}

// path returns the versioned path for a method and pair token
func (b *Bitstamp) path(method, token string) string {
	return "/v" + bitstampAPIVersion + "/" + method + "/" + token + "/"
}

// SendHTTPRequest sends an unauthenticated HTTP request and returns the body
// once the error envelope has been checked
func (b *Bitstamp) SendHTTPRequest(ctx context.Context, path string) ([]byte, error) {
	item := &request.Item{
		Method:  http.MethodGet,
		Path:    b.APIURL + path,
		Verbose: b.Verbose,
	}
	resp, err := b.SendPayload(ctx, func() (*request.Item, error) {
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp.StatusCode, resp.Body); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// SendAuthenticatedHTTPRequest sends an authenticated request. Empty values
// are stripped before signing.
func (b *Bitstamp) SendAuthenticatedHTTPRequest(ctx context.Context, path string, values url.Values) ([]byte, error) {
	if err := b.AllowAuthenticatedRequest(true); err != nil {
		return nil, err
	}
	if values == nil {
		values = url.Values{}
	}
	for k, v := range values {
		if len(v) == 0 || v[0] == "" {
			values.Del(k)
		}
	}

	resp, err := b.SendPayload(ctx, func() (*request.Item, error) {
		n := b.Nonce.GetInc()
		sig, err := Sign(n, b.Credentials)
		if err != nil {
			return nil, err
		}
		values.Set("key", b.Credentials.Key)
		values.Set("nonce", n.String())
		values.Set("signature", sig)

		return &request.Item{
			Method: http.MethodPost,
			Path:   b.APIURL + path,
			Headers: map[string]string{
				"Content-Type": "application/x-www-form-urlencoded",
			},
			Body:    strings.NewReader(values.Encode()),
			Verbose: b.Verbose,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp.StatusCode, resp.Body); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Sign returns the upper case hex HMAC-SHA256 of nonce, customer id and API
// key, keyed with the API secret
func Sign(n nonce.Value, creds account.Credentials) (string, error) {
	hmac, err := crypto.GetHMAC(crypto.HashSHA256,
		[]byte(n.String()+creds.ClientID+creds.Key),
		[]byte(creds.Secret))
	if err != nil {
		return "", fmt.Errorf("%s signing: %w", Name, err)
	}
	return crypto.HexEncodeToUpperString(hmac), nil
}

// formatNumber renders f without exponent notation
func formatNumber(f float64) (string, error) {
	if !common.IsFinite(f) {
		return "", fmt.Errorf("%w: %v", common.ErrNumberNotFinite, f)
	}
	return decimal.NewFromFloat(f).String(), nil
}

// setNumber sets key when v is valid
func setNumber(params url.Values, key string, v null.Float64) error {
	if !v.Valid {
		return nil
	}
	s, err := formatNumber(v.Float64)
	if err != nil {
		return fmt.Errorf("%s %s %w", Name, key, err)
	}
	params.Set(key, s)
	return nil
}
