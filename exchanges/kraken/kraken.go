package kraken

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
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
	krakenAPIURL      = "https://api.kraken.com"
	krakenAPIVersion  = "0"
	krakenServerTime  = "Time"
	krakenTicker      = "Ticker"
	krakenDepth       = "Depth"
	krakenBalance     = "Balance"
	krakenOrderCancel = "CancelOrder"
	krakenOrderPlace  = "AddOrder"

	krakenRateInterval = time.Second
	krakenRequestRate  = 1
	krakenMinInterval  = time.Second
)

// Name is the exchange name used in errors and logs
const Name = "Kraken"

// Kraken is the overarching type across the kraken package. It is not safe
// for concurrent use.
type Kraken struct {
	exchange.Base
}

// New returns a Kraken client. Credentials may be empty when only public
// endpoints are used.
func New(creds account.Credentials, opts ...exchange.Option) *Kraken {
	k := new(Kraken)
	k.Setup(Name, krakenAPIURL, creds, []request.RequesterOption{
		request.WithMinimumInterval(krakenMinInterval),
		request.WithLimiter(request.NewRateLimit(krakenRateInterval, krakenRequestRate)),
	}, opts...)
	return k
}

// GetServerTime returns current server time
func (k *Kraken) GetServerTime(ctx context.Context) (*TimeResponse, error) {
	result, err := k.SendHTTPRequest(ctx, krakenServerTime, nil)
	if err != nil {
		return nil, err
	}
	return parseServerTime(result)
}

// GetTicker returns ticker information for a pair
func (k *Kraken) GetTicker(ctx context.Context, p currency.Pair) (*Ticker, error) {
	token, ok := GetPairString(p)
	if !ok {
		return nil, k.UnsupportedPairError(p)
	}
	result, err := k.SendHTTPRequest(ctx, krakenTicker, url.Values{"pair": {token}})
	if err != nil {
		return nil, err
	}
	return parseTicker(result, token)
}

// GetDepth returns the orderbook for a pair. A count of zero leaves the depth
// to the exchange default.
func (k *Kraken) GetDepth(ctx context.Context, p currency.Pair, count int) (*Orderbook, error) {
	token, ok := GetPairString(p)
	if !ok {
		return nil, k.UnsupportedPairError(p)
	}
	values := url.Values{"pair": {token}}
	if count > 0 {
		values.Set("count", strconv.Itoa(count))
	}
	result, err := k.SendHTTPRequest(ctx, krakenDepth, values)
	if err != nil {
		return nil, err
	}
	return parseDepth(result, token)
}

// GetBalance returns your balance associated with your keys
func (k *Kraken) GetBalance(ctx context.Context) (map[string]float64, error) {
	result, err := k.SendAuthenticatedHTTPRequest(ctx, krakenBalance, url.Values{})
	if err != nil {
		return nil, err
	}
	return parseBalance(result)
}

// AddStandardOrder adds a new order. price is sent when valid and is
// required by Kraken for limit orders.
func (k *Kraken) AddStandardOrder(ctx context.Context, p currency.Pair, side order.Side, kind order.Kind, volume float64, price null.Float64, args *AddOrderOptions) (*AddOrderResponse, error) {
	token, ok := GetPairString(p)
	if !ok {
		return nil, k.UnsupportedPairError(p)
	}
	vol, err := formatNumber(volume)
	if err != nil {
		return nil, fmt.Errorf("%s volume %w", Name, err)
	}
	params := url.Values{
		"pair":      {token},
		"type":      {side.Lower()},
		"ordertype": {kind.Lower()},
		"volume":    {vol},
	}
	if err := setNumber(params, "price", price); err != nil {
		return nil, err
	}
	if args != nil {
		if err := args.apply(params); err != nil {
			return nil, err
		}
	}

	result, err := k.SendAuthenticatedHTTPRequest(ctx, krakenOrderPlace, params)
	if err != nil {
		return nil, err
	}
	return parseAddOrder(result)
}

// apply sets the optional order parameters
func (a *AddOrderOptions) apply(params url.Values) error {
	for _, n := range []struct {
		key string
		val null.Float64
	}{
		{"price2", a.Price2},
		{"close[price]", a.ClosePrice},
		{"close[price2]", a.ClosePrice2},
	} {
		if err := setNumber(params, n.key, n.val); err != nil {
			return err
		}
	}
	if a.Leverage != "" {
		params.Set("leverage", a.Leverage)
	}
	if a.Oflags != "" {
		params.Set("oflags", a.Oflags)
	}
	if a.StartTm != "" {
		params.Set("starttm", a.StartTm)
	}
	if a.ExpireTm != "" {
		params.Set("expiretm", a.ExpireTm)
	}
	if a.UserRef != 0 {
		params.Set("userref", strconv.FormatInt(int64(a.UserRef), 10))
	}
	if !a.ClientOrderID.IsNil() {
		params.Set("cl_ord_id", a.ClientOrderID.String())
	}
	if a.CloseOrderType != "" {
		params.Set("close[ordertype]", a.CloseOrderType)
	}
	if a.Validate {
		params.Set("validate", "true")
	}
	return nil
}

// CancelOrder cancels order by orderID
func (k *Kraken) CancelOrder(ctx context.Context, txid string) (*CancelOrderResponse, error) {
	if txid == "" {
		return nil, fmt.Errorf("%s %w: txid", Name, errOrderIDEmpty)
	}
	result, err := k.SendAuthenticatedHTTPRequest(ctx, krakenOrderCancel, url.Values{"txid": {txid}})
	if err != nil {
		return nil, err
	}
	return parseCancelOrder(result)
}

// SendHTTPRequest sends an unauthenticated HTTP request and returns the
// result member of the response envelope
func (k *Kraken) SendHTTPRequest(ctx context.Context, method string, values url.Values) ([]byte, error) {
	path := k.APIURL + "/" + krakenAPIVersion + "/public/" + method
	if len(values) > 0 {
		path += "?" + values.Encode()
	}
	item := &request.Item{
		Method:  http.MethodGet,
		Path:    path,
		Verbose: k.Verbose,
	}
	resp, err := k.SendPayload(ctx, func() (*request.Item, error) {
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	return getResult(resp.StatusCode, resp.Body)
}

// SendAuthenticatedHTTPRequest sends an authenticated HTTP request and
// returns the result member of the response envelope
func (k *Kraken) SendAuthenticatedHTTPRequest(ctx context.Context, method string, params url.Values) ([]byte, error) {
	if err := k.AllowAuthenticatedRequest(false); err != nil {
		return nil, err
	}
	if _, err := crypto.Base64Decode(k.Credentials.Secret); err != nil {
		return nil, fmt.Errorf("%s %w: secret is not base64: %v", Name, errInvalidSecret, err)
	}
	if params == nil {
		params = url.Values{}
	}
	path := "/" + krakenAPIVersion + "/private/" + method

	resp, err := k.SendPayload(ctx, func() (*request.Item, error) {
		n := k.Nonce.GetInc()
		params.Set("nonce", n.String())
		signature, err := Sign(path, n, params, k.Credentials)
		if err != nil {
			return nil, err
		}
		return &request.Item{
			Method: http.MethodPost,
			Path:   k.APIURL + path,
			Headers: map[string]string{
				"API-Key":      k.Credentials.Key,
				"API-Sign":     signature,
				"Content-Type": "application/x-www-form-urlencoded",
			},
			Body:    strings.NewReader(params.Encode()),
			Verbose: k.Verbose,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return getResult(resp.StatusCode, resp.Body)
}

// Sign returns the API-Sign header value: base64 HMAC-SHA512 of path and
// SHA256(nonce + encoded body), keyed with the decoded secret. body must
// already hold the nonce.
func Sign(path string, n nonce.Value, body url.Values, creds account.Credentials) (string, error) {
	secret, err := crypto.Base64Decode(creds.Secret)
	if err != nil {
		return "", fmt.Errorf("%s %w: %v", Name, errInvalidSecret, err)
	}
	shasum := crypto.GetSHA256([]byte(n.String() + body.Encode()))
	hmac, err := crypto.GetHMAC(crypto.HashSHA512, append([]byte(path), shasum...), secret)
	if err != nil {
		return "", err
	}
	return crypto.Base64Encode(hmac), nil
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
