package kraken

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/gctconnect/common"
	"github.com/thrasher-corp/gctconnect/currency"
	exchange "github.com/thrasher-corp/gctconnect/exchanges"
	"github.com/thrasher-corp/gctconnect/exchanges/account"
	"github.com/thrasher-corp/gctconnect/exchanges/mock"
	"github.com/thrasher-corp/gctconnect/exchanges/nonce"
	"github.com/thrasher-corp/gctconnect/exchanges/order"
	"github.com/thrasher-corp/gctconnect/exchanges/request"
	"github.com/thrasher-corp/gctconnect/log"
	"github.com/volatiletech/null"
)

var _ exchange.IBotExchange = (*Kraken)(nil)

var testCreds = account.Credentials{
	Key:    "123456789ABCDEF",
	Secret: "kQH5HW/8p1uGOVjbgWA7FunAmGO8lsSUXNsu3eow76sz84Q18fWxnyRzBHCd3pd5nE9qa99HAZtuZuj6F1huXg==",
}

const (
	tickerJSON   = `{"error":[],"result":{"XXBTZUSD":{"c":["100.5","0"],"a":["101.0","0"],"b":["100.0","0"],"v":["0","50.0"]}}}`
	depthJSON    = `{"error":[],"result":{"XXBTZUSD":{"asks":[[101,1],[102,2],[103,3]],"bids":[[99,1],[98,2]]}}}`
	addOrderJSON = `{"error":[],"result":{"descr":{"order":"buy 1.25 XBTUSD @ limit 37500.0"},"txid":["ABC123","DEF456"]}}`
)

func newTestKraken(t *testing.T, creds account.Credentials, routes map[string]mock.Response) (*Kraken, *mock.Server) {
	t.Helper()
	s := mock.NewServer(t, routes)
	k := New(creds,
		exchange.WithAPIURL(s.URL),
		exchange.WithHTTPClient(s.Client()),
		exchange.WithRequesterOptions(
			request.WithMinimumInterval(0),
			request.WithLimiter(request.NewRateLimit(0, 0)),
		))
	return k, s
}

func TestSign(t *testing.T) {
	t.Parallel()
	body := url.Values{
		"nonce":     {"1616492376594"},
		"ordertype": {"limit"},
		"pair":      {"XBTUSD"},
		"price":     {"37500"},
		"type":      {"buy"},
		"volume":    {"1.25"},
	}
	require.Equal(t, "nonce=1616492376594&ordertype=limit&pair=XBTUSD&price=37500&type=buy&volume=1.25", body.Encode())
	sig, err := Sign("/0/private/AddOrder", nonce.Value(1616492376594), body, testCreds)
	require.NoError(t, err)
	assert.Equal(t, "4/dpxb3iT4tp/ZCVEwSnEsLxx0bqyhLpdfOpc6fn7OR8+UClSV5n9E6aSS8MPtnRfp32bAb0nmbRn6H8ndwLUQ==", sig)

	again, err := Sign("/0/private/AddOrder", nonce.Value(1616492376594), body, testCreds)
	require.NoError(t, err)
	assert.Equal(t, sig, again, "signing should be deterministic")

	_, err = Sign("/0/private/AddOrder", 1, body, account.Credentials{Key: "k", Secret: "%%%"})
	assert.ErrorIs(t, err, errInvalidSecret)
}

func TestPairRegistry(t *testing.T) {
	t.Parallel()
	supported := make(map[currency.Pair]bool)
	for _, p := range SupportedPairs() {
		supported[p] = true
	}
	assert.Len(t, supported, len(pairTokens))
	tokens := make(map[string]bool)
	for _, p := range currency.AllPairs() {
		token, ok := GetPairString(p)
		assert.Equalf(t, supported[p], ok, "registry and supported list should agree on %s", p)
		if ok {
			assert.NotEmpty(t, token)
			assert.Falsef(t, tokens[token], "token %s should map to a single pair", token)
			tokens[token] = true
		}
	}
	token, ok := GetPairString(currency.BTCUSD)
	assert.True(t, ok)
	assert.Equal(t, "XXBTZUSD", token)
	_, ok = GetPairString(currency.NXTBTC)
	assert.False(t, ok)
	_, ok = GetPairString(currency.EMPTYPAIR)
	assert.False(t, ok)
}

func TestTicker(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, account.Credentials{}, map[string]mock.Response{
		"/0/public/Ticker": {Body: tickerJSON},
	})
	tick, err := k.Ticker(context.Background(), currency.BTCUSD)
	require.NoError(t, err)
	assert.Equal(t, 100.5, tick.Last)
	assert.Equal(t, 101.0, tick.Ask)
	assert.Equal(t, 100.0, tick.Bid)
	assert.Equal(t, null.Float64From(50), tick.Volume)
	assert.Equal(t, currency.BTCUSD, tick.Pair)
	assert.Equal(t, Name, tick.ExchangeName)

	last, ok := s.LastRequest()
	require.True(t, ok)
	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "XXBTZUSD", last.Query.Get("pair"))
	assert.Empty(t, last.Header.Get("API-Sign"), "public requests should not be signed")
}

func TestGetTicker(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, account.Credentials{}, nil)
	ctx := context.Background()

	s.SetRoute("/0/public/Ticker", mock.Response{Body: `{"error":[],"result":{"XBTUSD":{"c":[100.5,"0"],"a":["101.0"],"b":["100.0"],"o":"99.5"}}}`})
	tick, err := k.GetTicker(ctx, currency.BTCUSD)
	require.NoError(t, err, "a single member result should be accepted under an alternative name")
	assert.Equal(t, 100.5, tick.Last)
	assert.Equal(t, null.Float64From(99.5), tick.Open)
	assert.False(t, tick.Volume.Valid, "volume should be unset when absent")

	for _, bad := range []string{
		`{"error":[],"result":{"XXBTZUSD":{"a":["101.0"],"b":["100.0"]}}}`,
		`{"error":[],"result":{"XXBTZUSD":{"c":["abc"],"a":["101.0"],"b":["100.0"]}}}`,
		`{"error":[],"result":{"XXBTZUSD":{"c":["1"],"a":["101.0"],"b":["100.0"],"v":["0","x"]}}}`,
		`{"error":[],"result":{"A":{},"B":{}}}`,
		`{"error":[],"result":[]}`,
		`{"error":[]}`,
		`{"error":[],"result":null}`,
	} {
		s.SetRoute("/0/public/Ticker", mock.Response{Body: bad})
		_, err = k.GetTicker(ctx, currency.BTCUSD)
		assert.ErrorIsf(t, err, common.ErrInvalidData, "%s should be invalid data", bad)
	}
}

func TestOrderbook(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, account.Credentials{}, map[string]mock.Response{
		"/0/public/Depth": {Body: depthJSON},
	})
	ob, err := k.Orderbook(context.Background(), currency.BTCUSD)
	require.NoError(t, err)
	require.Len(t, ob.Asks, 3)
	require.Len(t, ob.Bids, 2)
	for i, want := range []float64{101, 102, 103} {
		assert.Equal(t, want, ob.Asks[i].Price, "asks should keep the exchange order")
		assert.Equal(t, float64(i+1), ob.Asks[i].Amount)
	}
	assert.Equal(t, 99.0, ob.Bids[0].Price)
	assert.Equal(t, 98.0, ob.Bids[1].Price)

	last, _ := s.LastRequest()
	assert.Equal(t, "1000", last.Query.Get("count"))
	assert.Equal(t, "XXBTZUSD", last.Query.Get("pair"))

	s.SetRoute("/0/public/Depth", mock.Response{Body: `{"error":[],"result":{"XETHZEUR":{"asks":[["1500.10","0.5",1616663618]],"bids":[]}}}`})
	depth, err := k.GetDepth(context.Background(), currency.ETHEUR, 0)
	require.NoError(t, err)
	assert.Equal(t, 1500.10, depth.Asks[0].Price)
	assert.Equal(t, 0.5, depth.Asks[0].Amount)
	assert.Empty(t, depth.Bids)
	last, _ = s.LastRequest()
	assert.False(t, last.Query.Has("count"), "a zero count should be omitted")
}

func TestGetServerTime(t *testing.T) {
	t.Parallel()
	k, _ := newTestKraken(t, account.Credentials{}, map[string]mock.Response{
		"/0/public/Time": {Body: `{"error":[],"result":{"unixtime":1616492376,"rfc1123":"Tue, 23 Mar 21 09:39:36 +0000"}}`},
	})
	st, err := k.GetServerTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1616492376), st.Unixtime.Unix())
	assert.Equal(t, "Tue, 23 Mar 21 09:39:36 +0000", st.Rfc1123)
}

func TestGetBalance(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, testCreds, map[string]mock.Response{
		"/0/private/Balance": {Body: `{"error":[],"result":{"ZUSD":"171288.6158","XXBT":"0.0011"}}`},
	})
	bal, err := k.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"ZUSD": 171288.6158, "XXBT": 0.0011}, bal)

	last, _ := s.LastRequest()
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, testCreds.Key, last.Header.Get("API-Key"))
	assert.Equal(t, url.Values{"nonce": {k.Nonce.String()}}, last.Form)
}

func TestAddOrder(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, testCreds, map[string]mock.Response{
		"/0/private/AddOrder": {Body: addOrderJSON},
	})
	ctx := context.Background()

	info, err := k.AddOrder(ctx, order.BuyLimit, currency.BTCUSD, 1.25, null.Float64From(37500))
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC123", "DEF456"}, info.IDs, "txids should keep their order")
	assert.Equal(t, Name, info.ExchangeName)

	last, _ := s.LastRequest()
	assert.Equal(t, "/0/private/AddOrder", last.Path)
	assert.True(t, mock.MatchURLVals(last.Form, url.Values{
		"nonce":     {""},
		"pair":      {"XXBTZUSD"},
		"type":      {"buy"},
		"ordertype": {"limit"},
		"volume":    {"1.25"},
		"price":     {"37500"},
	}), "unexpected form %v", last.Form)
	n, err := strconv.ParseInt(last.Form.Get("nonce"), 10, 64)
	require.NoError(t, err)
	assert.Equal(t, int64(k.Nonce.Get()), n)
	sig, err := Sign("/0/private/AddOrder", nonce.Value(n), last.Form, testCreds)
	require.NoError(t, err)
	assert.Equal(t, sig, last.Header.Get("API-Sign"))
	assert.Equal(t, testCreds.Key, last.Header.Get("API-Key"))

	_, err = k.AddOrder(ctx, order.SellMarket, currency.ETHEUR, 0.00000001, null.Float64From(1))
	require.NoError(t, err)
	last, _ = s.LastRequest()
	assert.Equal(t, "sell", last.Form.Get("type"))
	assert.Equal(t, "market", last.Form.Get("ordertype"))
	assert.Equal(t, "XETHZEUR", last.Form.Get("pair"))
	assert.Equal(t, "0.00000001", last.Form.Get("volume"))
	assert.False(t, last.Form.Has("price"), "market orders should ignore price")
	nextNonce, err := strconv.ParseInt(last.Form.Get("nonce"), 10, 64)
	require.NoError(t, err)
	assert.Greater(t, nextNonce, n, "nonces should strictly increase")

	requests := len(s.Requests())
	_, err = k.AddOrder(ctx, order.SellLimit, currency.BTCUSD, 1, null.Float64{})
	assert.ErrorIs(t, err, common.ErrPriceRequired)
	assert.Len(t, s.Requests(), requests)

	s.SetRoute("/0/private/AddOrder", mock.Response{Body: `{"error":[],"result":{"descr":{"order":"buy"}}}`})
	_, err = k.AddOrder(ctx, order.BuyMarket, currency.BTCUSD, 1, null.Float64{})
	assert.ErrorIs(t, err, common.ErrInvalidData, "an order without txid should be invalid data")
}

func TestAddStandardOrder(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, testCreds, map[string]mock.Response{
		"/0/private/AddOrder": {Body: `{"error":[],"result":{"descr":{"order":"buy 1.00000000 XBTUSD @ limit 100.0 with 2:1 leverage"}}}`},
	})
	id := uuid.Must(uuid.FromString("6d1b345e-2821-40e2-ad83-4ecb18a06876"))
	resp, err := k.AddStandardOrder(context.Background(), currency.BTCUSD, order.Buy, order.Limit, 1, null.Float64From(100), &AddOrderOptions{
		ClientOrderID:  id,
		UserRef:        42,
		Oflags:         "post",
		Price2:         null.Float64From(105),
		Leverage:       "2",
		CloseOrderType: "stop-loss",
		ClosePrice:     null.Float64From(90),
		Validate:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "buy 1.00000000 XBTUSD @ limit 100.0 with 2:1 leverage", resp.Description)
	assert.Empty(t, resp.TransactionID)

	last, _ := s.LastRequest()
	assert.Equal(t, id.String(), last.Form.Get("cl_ord_id"))
	assert.Equal(t, "42", last.Form.Get("userref"))
	assert.Equal(t, "post", last.Form.Get("oflags"))
	assert.Equal(t, "105", last.Form.Get("price2"))
	assert.Equal(t, "2", last.Form.Get("leverage"))
	assert.Equal(t, "stop-loss", last.Form.Get("close[ordertype]"))
	assert.Equal(t, "90", last.Form.Get("close[price]"))
	assert.False(t, last.Form.Has("close[price2]"))
	assert.Equal(t, "true", last.Form.Get("validate"))
}

func TestNonFiniteOrderValues(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, testCreds, map[string]mock.Response{
		"/0/private/AddOrder": {Body: addOrderJSON},
	})
	ctx := context.Background()
	for _, n := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := k.AddOrder(ctx, order.BuyMarket, currency.BTCUSD, n, null.Float64{})
		assert.ErrorIsf(t, err, order.ErrAmountIsInvalid, "AddOrder should reject volume %v", n)
		_, err = k.AddOrder(ctx, order.SellLimit, currency.BTCUSD, 1, null.Float64From(n))
		assert.ErrorIsf(t, err, order.ErrPriceIsInvalid, "AddOrder should reject price %v", n)

		_, err = k.AddStandardOrder(ctx, currency.BTCUSD, order.Buy, order.Market, n, null.Float64{}, nil)
		assert.ErrorIsf(t, err, common.ErrNumberNotFinite, "AddStandardOrder should reject volume %v", n)
		_, err = k.AddStandardOrder(ctx, currency.BTCUSD, order.Buy, order.Limit, 1, null.Float64From(n), nil)
		assert.ErrorIsf(t, err, common.ErrNumberNotFinite, "AddStandardOrder should reject price %v", n)
		for _, opts := range []*AddOrderOptions{
			{Price2: null.Float64From(n)},
			{ClosePrice: null.Float64From(n)},
			{ClosePrice2: null.Float64From(n)},
		} {
			_, err = k.AddStandardOrder(ctx, currency.BTCUSD, order.Buy, order.Limit, 1, null.Float64From(100), opts)
			assert.ErrorIsf(t, err, common.ErrNumberNotFinite, "AddStandardOrder should reject option %+v", opts)
		}
	}
	assert.Empty(t, s.Requests(), "non-finite values should never reach the exchange")
	assert.Zero(t, k.Nonce.Get(), "non-finite values should not consume a nonce")
}

func TestNonFiniteResponseValues(t *testing.T) {
	t.Parallel()
	k, _ := newTestKraken(t, account.Credentials{}, map[string]mock.Response{
		"/0/public/Ticker": {Body: `{"error":[],"result":{"XXBTZUSD":{"c":["NaN"],"a":["Inf"],"b":["1"]}}}`},
		"/0/public/Depth":  {Body: `{"error":[],"result":{"XXBTZUSD":{"asks":[["Infinity","1"]],"bids":[]}}}`},
	})
	_, err := k.Ticker(context.Background(), currency.BTCUSD)
	assert.ErrorIs(t, err, common.ErrInvalidData)
	_, err = k.Orderbook(context.Background(), currency.BTCUSD)
	assert.ErrorIs(t, err, common.ErrInvalidData)
}

func TestCancelOrder(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, testCreds, map[string]mock.Response{
		"/0/private/CancelOrder": {Body: `{"error":[],"result":{"count":1,"pending":true}}`},
	})
	resp, err := k.CancelOrder(context.Background(), "OYVGEW-VYV5B-UUEXSK")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)
	assert.True(t, resp.Pending)
	last, _ := s.LastRequest()
	assert.Equal(t, "OYVGEW-VYV5B-UUEXSK", last.Form.Get("txid"))

	_, err = k.CancelOrder(context.Background(), "")
	assert.ErrorIs(t, err, errOrderIDEmpty)
}

func TestUnsupportedPair(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, testCreds, nil)
	ctx := context.Background()

	_, err := k.Ticker(ctx, currency.NXTBTC)
	assert.ErrorIs(t, err, common.ErrPairUnsupported)
	_, err = k.Orderbook(ctx, currency.NXTBTC)
	assert.ErrorIs(t, err, common.ErrPairUnsupported)
	_, err = k.AddOrder(ctx, order.BuyLimit, currency.NXTBTC, 1, null.Float64From(1))
	assert.ErrorIs(t, err, common.ErrPairUnsupported)
	_, err = k.AddStandardOrder(ctx, currency.EMPTYPAIR, order.Buy, order.Market, 1, null.Float64{}, nil)
	assert.ErrorIs(t, err, common.ErrPairUnsupported)
	assert.False(t, k.SupportsPair(currency.NXTBTC))
	assert.True(t, k.SupportsPair(currency.DOGEBTC))

	assert.Empty(t, s.Requests(), "no request should be sent")
	assert.True(t, k.LastRequest().IsZero(), "throttle state should be untouched")
	assert.Zero(t, k.Nonce.Get(), "no nonce should be consumed")
}

func TestAuthenticationPreflight(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, account.Credentials{}, nil)
	_, err := k.GetBalance(context.Background())
	assert.ErrorIs(t, err, common.ErrCredentialsUnset)

	k, s2 := newTestKraken(t, account.Credentials{Key: "key", Secret: "not base64!"}, nil)
	_, err = k.AddOrder(context.Background(), order.BuyMarket, currency.BTCUSD, 1, null.Float64{})
	assert.ErrorIs(t, err, errInvalidSecret)
	assert.Zero(t, k.Nonce.Get())

	assert.Empty(t, s.Requests())
	assert.Empty(t, s2.Requests())
}

func TestErrorEnvelopes(t *testing.T) {
	t.Parallel()
	k, s := newTestKraken(t, testCreds, nil)
	ctx := context.Background()
	var exchErr *common.ExchangeError

	s.SetRoute("/0/private/AddOrder", mock.Response{Body: `{"error":["EAPI:Invalid signature"]}`})
	_, err := k.AddOrder(ctx, order.BuyLimit, currency.BTCUSD, 1, null.Float64From(1))
	require.ErrorAs(t, err, &exchErr)
	assert.Equal(t, []string{"EAPI:Invalid signature"}, exchErr.Messages)
	assert.Equal(t, common.KindExchange, common.Kind(err))

	s.SetRoute("/0/private/AddOrder", mock.Response{Body: `{"error":["EOrder:Insufficient funds","EGeneral:Invalid arguments:volume"],"result":{}}`})
	_, err = k.AddOrder(ctx, order.BuyLimit, currency.BTCUSD, 1, null.Float64From(1))
	require.ErrorAs(t, err, &exchErr)
	assert.Equal(t, []string{"EOrder:Insufficient funds", "EGeneral:Invalid arguments:volume"}, exchErr.Messages)

	s.SetRoute("/0/public/Ticker", mock.Response{Status: http.StatusInternalServerError, Body: `{}`})
	_, err = k.Ticker(ctx, currency.BTCUSD)
	require.ErrorAs(t, err, &exchErr)
	assert.Equal(t, []string{"HTTP status code 500"}, exchErr.Messages)

	s.SetRoute("/0/public/Ticker", mock.Response{Status: http.StatusServiceUnavailable, Body: `upstream unavailable`})
	_, err = k.Ticker(ctx, currency.BTCUSD)
	assert.ErrorIs(t, err, common.ErrInvalidData)

	s.SetRoute("/0/public/Ticker", mock.Response{Body: `{"error":[42]}`})
	_, err = k.Ticker(ctx, currency.BTCUSD)
	assert.ErrorIs(t, err, common.ErrInvalidData)
}

// Warnings use the global log hook so this test cannot run in parallel
func TestWarningsAreLogged(t *testing.T) {
	k, _ := newTestKraken(t, account.Credentials{}, map[string]mock.Response{
		"/0/public/Ticker": {Body: strings.Replace(tickerJSON, `"error":[]`, `"error":["WGeneral:Deprecated endpoint"]`, 1)},
	})
	var warnings []string
	log.SetCustomLogHook(func(_, subLogger string, a ...any) bool {
		if subLogger == log.ExchangeSys.GetName() {
			warnings = append(warnings, fmt.Sprint(a...))
			return true
		}
		return false
	})
	defer log.SetCustomLogHook(nil)

	tick, err := k.Ticker(context.Background(), currency.BTCUSD)
	require.NoError(t, err, "warnings should not fail the request")
	assert.Equal(t, 100.5, tick.Last)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "WGeneral:Deprecated endpoint")
}

func TestThrottle(t *testing.T) {
	t.Parallel()
	s := mock.NewServer(t, map[string]mock.Response{"/0/public/Ticker": {Body: tickerJSON}})
	k := New(account.Credentials{}, exchange.WithAPIURL(s.URL), exchange.WithHTTPClient(s.Client()))

	_, err := k.Ticker(context.Background(), currency.BTCUSD)
	require.NoError(t, err)
	first := k.LastRequest()
	_, err = k.Ticker(context.Background(), currency.BTCUSD)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, k.LastRequest().Sub(first), 800*time.Millisecond,
		"consecutive requests should be at least the minimum interval apart")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = k.Ticker(ctx, currency.BTCUSD)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, s.Requests(), 2)
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("tls: handshake failure")
}

func TestNetworkError(t *testing.T) {
	t.Parallel()
	k := New(testCreds, exchange.WithHTTPClient(failingDoer{}))
	_, err := k.AddOrder(context.Background(), order.BuyMarket, currency.BTCUSD, 1, null.Float64{})
	assert.ErrorIs(t, err, common.ErrNetwork)
	assert.Equal(t, common.KindNetwork, common.Kind(err))
	assert.NotZero(t, k.Nonce.Get(), "the nonce is spent once the request is built")
}
