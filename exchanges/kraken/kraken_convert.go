package kraken

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/thrasher-corp/gctconnect/common"
	"github.com/thrasher-corp/gctconnect/exchanges/orderbook"
	"github.com/thrasher-corp/gctconnect/log"
	"github.com/volatiletech/null"
)

// getResult checks the {"error": [...], "result": {...}} envelope and returns
// the raw result. Error format from API doc:
//
//	<char-severity code><string-error category>:<string-error type>[:<string-extra info>]
//
// Severity code can be E for error or W for warning. Warnings are logged and
// do not fail the request.
func getResult(statusCode int, body []byte) ([]byte, error) {
	var msgs []string
	if _, dt, _, err := jsonparser.Get(body, "error"); err == nil && dt != jsonparser.Null {
		entries, err := common.GetStrings(body, "error")
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if strings.HasPrefix(e, "W") {
				log.Warnf(log.ExchangeSys, "%s API warning: %s", Name, e)
				continue
			}
			msgs = append(msgs, e)
		}
	}
	if len(msgs) > 0 {
		return nil, common.NewExchangeError(Name, msgs...)
	}
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return nil, common.NewExchangeError(Name, fmt.Sprintf("HTTP status code %d", statusCode))
	}
	result, dt, _, err := jsonparser.Get(body, "result")
	if err != nil || dt == jsonparser.Null {
		return nil, fmt.Errorf("%w: %s response has no result", common.ErrInvalidData, Name)
	}
	return result, nil
}

// pairResult returns the member of result keyed by token. Kraken may key the
// result with an alternative name for the pair, so a single member result is
// accepted as well.
func pairResult(result []byte, token string) ([]byte, error) {
	v, dt, _, err := jsonparser.Get(result, token)
	if err == nil && dt == jsonparser.Object {
		return v, nil
	}
	var (
		members int
		only    []byte
	)
	if err := jsonparser.ObjectEach(result, func(_, value []byte, vdt jsonparser.ValueType, _ int) error {
		members++
		if vdt == jsonparser.Object {
			only = value
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: result is not an object: %v", common.ErrInvalidData, err)
	}
	if members == 1 && only != nil {
		return only, nil
	}
	return nil, fmt.Errorf("%w: result has no entry for %s", common.ErrInvalidData, token)
}

func parseServerTime(result []byte) (*TimeResponse, error) {
	unix, err := jsonparser.GetInt(result, "unixtime")
	if err != nil {
		return nil, fmt.Errorf("%w: unixtime: %v", common.ErrInvalidData, err)
	}
	rfc, _ := jsonparser.GetString(result, "rfc1123")
	return &TimeResponse{Unixtime: time.Unix(unix, 0), Rfc1123: rfc}, nil
}

func parseTicker(result []byte, token string) (*Ticker, error) {
	data, err := pairResult(result, token)
	if err != nil {
		return nil, err
	}
	var t Ticker
	if t.Last, err = common.GetFloat(data, "c", "[0]"); err != nil {
		return nil, err
	}
	if t.Ask, err = common.GetFloat(data, "a", "[0]"); err != nil {
		return nil, err
	}
	if t.Bid, err = common.GetFloat(data, "b", "[0]"); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		dst  *null.Float64
		keys []string
	}{
		{&t.Open, []string{"o"}},
		{&t.VolumeToday, []string{"v", "[0]"}},
		{&t.Volume, []string{"v", "[1]"}},
	} {
		v, ok, err := common.GetOptionalFloat(data, f.keys...)
		if err != nil {
			return nil, err
		}
		if ok {
			*f.dst = null.Float64From(v)
		}
	}
	return &t, nil
}

func parseDepth(result []byte, token string) (*Orderbook, error) {
	data, err := pairResult(result, token)
	if err != nil {
		return nil, err
	}
	asks, err := common.GetPriceLevels(data, "asks")
	if err != nil {
		return nil, err
	}
	bids, err := common.GetPriceLevels(data, "bids")
	if err != nil {
		return nil, err
	}
	return &Orderbook{Asks: toLevels(asks), Bids: toLevels(bids)}, nil
}

func toLevels(in [][2]float64) orderbook.Levels {
	out := make(orderbook.Levels, len(in))
	for i := range in {
		out[i] = orderbook.Level{Price: in[i][0], Amount: in[i][1]}
	}
	return out
}

func parseBalance(result []byte) (map[string]float64, error) {
	bal := make(map[string]float64)
	err := jsonparser.ObjectEach(result, func(k, v []byte, dt jsonparser.ValueType, _ int) error {
		if dt != jsonparser.String && dt != jsonparser.Number {
			return fmt.Errorf("%w: balance %s is %s", common.ErrInvalidData, k, dt)
		}
		f, err := common.FloatFromString(string(v))
		if err != nil {
			return fmt.Errorf("balance %s: %w", k, err)
		}
		bal[string(k)] = f
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidData) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: balance: %v", common.ErrInvalidData, err)
	}
	return bal, nil
}

func parseAddOrder(result []byte) (*AddOrderResponse, error) {
	resp := &AddOrderResponse{}
	resp.Description, _ = jsonparser.GetString(result, "descr", "order")
	if _, dt, _, err := jsonparser.Get(result, "txid"); err == nil && dt != jsonparser.Null {
		ids, err := common.GetStrings(result, "txid")
		if err != nil {
			return nil, err
		}
		resp.TransactionID = ids
	}
	return resp, nil
}

func parseCancelOrder(result []byte) (*CancelOrderResponse, error) {
	count, err := common.GetFloat(result, "count")
	if err != nil {
		return nil, err
	}
	resp := &CancelOrderResponse{Count: int64(count)}
	if v, dt, _, err := jsonparser.Get(result, "pending"); err == nil && dt == jsonparser.Boolean {
		resp.Pending, _ = strconv.ParseBool(string(v))
	}
	return resp, nil
}
