package bitstamp

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/buger/jsonparser"
	"github.com/thrasher-corp/gctconnect/common"
	"github.com/thrasher-corp/gctconnect/exchanges/order"
	"github.com/thrasher-corp/gctconnect/exchanges/orderbook"
	"github.com/volatiletech/null"
)

// checkResponse returns an *common.ExchangeError for either error envelope
// Bitstamp uses, {"error": "..."} or {"status": "error", "reason": ...}.
// A non-2xx response without an envelope is reported with its status code.
func checkResponse(statusCode int, body []byte) error {
	if v, dt, _, err := jsonparser.Get(body, "error"); err == nil && dt != jsonparser.Null {
		if msgs := collectReason(v, dt); len(msgs) > 0 {
			return common.NewExchangeError(Name, msgs...)
		}
	}
	if status, err := jsonparser.GetString(body, "status"); err == nil && status == "error" {
		var msgs []string
		if v, dt, _, err := jsonparser.Get(body, "reason"); err == nil {
			msgs = collectReason(v, dt)
		}
		return common.NewExchangeError(Name, msgs...)
	}
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return common.NewExchangeError(Name, fmt.Sprintf("HTTP status code %d", statusCode))
	}
	return nil
}

// collectReason flattens a reason which may be a string, a list or a map of
// field names to lists. Map keys are visited in sorted order.
func collectReason(v []byte, dt jsonparser.ValueType) []string {
	switch dt {
	case jsonparser.String:
		s, err := jsonparser.ParseString(v)
		if err != nil || s == "" {
			return nil
		}
		return []string{s}
	case jsonparser.Array:
		var msgs []string
		_, _ = jsonparser.ArrayEach(v, func(e []byte, edt jsonparser.ValueType, _ int, _ error) {
			msgs = append(msgs, collectReason(e, edt)...)
		})
		return msgs
	case jsonparser.Object:
		fields := make(map[string][]string)
		var keys []string
		_ = jsonparser.ObjectEach(v, func(k, e []byte, edt jsonparser.ValueType, _ int) error {
			key := string(k)
			if _, ok := fields[key]; !ok {
				keys = append(keys, key)
			}
			fields[key] = append(fields[key], collectReason(e, edt)...)
			return nil
		})
		sort.Strings(keys)
		var msgs []string
		for _, k := range keys {
			msgs = append(msgs, fields[k]...)
		}
		return msgs
	case jsonparser.Number, jsonparser.Boolean:
		return []string{string(v)}
	default:
		return nil
	}
}

func parseTicker(body []byte) (*Ticker, error) {
	var (
		t   Ticker
		err error
	)
	if t.Last, err = common.GetFloat(body, "last"); err != nil {
		return nil, err
	}
	if t.Ask, err = common.GetFloat(body, "ask"); err != nil {
		return nil, err
	}
	if t.Bid, err = common.GetFloat(body, "bid"); err != nil {
		return nil, err
	}
	for key, dst := range map[string]*null.Float64{
		"high":   &t.High,
		"low":    &t.Low,
		"vwap":   &t.Vwap,
		"open":   &t.Open,
		"volume": &t.Volume,
	} {
		f, ok, err := common.GetOptionalFloat(body, key)
		if err != nil {
			return nil, err
		}
		if ok {
			*dst = null.Float64From(f)
		}
	}
	if t.Timestamp, err = parseUnixTime(body, "timestamp"); err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOrderbook(body []byte) (*Orderbook, error) {
	asks, err := common.GetPriceLevels(body, "asks")
	if err != nil {
		return nil, err
	}
	bids, err := common.GetPriceLevels(body, "bids")
	if err != nil {
		return nil, err
	}
	ts, err := parseUnixTime(body, "timestamp")
	if err != nil {
		return nil, err
	}
	return &Orderbook{
		Timestamp: ts,
		Asks:      toLevels(asks),
		Bids:      toLevels(bids),
	}, nil
}

func toLevels(in [][2]float64) orderbook.Levels {
	out := make(orderbook.Levels, len(in))
	for i := range in {
		out[i] = orderbook.Level{Price: in[i][0], Amount: in[i][1]}
	}
	return out
}

func parseTransactions(body []byte) ([]Transaction, error) {
	if _, dt, _, err := jsonparser.Get(body); err != nil || dt != jsonparser.Array {
		return nil, fmt.Errorf("%w: transactions are not a list", common.ErrInvalidData)
	}
	txs := []Transaction{}
	var elemErr error
	_, err := jsonparser.ArrayEach(body, func(v []byte, dt jsonparser.ValueType, _ int, _ error) {
		if elemErr != nil {
			return
		}
		if dt != jsonparser.Object {
			elemErr = fmt.Errorf("%w: transaction is %s", common.ErrInvalidData, dt)
			return
		}
		var tx Transaction
		if tx.TradeID, elemErr = common.GetID(v, "tid"); elemErr != nil {
			return
		}
		if tx.Price, elemErr = common.GetFloat(v, "price"); elemErr != nil {
			return
		}
		if tx.Amount, elemErr = common.GetFloat(v, "amount"); elemErr != nil {
			return
		}
		if tx.Date, elemErr = parseUnixTime(v, "date"); elemErr != nil {
			return
		}
		if tx.Side, elemErr = parseSide(v); elemErr != nil {
			return
		}
		txs = append(txs, tx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: transactions: %v", common.ErrInvalidData, err)
	}
	if elemErr != nil {
		return nil, elemErr
	}
	return txs, nil
}

func parseBalances(body []byte) (Balances, error) {
	bal := make(Balances)
	err := jsonparser.ObjectEach(body, func(k, v []byte, dt jsonparser.ValueType, _ int) error {
		switch dt {
		case jsonparser.Null:
			return nil
		case jsonparser.String, jsonparser.Number:
			f, err := common.FloatFromString(string(v))
			if err != nil {
				return fmt.Errorf("balance %s: %w", k, err)
			}
			bal[string(k)] = f
			return nil
		default:
			return fmt.Errorf("%w: balance %s is %s", common.ErrInvalidData, k, dt)
		}
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidData) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: balances: %v", common.ErrInvalidData, err)
	}
	return bal, nil
}

func parseOrder(body []byte) (*Order, error) {
	id, err := common.GetID(body, "id")
	if err != nil {
		return nil, err
	}
	o := &Order{ID: id}
	o.DateTime, _ = jsonparser.GetString(body, "datetime")
	if _, _, _, err := jsonparser.Get(body, "type"); err == nil {
		if o.Side, err = parseSide(body); err != nil {
			return nil, err
		}
	}
	if f, ok, err := common.GetOptionalFloat(body, "price"); err != nil {
		return nil, err
	} else if ok {
		o.Price = null.Float64From(f)
	}
	if f, ok, err := common.GetOptionalFloat(body, "amount"); err != nil {
		return nil, err
	} else if ok {
		o.Amount = null.Float64From(f)
	}
	return o, nil
}

// parseSide maps the "type" field, 0 for buy and 1 for sell
func parseSide(data []byte) (order.Side, error) {
	t, err := common.GetFloat(data, "type")
	if err != nil {
		return order.UnknownSide, err
	}
	switch t {
	case 0:
		return order.Buy, nil
	case 1:
		return order.Sell, nil
	}
	return order.UnknownSide, fmt.Errorf("%w: unknown order type %v", common.ErrInvalidData, t)
}

// parseUnixTime reads an optional unix seconds timestamp. A missing field
// returns the zero time.
func parseUnixTime(data []byte, key string) (time.Time, error) {
	v, dt, _, err := jsonparser.Get(data, key)
	if err != nil || dt == jsonparser.Null {
		return time.Time{}, nil
	}
	if dt != jsonparser.String && dt != jsonparser.Number {
		return time.Time{}, fmt.Errorf("%w: %s is %s", common.ErrInvalidData, key, dt)
	}
	sec, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not a unix timestamp", common.ErrInvalidData, key, v)
	}
	return time.Unix(sec, 0), nil
}
