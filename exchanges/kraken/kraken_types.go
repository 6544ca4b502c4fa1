package kraken

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/thrasher-corp/gctconnect/exchanges/orderbook"
	"github.com/volatiletech/null"
)

var (
	errInvalidSecret = errors.New("invalid api secret")
	errOrderIDEmpty  = errors.New("order id is empty")
)

// TimeResponse type
type TimeResponse struct {
	Unixtime time.Time
	Rfc1123  string
}

// Ticker is a standard ticker type
type Ticker struct {
	Last        float64
	Ask         float64
	Bid         float64
	Open        null.Float64
	VolumeToday null.Float64
	Volume      null.Float64
}

// Orderbook stores the bids and asks orderbook data
type Orderbook struct {
	Bids orderbook.Levels
	Asks orderbook.Levels
}

// AddOrderOptions represents the AddOrder options
type AddOrderOptions struct {
	UserRef        int32
	ClientOrderID  uuid.UUID
	Oflags         string
	StartTm        string
	ExpireTm       string
	Price2         null.Float64
	Leverage       string
	CloseOrderType string
	ClosePrice     null.Float64
	ClosePrice2    null.Float64
	Validate       bool
}

// AddOrderResponse type
type AddOrderResponse struct {
	Description   string
	TransactionID []string
}

// CancelOrderResponse type
type CancelOrderResponse struct {
	Count   int64
	Pending bool
}
