package order

import (
	"errors"
	"time"
)

var (
	// ErrTypeIsInvalid is returned for a Type outside of the closed set
	ErrTypeIsInvalid = errors.New("order type is invalid")
	// ErrAmountIsInvalid is returned for a non-positive quantity
	ErrAmountIsInvalid = errors.New("order amount is not a positive finite number")
	// ErrPriceIsInvalid is returned for a non-positive limit price
	ErrPriceIsInvalid = errors.New("order price is not a positive finite number")
)

// Type is the closed set of order types accepted by every exchange
type Type uint8

// Order types
const (
	UnknownType Type = iota
	BuyLimit
	BuyMarket
	SellLimit
	SellMarket
)

// Side is the direction of an order
type Side uint8

// Order sides
const (
	UnknownSide Side = iota
	Buy
	Sell
)

// Kind is the execution style of an order
type Kind uint8

// Order kinds
const (
	UnknownKind Kind = iota
	Limit
	Market
)

// Info is returned once the exchange has confirmed an order. An exchange may
// split one order into several transactions; every id is kept in the order
// received.
type Info struct {
	Timestamp    time.Time `json:"timestamp"`
	ExchangeName string    `json:"exchange"`
	IDs          []string  `json:"ids"`
}
