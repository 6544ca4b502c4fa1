package order

import (
	"fmt"
	"strings"

	"github.com/thrasher-corp/gctconnect/common"
	"github.com/volatiletech/null"
)

// Side returns the direction of the order type
func (t Type) Side() Side {
	switch t {
	case BuyLimit, BuyMarket:
		return Buy
	case SellLimit, SellMarket:
		return Sell
	default:
		return UnknownSide
	}
}

// Kind returns the execution style of the order type
func (t Type) Kind() Kind {
	switch t {
	case BuyLimit, SellLimit:
		return Limit
	case BuyMarket, SellMarket:
		return Market
	default:
		return UnknownKind
	}
}

// IsValid returns true for members of the closed set
func (t Type) IsValid() bool {
	return t >= BuyLimit && t <= SellMarket
}

// String implements fmt.Stringer
func (t Type) String() string {
	switch t {
	case BuyLimit:
		return "BUYLIMIT"
	case BuyMarket:
		return "BUYMARKET"
	case SellLimit:
		return "SELLLIMIT"
	case SellMarket:
		return "SELLMARKET"
	default:
		return "UNKNOWN"
	}
}

// StringToType returns the Type for strings such as "buylimit" or
// "sell_market"
func StringToType(s string) (Type, error) {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "_", "") {
	case "BUYLIMIT":
		return BuyLimit, nil
	case "BUYMARKET":
		return BuyMarket, nil
	case "SELLLIMIT":
		return SellLimit, nil
	case "SELLMARKET":
		return SellMarket, nil
	}
	return UnknownType, fmt.Errorf("%w: %q", ErrTypeIsInvalid, s)
}

// String implements fmt.Stringer
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Lower returns the side string lower cased
func (s Side) Lower() string {
	return strings.ToLower(s.String())
}

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case Limit:
		return "LIMIT"
	case Market:
		return "MARKET"
	default:
		return "UNKNOWN"
	}
}

// Lower returns the kind string lower cased
func (k Kind) Lower() string {
	return strings.ToLower(k.String())
}

// Validate checks the order type and quantity, and the price when the order
// type requires one. price is ignored for market orders.
func Validate(t Type, quantity float64, price null.Float64) error {
	if !t.IsValid() {
		return ErrTypeIsInvalid
	}
	if quantity <= 0 || !common.IsFinite(quantity) {
		return ErrAmountIsInvalid
	}
	if t.Kind() != Limit {
		return nil
	}
	if !price.Valid {
		return common.ErrPriceRequired
	}
	if price.Float64 <= 0 || !common.IsFinite(price.Float64) {
		return ErrPriceIsInvalid
	}
	return nil
}
