package currency

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCurrencyPairEmpty defines an error if the currency pair is empty
	ErrCurrencyPairEmpty = errors.New("currency pair is empty")
	// ErrCurrencyPairUnrecognised is returned when a string does not name a
	// canonical pair
	ErrCurrencyPairUnrecognised = errors.New("currency pair unrecognised")
)

// Pair is the closed set of canonical currency pairs. Values are comparable
// and immutable; the zero value is EMPTYPAIR.
type Pair uint8

// Canonical pairs. Exchanges resolve these to their own tokens.
const (
	EMPTYPAIR Pair = iota
	BTCUSD
	BTCEUR
	EURUSD
	ETHBTC
	ETHUSD
	ETHEUR
	LTCBTC
	LTCUSD
	LTCEUR
	XRPBTC
	XRPUSD
	XRPEUR
	BCHBTC
	BCHUSD
	BCHEUR
	ETCBTC
	ETCUSD
	ZECBTC
	XMRBTC
	DOGEBTC
	NXTBTC
	pairLimit
)

// DefaultDelimiter separates base and quote in Pair.String
const DefaultDelimiter = "-"

var pairCodes = [pairLimit]struct{ base, quote Code }{
	BTCUSD:  {BTC, USD},
	BTCEUR:  {BTC, EUR},
	EURUSD:  {EUR, USD},
	ETHBTC:  {ETH, BTC},
	ETHUSD:  {ETH, USD},
	ETHEUR:  {ETH, EUR},
	LTCBTC:  {LTC, BTC},
	LTCUSD:  {LTC, USD},
	LTCEUR:  {LTC, EUR},
	XRPBTC:  {XRP, BTC},
	XRPUSD:  {XRP, USD},
	XRPEUR:  {XRP, EUR},
	BCHBTC:  {BCH, BTC},
	BCHUSD:  {BCH, USD},
	BCHEUR:  {BCH, EUR},
	ETCBTC:  {ETC, BTC},
	ETCUSD:  {ETC, USD},
	ZECBTC:  {ZEC, BTC},
	XMRBTC:  {XMR, BTC},
	DOGEBTC: {DOGE, BTC},
	NXTBTC:  {NXT, BTC},
}

// AllPairs returns every canonical pair in declaration order
func AllPairs() []Pair {
	pairs := make([]Pair, 0, pairLimit-1)
	for p := EMPTYPAIR + 1; p < pairLimit; p++ {
		pairs = append(pairs, p)
	}
	return pairs
}

// IsEmpty returns true if the pair is not a canonical pair
func (p Pair) IsEmpty() bool {
	return p == EMPTYPAIR || p >= pairLimit
}

// Base returns the base currency
func (p Pair) Base() Code {
	if p.IsEmpty() {
		return ""
	}
	return pairCodes[p].base
}

// Quote returns the quote currency
func (p Pair) Quote() Code {
	if p.IsEmpty() {
		return ""
	}
	return pairCodes[p].quote
}

// Format returns the pair joined by delimiter
func (p Pair) Format(delimiter string) string {
	if p.IsEmpty() {
		return ""
	}
	return string(p.Base()) + delimiter + string(p.Quote())
}

// String implements fmt.Stringer
func (p Pair) String() string {
	return p.Format(DefaultDelimiter)
}

// NewPair returns the canonical pair for base and quote
func NewPair(base, quote Code) (Pair, error) {
	if base == "" || quote == "" {
		return EMPTYPAIR, ErrCurrencyPairEmpty
	}
	for p := EMPTYPAIR + 1; p < pairLimit; p++ {
		if pairCodes[p].base == base && pairCodes[p].quote == quote {
			return p, nil
		}
	}
	return EMPTYPAIR, fmt.Errorf("%w: %s%s%s", ErrCurrencyPairUnrecognised, base, DefaultDelimiter, quote)
}

// NewPairFromString converts a string such as "btc-usd", "BTC_USD" or
// "BTC/USD" into a canonical pair. Strings without a delimiter are matched
// against the concatenated codes.
func NewPairFromString(currencyPair string) (Pair, error) {
	currencyPair = strings.TrimSpace(currencyPair)
	if currencyPair == "" {
		return EMPTYPAIR, ErrCurrencyPairEmpty
	}
	for _, d := range []string{"_", "-", "/", ":"} {
		if base, quote, ok := strings.Cut(currencyPair, d); ok {
			return NewPair(NewCode(base), NewCode(quote))
		}
	}
	upper := strings.ToUpper(currencyPair)
	for p := EMPTYPAIR + 1; p < pairLimit; p++ {
		if p.Format("") == upper {
			return p, nil
		}
	}
	return EMPTYPAIR, fmt.Errorf("%w: %s", ErrCurrencyPairUnrecognised, currencyPair)
}

// MarshalText implements encoding.TextMarshaler
func (p Pair) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Pair) UnmarshalText(d []byte) error {
	np, err := NewPairFromString(string(d))
	if err != nil {
		return err
	}
	*p = np
	return nil
}
