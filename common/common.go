package common

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Errors returned by every exchange implementation. Callers can switch on
// Kind(err) or match these with errors.Is.
var (
	// ErrPairUnsupported is returned before any network activity when an
	// exchange has no token for the requested pair
	ErrPairUnsupported = errors.New("currency pair unsupported")
	// ErrNetwork wraps transport, connection and TLS failures
	ErrNetwork = errors.New("network failure")
	// ErrInvalidData is returned when a response is not JSON or lacks a
	// field required to build a canonical type
	ErrInvalidData = errors.New("invalid data")
	// ErrExchange matches any *ExchangeError
	ErrExchange = errors.New("exchange error")

	ErrCredentialsUnset = errors.New("authenticated request attempted without credentials set")
	ErrPriceRequired    = errors.New("price required for limit order")
	ErrUnknownExchange  = errors.New("unknown exchange")
	ErrNilPointer       = errors.New("nil pointer")
	// ErrNumberNotFinite is returned when NaN or an infinity would be sent
	// to an exchange
	ErrNumberNotFinite = errors.New("number is not finite")
)

// ExchangeError is a structurally valid error envelope returned by an
// exchange. Messages are kept verbatim and in the order received.
type ExchangeError struct {
	Exchange string
	Messages []string
}

// Error implements the error interface
func (e *ExchangeError) Error() string {
	if len(e.Messages) == 0 {
		return e.Exchange + " " + ErrExchange.Error()
	}
	return e.Exchange + " " + ErrExchange.Error() + ": " + strings.Join(e.Messages, ", ")
}

// Is allows errors.Is(err, ErrExchange) to match
func (e *ExchangeError) Is(target error) bool {
	return target == ErrExchange
}

// NewExchangeError returns an *ExchangeError for the supplied messages
func NewExchangeError(exch string, msgs ...string) *ExchangeError {
	return &ExchangeError{Exchange: exch, Messages: msgs}
}

// ErrorKind is the closed set of failure categories surfaced to callers
type ErrorKind uint8

// ErrorKind values
const (
	KindUnknown ErrorKind = iota
	KindPairUnsupported
	KindNetwork
	KindInvalidData
	KindExchange
)

// String implements fmt.Stringer
func (k ErrorKind) String() string {
	switch k {
	case KindPairUnsupported:
		return "PairUnsupported"
	case KindNetwork:
		return "Network"
	case KindInvalidData:
		return "InvalidData"
	case KindExchange:
		return "ExchangeError"
	default:
		return "Unknown"
	}
}

// Kind classifies an error into the taxonomy. Errors outside of it, for
// instance a cancelled context or missing credentials, are KindUnknown.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrPairUnsupported):
		return KindPairUnsupported
	case errors.Is(err, ErrExchange):
		return KindExchange
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// FloatFromString parses a numeric JSON token. Quoted strings and bare
// numbers are both accepted; anything else, including NaN and infinities, is
// ErrInvalidData.
func FloatFromString(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !IsFinite(f) {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidData, raw)
	}
	return f, nil
}

// IsFinite returns false for NaN and infinities
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
