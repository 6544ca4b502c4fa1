package currency

import "strings"

// Code is an upper case currency ticker symbol
type Code string

// Currency codes referenced by the canonical pairs
const (
	BTC  Code = "BTC"
	BCH  Code = "BCH"
	DOGE Code = "DOGE"
	ETC  Code = "ETC"
	ETH  Code = "ETH"
	EUR  Code = "EUR"
	LTC  Code = "LTC"
	NXT  Code = "NXT"
	USD  Code = "USD"
	XMR  Code = "XMR"
	XRP  Code = "XRP"
	ZEC  Code = "ZEC"
)

// NewCode returns an upper cased Code
func NewCode(c string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(c)))
}

// String implements fmt.Stringer
func (c Code) String() string {
	return string(c)
}

// Lower returns the lower case representation of the code
func (c Code) Lower() string {
	return strings.ToLower(string(c))
}
