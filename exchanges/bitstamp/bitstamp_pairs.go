package bitstamp

import "github.com/thrasher-corp/gctconnect/currency"

var pairTokens = map[currency.Pair]string{
	currency.BTCUSD: "btcusd",
	currency.BTCEUR: "btceur",
	currency.EURUSD: "eurusd",
	currency.XRPUSD: "xrpusd",
	currency.XRPEUR: "xrpeur",
	currency.XRPBTC: "xrpbtc",
	currency.LTCUSD: "ltcusd",
	currency.LTCEUR: "ltceur",
	currency.LTCBTC: "ltcbtc",
	currency.ETHUSD: "ethusd",
	currency.ETHEUR: "etheur",
	currency.ETHBTC: "ethbtc",
	currency.BCHUSD: "bchusd",
	currency.BCHEUR: "bcheur",
	currency.BCHBTC: "bchbtc",
}

// GetPairString returns the Bitstamp token for p and false when Bitstamp
// does not list the pair
func GetPairString(p currency.Pair) (string, bool) {
	token, ok := pairTokens[p]
	return token, ok
}

// SupportedPairs returns the supported pairs in canonical order
func SupportedPairs() []currency.Pair {
	var pairs []currency.Pair
	for _, p := range currency.AllPairs() {
		if _, ok := pairTokens[p]; ok {
			pairs = append(pairs, p)
		}
	}
	return pairs
}
