package kraken

import "github.com/thrasher-corp/gctconnect/currency"

var pairTokens = map[currency.Pair]string{
	currency.BTCUSD:  "XXBTZUSD",
	currency.BTCEUR:  "XXBTZEUR",
	currency.EURUSD:  "ZEURZUSD",
	currency.ETHBTC:  "XETHXXBT",
	currency.ETHUSD:  "XETHZUSD",
	currency.ETHEUR:  "XETHZEUR",
	currency.LTCBTC:  "XLTCXXBT",
	currency.LTCUSD:  "XLTCZUSD",
	currency.LTCEUR:  "XLTCZEUR",
	currency.XRPBTC:  "XXRPXXBT",
	currency.XRPUSD:  "XXRPZUSD",
	currency.XRPEUR:  "XXRPZEUR",
	currency.BCHBTC:  "BCHXBT",
	currency.BCHUSD:  "BCHUSD",
	currency.BCHEUR:  "BCHEUR",
	currency.ETCBTC:  "XETCXXBT",
	currency.ETCUSD:  "XETCZUSD",
	currency.ZECBTC:  "XZECXXBT",
	currency.XMRBTC:  "XXMRXXBT",
	currency.DOGEBTC: "XXDGXXBT",
}

// GetPairString returns the Kraken asset pair name for p and false when
// Kraken does not list the pair
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
