package ticker

import (
	"time"

	"github.com/thrasher-corp/gctconnect/currency"
	"github.com/volatiletech/null"
)

// Price is the canonical ticker produced fresh on every call. Volume is only
// valid when the exchange reported it.
type Price struct {
	Timestamp    time.Time     `json:"timestamp"`
	Pair         currency.Pair `json:"pair"`
	ExchangeName string        `json:"exchange"`
	Last         float64       `json:"last"`
	Ask          float64       `json:"ask"`
	Bid          float64       `json:"bid"`
	Volume       null.Float64  `json:"volume"`
}
