package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/gctconnect/common"
	"github.com/thrasher-corp/gctconnect/config"
	"github.com/thrasher-corp/gctconnect/currency"
	exchange "github.com/thrasher-corp/gctconnect/exchanges"
	"github.com/thrasher-corp/gctconnect/exchanges/account"
	"github.com/thrasher-corp/gctconnect/exchanges/bitstamp"
	"github.com/thrasher-corp/gctconnect/exchanges/kraken"
	"github.com/thrasher-corp/gctconnect/exchanges/mock"
)

const testAccounts = `{
	"account_kraken": {"exchange": "kraken", "api_key": "key", "api_secret": "c2VjcmV0"},
	"account_bitstamp": {"exchange": "Bitstamp", "api_key": "key", "api_secret": "secret", "customer_id": "123456"},
	"account_poloniex": {"exchange": "poloniex", "api_key": "key", "api_secret": "secret"},
	"account_kraken_2": {"exchange": "kraken", "api_key": "key2", "api_secret": "c2VjcmV0"}
}`

func writeAccounts(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.json")
	require.NoError(t, os.WriteFile(path, []byte(testAccounts), 0o600))
	return path
}

func TestNewExchangeByName(t *testing.T) {
	t.Parallel()
	for _, name := range Exchanges() {
		exch, err := NewExchangeByName(name, account.Credentials{})
		require.NoError(t, err)
		assert.NotEmpty(t, exch.GetName())
	}
	exch, err := NewExchangeByName(" KRAKEN ", account.Credentials{})
	require.NoError(t, err)
	assert.IsType(t, &kraken.Kraken{}, exch)

	_, err = NewExchangeByName("Poloniex", account.Credentials{})
	assert.ErrorIs(t, err, ErrExchangeUnsupported)
	_, err = NewExchangeByName("btce", account.Credentials{})
	assert.ErrorIs(t, err, common.ErrUnknownExchange)
}

func TestNewExchangeFromFile(t *testing.T) {
	t.Parallel()
	path := writeAccounts(t)

	exch, err := NewExchangeFromFile("account_bitstamp", path)
	require.NoError(t, err)
	b, ok := exch.(*bitstamp.Bitstamp)
	require.True(t, ok)
	assert.Equal(t, "123456", b.Credentials.ClientID)

	exch, err = NewExchangeFromFile("account_kraken", path)
	require.NoError(t, err)
	assert.Equal(t, kraken.Name, exch.GetName())

	_, err = NewExchangeFromFile("account_poloniex", path)
	assert.ErrorIs(t, err, ErrExchangeUnsupported)
	_, err = NewExchangeFromFile("account_missing", path)
	assert.Error(t, err)
	_, err = NewExchangeFromFile("account_kraken", filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewExchangeFromAccount(nil)
	assert.ErrorIs(t, err, common.ErrNilPointer)
}

func TestNewExchangeFromFileOptions(t *testing.T) {
	t.Parallel()
	s := mock.NewServer(t, map[string]mock.Response{
		"/0/public/Ticker": {Body: `{"error":[],"result":{"XXBTZUSD":{"c":["100.5","0"],"a":["101.0","0"],"b":["100.0","0"],"v":["0","50.0"]}}}`},
	})
	exch, err := NewExchangeFromFile("account_kraken", writeAccounts(t),
		exchange.WithAPIURL(s.URL), exchange.WithHTTPClient(s.Client()))
	require.NoError(t, err)
	tick, err := exch.Ticker(context.Background(), currency.BTCUSD)
	require.NoError(t, err)
	assert.Equal(t, 100.5, tick.Last)
}

func TestExchangeManager(t *testing.T) {
	t.Parallel()
	m := NewExchangeManager()
	_, err := m.GetExchangeByName("kraken")
	assert.ErrorIs(t, err, ErrNoExchangesLoaded)
	assert.ErrorIs(t, m.RemoveExchange("kraken"), ErrNoExchangesLoaded)
	assert.ErrorIs(t, m.Add(nil), errExchangeIsNil)

	require.NoError(t, m.Add(kraken.New(account.Credentials{})))
	assert.ErrorIs(t, m.Add(kraken.New(account.Credentials{})), ErrExchangeAlreadyLoaded)
	require.NoError(t, m.Add(bitstamp.New(account.Credentials{})))

	exch, err := m.GetExchangeByName("KRAKEN")
	require.NoError(t, err)
	assert.Equal(t, kraken.Name, exch.GetName())
	_, err = m.GetExchangeByName("poloniex")
	assert.ErrorIs(t, err, ErrExchangeNotFound)

	exchs, err := m.GetExchanges()
	require.NoError(t, err)
	require.Len(t, exchs, 2)
	assert.Equal(t, bitstamp.Name, exchs[0].GetName())

	require.NoError(t, m.RemoveExchange("Kraken"))
	assert.ErrorIs(t, m.RemoveExchange("Kraken"), ErrExchangeNotFound)

	var nilManager *ExchangeManager
	assert.ErrorIs(t, nilManager.Add(exch), common.ErrNilPointer)
	_, err = nilManager.GetExchanges()
	assert.ErrorIs(t, err, common.ErrNilPointer)
}

func TestExchangeManagerLoadAccounts(t *testing.T) {
	t.Parallel()
	accounts, err := config.ReadAccounts([]byte(testAccounts))
	require.NoError(t, err)

	m := NewExchangeManager()
	n, err := m.LoadAccounts(accounts)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "unsupported and repeated exchanges should be skipped")

	_, err = NewExchangeManager().LoadAccounts(config.Accounts{})
	assert.ErrorIs(t, err, ErrNoExchangesLoaded)
}
