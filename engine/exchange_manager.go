package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/thrasher-corp/gctconnect/common"
	"github.com/thrasher-corp/gctconnect/config"
	exchange "github.com/thrasher-corp/gctconnect/exchanges"
	"github.com/thrasher-corp/gctconnect/exchanges/account"
	"github.com/thrasher-corp/gctconnect/exchanges/bitstamp"
	"github.com/thrasher-corp/gctconnect/exchanges/kraken"
	"github.com/thrasher-corp/gctconnect/log"
)

// Exchange names accepted by NewExchangeByName
const (
	Bitstamp = "bitstamp"
	Kraken   = "kraken"
	// Poloniex is recognised but has no client
	Poloniex = "poloniex"
)

// vars related to exchange functions
var (
	ErrNoExchangesLoaded     = errors.New("no exchanges have been loaded")
	ErrExchangeNotFound      = errors.New("exchange not found")
	ErrExchangeAlreadyLoaded = errors.New("exchange already loaded")
	ErrExchangeUnsupported   = errors.New("exchange recognised but not supported")
	errExchangeIsNil         = errors.New("exchange is nil")
)

// Exchanges returns the names of every exchange with a client
func Exchanges() []string {
	return []string{Bitstamp, Kraken}
}

// NewExchangeByName returns a client for the named exchange. Names are case
// insensitive.
func NewExchangeByName(name string, creds account.Credentials, opts ...exchange.Option) (exchange.IBotExchange, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Bitstamp:
		return bitstamp.New(creds, opts...), nil
	case Kraken:
		return kraken.New(creds, opts...), nil
	case Poloniex:
		return nil, fmt.Errorf("%w: %s", ErrExchangeUnsupported, name)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownExchange, name)
	}
}

// NewExchangeFromAccount returns a client for the account's exchange using
// its credentials
func NewExchangeFromAccount(acc *config.Account, opts ...exchange.Option) (exchange.IBotExchange, error) {
	if acc == nil {
		return nil, fmt.Errorf("account %w", common.ErrNilPointer)
	}
	if err := acc.Validate(); err != nil {
		return nil, fmt.Errorf("account %s: %w", acc.Name, err)
	}
	return NewExchangeByName(acc.Exchange, acc.Credentials(), opts...)
}

// NewExchangeFromFile loads the named account from a credentials file and
// returns a client for it
func NewExchangeFromFile(accountName, path string, opts ...exchange.Option) (exchange.IBotExchange, error) {
	accounts, err := config.LoadAccounts(path)
	if err != nil {
		return nil, err
	}
	acc, err := accounts.Get(accountName)
	if err != nil {
		return nil, err
	}
	return NewExchangeFromAccount(&acc, opts...)
}

// ExchangeManager holds one client per exchange name. The manager is safe
// for concurrent use; the clients it holds are not.
type ExchangeManager struct {
	m         sync.Mutex
	exchanges map[string]exchange.IBotExchange
}

// NewExchangeManager creates a new exchange manager
func NewExchangeManager() *ExchangeManager {
	return &ExchangeManager{
		exchanges: make(map[string]exchange.IBotExchange),
	}
}

// Add adds an exchange
func (m *ExchangeManager) Add(exch exchange.IBotExchange) error {
	if m == nil {
		return fmt.Errorf("exchange manager: %w", common.ErrNilPointer)
	}
	if exch == nil {
		return errExchangeIsNil
	}
	name := strings.ToLower(exch.GetName())
	m.m.Lock()
	defer m.m.Unlock()
	if _, ok := m.exchanges[name]; ok {
		return fmt.Errorf("%s %w", exch.GetName(), ErrExchangeAlreadyLoaded)
	}
	m.exchanges[name] = exch
	log.Debugf(log.ExchangeSys, "%s exchange loaded", exch.GetName())
	return nil
}

// GetExchanges returns all stored exchanges ordered by name
func (m *ExchangeManager) GetExchanges() ([]exchange.IBotExchange, error) {
	if m == nil {
		return nil, fmt.Errorf("exchange manager: %w", common.ErrNilPointer)
	}
	m.m.Lock()
	defer m.m.Unlock()
	names := make([]string, 0, len(m.exchanges))
	for k := range m.exchanges {
		names = append(names, k)
	}
	sort.Strings(names)
	exchs := make([]exchange.IBotExchange, 0, len(names))
	for _, n := range names {
		exchs = append(exchs, m.exchanges[n])
	}
	return exchs, nil
}

// RemoveExchange removes an exchange from the manager
func (m *ExchangeManager) RemoveExchange(exchangeName string) error {
	if m == nil {
		return fmt.Errorf("exchange manager: %w", common.ErrNilPointer)
	}
	m.m.Lock()
	defer m.m.Unlock()
	if len(m.exchanges) == 0 {
		return ErrNoExchangesLoaded
	}
	name := strings.ToLower(exchangeName)
	if _, ok := m.exchanges[name]; !ok {
		return fmt.Errorf("%s %w", exchangeName, ErrExchangeNotFound)
	}
	delete(m.exchanges, name)
	log.Debugf(log.ExchangeSys, "%s exchange unloaded", exchangeName)
	return nil
}

// GetExchangeByName returns an exchange given an exchange name
func (m *ExchangeManager) GetExchangeByName(exchangeName string) (exchange.IBotExchange, error) {
	if m == nil {
		return nil, fmt.Errorf("exchange manager: %w", common.ErrNilPointer)
	}
	m.m.Lock()
	defer m.m.Unlock()
	if len(m.exchanges) == 0 {
		return nil, ErrNoExchangesLoaded
	}
	exch, ok := m.exchanges[strings.ToLower(exchangeName)]
	if !ok {
		return nil, fmt.Errorf("%s %w", exchangeName, ErrExchangeNotFound)
	}
	return exch, nil
}

// LoadAccounts creates a client for every valid account and adds it to the
// manager. Accounts that fail validation, name an exchange without a client
// or repeat an exchange are logged and skipped.
func (m *ExchangeManager) LoadAccounts(accounts config.Accounts, opts ...exchange.Option) (int, error) {
	if m == nil {
		return 0, fmt.Errorf("exchange manager: %w", common.ErrNilPointer)
	}
	var loaded int
	for _, name := range accounts.Names() {
		acc := accounts[name]
		exch, err := NewExchangeFromAccount(&acc, opts...)
		if err != nil {
			log.Warnf(log.ExchangeSys, "Skipping account %s: %v", name, err)
			continue
		}
		if err := m.Add(exch); err != nil {
			log.Warnf(log.ExchangeSys, "Skipping account %s: %v", name, err)
			continue
		}
		loaded++
	}
	if loaded == 0 {
		return 0, ErrNoExchangesLoaded
	}
	return loaded, nil
}
