package config

import "errors"

// Constants declared here are filename strings and test strings
const (
	// EnvPrefix prefixes environment variables that override file values,
	// for example GCTCONNECT_ACCOUNT_KRAKEN_API_KEY
	EnvPrefix = "GCTCONNECT"
	// DefaultEnvFile is loaded by LoadEnv when no path is supplied
	DefaultEnvFile = ".env"
)

var (
	errAccountNotFound  = errors.New("account not found")
	errAccountNameEmpty = errors.New("account name is empty")
	errExchangeUnset    = errors.New("exchange unset")
	errAPIKeyUnset      = errors.New("api_key unset")
	errAPISecretUnset   = errors.New("api_secret unset")
	errNoAccounts       = errors.New("no accounts found")
)

// Account is a named set of exchange credentials
type Account struct {
	Name       string `mapstructure:"-" json:"-"`
	Exchange   string `mapstructure:"exchange" json:"exchange"`
	APIKey     string `mapstructure:"api_key" json:"api_key"`
	APISecret  string `mapstructure:"api_secret" json:"api_secret"`
	CustomerID string `mapstructure:"customer_id" json:"customer_id,omitempty"`
}

// Accounts are keyed by lower case account name
type Accounts map[string]Account
