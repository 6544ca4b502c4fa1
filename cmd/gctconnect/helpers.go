package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/thrasher-corp/gctconnect/config"
	"github.com/thrasher-corp/gctconnect/currency"
	"github.com/thrasher-corp/gctconnect/engine"
	exchange "github.com/thrasher-corp/gctconnect/exchanges"
	"github.com/thrasher-corp/gctconnect/exchanges/account"
	"github.com/urfave/cli/v2"
)

var (
	errNoExchangeOrAccount = errors.New("an --account or --exchange must be set")
	errPairRequired        = errors.New("--pair must be set")
	errEncryptionKeyUnset  = errors.New("--encryptionkey must be set")
	errFormatMismatch      = errors.New("output extension must match the accounts file format")
)

func loadAccounts(c *cli.Context) (config.Accounts, error) {
	if key := c.String("encryptionkey"); key != "" {
		return config.LoadEncryptedAccounts(c.String("config"), []byte(key))
	}
	return config.LoadAccounts(c.String("config"))
}

func exchangeOptions(c *cli.Context) []exchange.Option {
	opts := []exchange.Option{
		exchange.WithVerbose(c.Bool("verbose")),
		exchange.WithUserAgent(c.App.Name + "/" + c.App.Version),
	}
	if u := c.String("apiurl"); u != "" {
		opts = append(opts, exchange.WithAPIURL(u))
	}
	return opts
}

// getExchange builds the client for the selected account, or an
// unauthenticated client when only an exchange name is given
func getExchange(c *cli.Context) (exchange.IBotExchange, error) {
	if name := c.String("account"); name != "" {
		accounts, err := loadAccounts(c)
		if err != nil {
			return nil, err
		}
		acc, err := accounts.Get(name)
		if err != nil {
			return nil, err
		}
		return engine.NewExchangeFromAccount(&acc, exchangeOptions(c)...)
	}
	if name := c.String("exchange"); name != "" {
		return engine.NewExchangeByName(name, account.Credentials{}, exchangeOptions(c)...)
	}
	return nil, errNoExchangeOrAccount
}

func getPair(c *cli.Context) (currency.Pair, error) {
	raw := c.String("pair")
	if raw == "" && c.Args().Len() > 0 {
		raw = c.Args().First()
	}
	if raw == "" {
		return currency.EMPTYPAIR, errPairRequired
	}
	return currency.NewPairFromString(raw)
}

func colours(c *cli.Context) aurora.Aurora {
	return aurora.NewAurora(!c.Bool("nocolour"))
}

func jsonOutput(c *cli.Context, in any) error {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(j))
	return err
}
