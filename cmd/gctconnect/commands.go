package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/thrasher-corp/gctconnect/config"
	"github.com/thrasher-corp/gctconnect/currency"
	"github.com/thrasher-corp/gctconnect/engine"
	"github.com/thrasher-corp/gctconnect/exchanges/account"
	"github.com/thrasher-corp/gctconnect/exchanges/order"
	"github.com/thrasher-corp/gctconnect/exchanges/orderbook"
	"github.com/urfave/cli/v2"
	"github.com/volatiletech/null"
)

var pairFlag = &cli.StringFlag{
	Name:    "pair",
	Aliases: []string{"p"},
	Usage:   "the currency pair, for example btc-usd",
}

var tickerCommand = &cli.Command{
	Name:      "ticker",
	Usage:     "gets the latest ticker for a currency pair",
	ArgsUsage: "<pair>",
	Flags:     []cli.Flag{pairFlag},
	Action:    getTicker,
}

func getTicker(c *cli.Context) error {
	p, err := getPair(c)
	if err != nil {
		return err
	}
	exch, err := getExchange(c)
	if err != nil {
		return err
	}
	tick, err := exch.Ticker(c.Context, p)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return jsonOutput(c, tick)
	}
	au := colours(c)
	volume := "n/a"
	if tick.Volume.Valid {
		volume = fmt.Sprint(tick.Volume.Float64)
	}
	_, err = fmt.Fprintf(c.App.Writer, "%s %s last: %v bid: %v ask: %v volume: %s\n",
		au.Bold(tick.ExchangeName),
		au.Cyan(tick.Pair),
		au.Bold(tick.Last),
		au.Green(tick.Bid),
		au.Red(tick.Ask),
		volume)
	return err
}

var orderbookCommand = &cli.Command{
	Name:      "orderbook",
	Usage:     "gets the current orderbook for a currency pair",
	ArgsUsage: "<pair>",
	Flags: []cli.Flag{
		pairFlag,
		&cli.IntFlag{
			Name:  "depth",
			Value: 10,
			Usage: "the number of levels printed per side, 0 prints every level",
		},
	},
	Action: getOrderbook,
}

func getOrderbook(c *cli.Context) error {
	p, err := getPair(c)
	if err != nil {
		return err
	}
	exch, err := getExchange(c)
	if err != nil {
		return err
	}
	book, err := exch.Orderbook(c.Context, p)
	if err != nil {
		return err
	}
	if depth := c.Int("depth"); depth > 0 {
		if len(book.Asks) > depth {
			book.Asks = book.Asks[:depth]
		}
		if len(book.Bids) > depth {
			book.Bids = book.Bids[:depth]
		}
	}
	if c.Bool("json") {
		return jsonOutput(c, book)
	}
	au := colours(c)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s orderbook\n", au.Bold(book.ExchangeName), au.Cyan(book.Pair))
	writeLevels := func(side string, levels orderbook.Levels, colour func(any) fmt.Stringer) {
		fmt.Fprintf(&sb, "%s (%d levels, %v total)\n", side, len(levels), levels.TotalAmount())
		for i := range levels {
			fmt.Fprintf(&sb, "  %v @ %v\n", levels[i].Amount, colour(levels[i].Price))
		}
	}
	writeLevels("asks", book.Asks, func(v any) fmt.Stringer { return au.Red(v) })
	writeLevels("bids", book.Bids, func(v any) fmt.Stringer { return au.Green(v) })
	_, err = fmt.Fprint(c.App.Writer, sb.String())
	return err
}

var addOrderCommand = &cli.Command{
	Name:  "addorder",
	Usage: "places an order, requires an account",
	Flags: []cli.Flag{
		pairFlag,
		&cli.StringFlag{
			Name:     "type",
			Aliases:  []string{"t"},
			Usage:    "the order type: buylimit, buymarket, selllimit or sellmarket",
			Required: true,
		},
		&cli.Float64Flag{
			Name:     "amount",
			Usage:    "the quantity of the base currency",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  "price",
			Usage: "the limit price, ignored for market orders",
		},
	},
	Action: addOrder,
}

func addOrder(c *cli.Context) error {
	if c.String("account") == "" {
		return fmt.Errorf("addorder: %w", errNoExchangeOrAccount)
	}
	t, err := order.StringToType(c.String("type"))
	if err != nil {
		return err
	}
	p, err := getPair(c)
	if err != nil {
		return err
	}
	var price null.Float64
	if c.IsSet("price") {
		price = null.Float64From(c.Float64("price"))
	}
	exch, err := getExchange(c)
	if err != nil {
		return err
	}
	info, err := exch.AddOrder(c.Context, t, p, c.Float64("amount"), price)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return jsonOutput(c, info)
	}
	au := colours(c)
	_, err = fmt.Fprintf(c.App.Writer, "%s %s %s order placed: %s\n",
		au.Bold(info.ExchangeName),
		au.Yellow(t),
		au.Cyan(p),
		au.Bold(strings.Join(info.IDs, ", ")))
	return err
}

var pairsCommand = &cli.Command{
	Name:   "pairs",
	Usage:  "lists the currency pairs supported by each exchange",
	Action: getPairs,
}

func getPairs(c *cli.Context) error {
	names := engine.Exchanges()
	if name := c.String("exchange"); name != "" {
		names = []string{name}
	}
	exchNames := make([]string, 0, len(names))
	supported := make(map[string][]currency.Pair, len(names))
	for _, name := range names {
		exch, err := engine.NewExchangeByName(name, account.Credentials{}, exchangeOptions(c)...)
		if err != nil {
			return err
		}
		pairs := []currency.Pair{}
		for _, p := range currency.AllPairs() {
			if exch.SupportsPair(p) {
				pairs = append(pairs, p)
			}
		}
		exchNames = append(exchNames, exch.GetName())
		supported[exch.GetName()] = pairs
	}
	if c.Bool("json") {
		return jsonOutput(c, supported)
	}
	au := colours(c)
	for _, name := range exchNames {
		pairs := supported[name]
		strs := make([]string, len(pairs))
		for i := range pairs {
			strs[i] = pairs[i].String()
		}
		if _, err := fmt.Fprintf(c.App.Writer, "%s: %s\n", au.Bold(name), strings.Join(strs, " ")); err != nil {
			return err
		}
	}
	return nil
}

var accountsCommand = &cli.Command{
	Name:   "accounts",
	Usage:  "lists the accounts in the accounts file",
	Action: getAccounts,
}

type accountSummary struct {
	Name        string `json:"name"`
	Exchange    string `json:"exchange"`
	Credentials string `json:"credentials"`
	Valid       bool   `json:"valid"`
}

func getAccounts(c *cli.Context) error {
	accounts, err := loadAccounts(c)
	if err != nil {
		return err
	}
	summaries := make([]accountSummary, 0, len(accounts))
	for _, name := range accounts.Names() {
		acc := accounts[name]
		creds := acc.Credentials()
		summaries = append(summaries, accountSummary{
			Name:        name,
			Exchange:    acc.Exchange,
			Credentials: creds.String(),
			Valid:       acc.Validate() == nil,
		})
	}
	if c.Bool("json") {
		return jsonOutput(c, summaries)
	}
	au := colours(c)
	for i := range summaries {
		status := au.Green("ok")
		if !summaries[i].Valid {
			status = au.Red("invalid")
		}
		if _, err := fmt.Fprintf(c.App.Writer, "%s %s %s %s\n",
			au.Bold(summaries[i].Name),
			summaries[i].Exchange,
			summaries[i].Credentials,
			status); err != nil {
			return err
		}
	}
	return nil
}

var encryptCommand = &cli.Command{
	Name:  "encrypt",
	Usage: "encrypts the accounts file with --encryptionkey, the output keeps the input format",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "the path the encrypted accounts file is written to",
			Required: true,
		},
	},
	Action: encryptAccounts,
}

func encryptAccounts(c *cli.Context) error {
	key := c.String("encryptionkey")
	if key == "" {
		return errEncryptionKeyUnset
	}
	data, err := os.ReadFile(c.String("config"))
	if err != nil {
		return err
	}
	if config.IsEncrypted(data) {
		return fmt.Errorf("%s is already encrypted", c.String("config"))
	}
	format := config.FileFormat(c.String("config"))
	if out := config.FileFormat(c.String("output")); out != format {
		return fmt.Errorf("%w: %s holds %s, output would be read as %s", errFormatMismatch, c.String("config"), format, out)
	}
	if _, err := config.ReadAccountsFormat(data, format); err != nil {
		return err
	}
	enc, err := config.EncryptAccounts(data, []byte(key))
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.String("output"), enc, 0o600); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "encrypted accounts written to %s\n", c.String("output"))
	return err
}
