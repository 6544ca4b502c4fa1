package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thrasher-corp/gctconnect/config"
	"github.com/thrasher-corp/gctconnect/log"
	"github.com/urfave/cli/v2"
)

const version = "v0.1.0"

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "gctconnect"
	app.Version = version
	app.EnableBashCompletion = true
	app.Usage = "command line interface for querying and trading on Bitstamp and Kraken"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "keys.json",
			Usage:   "the accounts file holding exchange credentials",
			EnvVars: []string{config.EnvPrefix + "_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "account",
			Aliases: []string{"a"},
			Usage:   "the account within the accounts file to use",
			EnvVars: []string{config.EnvPrefix + "_ACCOUNT"},
		},
		&cli.StringFlag{
			Name:    "exchange",
			Aliases: []string{"e"},
			Usage:   "the exchange to act on without credentials, ignored when an account is set",
		},
		&cli.StringFlag{
			Name:    "encryptionkey",
			Usage:   "the key used to decrypt an encrypted accounts file",
			EnvVars: []string{config.EnvPrefix + "_ENCRYPTION_KEY"},
		},
		&cli.StringFlag{
			Name:  "env",
			Value: config.DefaultEnvFile,
			Usage: "dotenv file loaded before the accounts file, missing files are ignored",
		},
		&cli.StringFlag{
			Name:   "apiurl",
			Usage:  "overrides the exchange REST endpoint",
			Hidden: true,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "prints results as JSON",
		},
		&cli.BoolFlag{
			Name:  "nocolour",
			Usage: "disables coloured output",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "logs every request and response",
		},
	}
	app.Before = setup
	app.Commands = []*cli.Command{
		tickerCommand,
		orderbookCommand,
		addOrderCommand,
		pairsCommand,
		accountsCommand,
		encryptCommand,
	}
	return app
}

// setup loads the dotenv file and configures logging before any command runs
func setup(c *cli.Context) error {
	if envFile := c.String("env"); envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := config.LoadEnv(envFile); err != nil {
				return err
			}
		}
	}
	logCfg := log.GenDefaultSettings()
	logCfg.Output = "stderr"
	if c.Bool("verbose") {
		logCfg.Level = "DEBUG|INFO|WARN|ERROR"
	}
	return log.SetupGlobalLogger(&logCfg)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
