package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/thrasher-corp/gctconnect/exchanges/account"
	"github.com/thrasher-corp/gctconnect/log"
)

// LoadAccounts reads a credentials file. The format follows the file
// extension (json, yaml, toml); files without an extension are read as JSON.
// Encrypted files are rejected, use LoadEncryptedAccounts for those.
func LoadAccounts(path string) (Accounts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if IsEncrypted(data) {
		return nil, fmt.Errorf("%s: %w", path, errEncryptedNoKey)
	}
	return readAccounts(data, FileFormat(path))
}

// LoadEncryptedAccounts reads a credentials file written by
// EncryptAccounts. Plain files are read as they are. The decrypted content
// is parsed in the format named by the file extension, so an encrypted YAML
// file keeps its .yaml extension.
func LoadEncryptedAccounts(path string, key []byte) (Accounts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if IsEncrypted(data) {
		if data, err = DecryptAccounts(data, key); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return readAccounts(data, FileFormat(path))
}

// ReadAccounts parses JSON account data
func ReadAccounts(data []byte) (Accounts, error) {
	return readAccounts(data, "json")
}

// ReadAccountsFormat parses account data in format (json, yaml or toml)
func ReadAccountsFormat(data []byte, format string) (Accounts, error) {
	return readAccounts(data, format)
}

func readAccounts(data []byte, format string) (Accounts, error) {
	v := viper.New()
	v.SetConfigType(format)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}

	raw := make(map[string]Account)
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}
	if len(raw) == 0 {
		return nil, errNoAccounts
	}
	accounts := make(Accounts, len(raw))
	for name, a := range raw {
		a.Name = name
		accounts[strings.ToLower(name)] = a
	}
	log.Debugf(log.ConfigMgr, "Loaded %d account(s)", len(accounts))
	return accounts, nil
}

// Get returns the named account after checking it carries credentials.
// Names are case insensitive.
func (a Accounts) Get(name string) (Account, error) {
	if name == "" {
		return Account{}, errAccountNameEmpty
	}
	acc, ok := a[strings.ToLower(name)]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", errAccountNotFound, name)
	}
	if err := acc.Validate(); err != nil {
		return Account{}, fmt.Errorf("account %s: %w", name, err)
	}
	return acc, nil
}

// Names returns the sorted account names
func (a Accounts) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Validate checks the fields every exchange needs. Exchange specific
// requirements such as a customer id are checked by the exchange.
func (a *Account) Validate() error {
	if a.Exchange == "" {
		return errExchangeUnset
	}
	if a.APIKey == "" {
		return errAPIKeyUnset
	}
	if a.APISecret == "" {
		return errAPISecretUnset
	}
	return nil
}

// Credentials converts the account to exchange credentials
func (a *Account) Credentials() account.Credentials {
	return account.Credentials{
		Key:      a.APIKey,
		Secret:   a.APISecret,
		ClientID: a.CustomerID,
	}
}

// LoadEnv loads environment files into the process environment without
// overriding variables that are already set. DefaultEnvFile is used when no
// path is supplied.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultEnvFile}
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("loading env: %w", err)
	}
	log.Debugf(log.ConfigMgr, "Loaded environment from %s", strings.Join(paths, ", "))
	return nil
}

// FileFormat returns the accounts format for path from its extension. Files
// without a known extension are JSON.
func FileFormat(path string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}
