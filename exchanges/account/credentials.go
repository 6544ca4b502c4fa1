package account

import (
	"errors"
	"fmt"
)

const apiKeyDisplaySize = 16

var (
	errKeyUnset      = errors.New("api key unset")
	errSecretUnset   = errors.New("api secret unset")
	errClientIDUnset = errors.New("customer id unset")
)

// Credentials define parameters that allow for an authenticated request.
// A Credentials value is owned by exactly one exchange client and is not
// modified after construction.
type Credentials struct {
	Key      string
	Secret   string
	ClientID string // Bitstamp customer id
}

// String prints out basic credential info (obfuscated) to track key instances
// associated with exchanges.
func (c *Credentials) String() string {
	obfuscated := c.Key
	if len(obfuscated) > apiKeyDisplaySize {
		obfuscated = obfuscated[:apiKeyDisplaySize]
	}
	return fmt.Sprintf("Key:[%s...] ClientID:[%s]", obfuscated, c.ClientID)
}

// IsEmpty return true if the underlying credentials type has not been filled
// with at least one item.
func (c *Credentials) IsEmpty() bool {
	return c == nil || c.ClientID == "" && c.Key == "" && c.Secret == ""
}

// Validate checks the fields an exchange needs for signing
func (c *Credentials) Validate(requiresClientID bool) error {
	if c == nil || c.Key == "" {
		return errKeyUnset
	}
	if c.Secret == "" {
		return errSecretUnset
	}
	if requiresClientID && c.ClientID == "" {
		return errClientIDUnset
	}
	return nil
}
