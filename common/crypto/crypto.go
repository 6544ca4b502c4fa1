package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"hash"
	"strings"
)

// Hash types supported by GetHMAC
const (
	HashSHA256 = iota
	HashSHA512
)

var errUnsupportedHashType = errors.New("unsupported hash type")

// HexEncodeToString returns the lower case hex encoding of input
func HexEncodeToString(input []byte) string {
	return hex.EncodeToString(input)
}

// HexEncodeToUpperString returns the upper case hex encoding of input
func HexEncodeToUpperString(input []byte) string {
	return strings.ToUpper(hex.EncodeToString(input))
}

// Base64Decode takes in a Base64 string and returns a byte array and an error
func Base64Decode(input string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(input)
}

// Base64Encode takes in a byte array then returns an encoded base64 string
func Base64Encode(input []byte) string {
	return base64.StdEncoding.EncodeToString(input)
}

// GetSHA256 returns a SHA256 hash of a byte array
func GetSHA256(input []byte) []byte {
	sum := sha256.Sum256(input)
	return sum[:]
}

// GetHMAC returns a keyed-hash message authentication code using the desired
// hashtype
func GetHMAC(hashType int, input, key []byte) ([]byte, error) {
	var hasher func() hash.Hash
	switch hashType {
	case HashSHA256:
		hasher = sha256.New
	case HashSHA512:
		hasher = sha512.New
	default:
		return nil, errUnsupportedHashType
	}
	h := hmac.New(hasher, key)
	h.Write(input)
	return h.Sum(nil), nil
}
