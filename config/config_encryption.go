package config

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// EncryptConfirmString has a the general confirmation string to allow us to
	// see if the file is correctly encrypted
	EncryptConfirmString = "THORS-HAMMER"
	// SaltPrefix string
	SaltPrefix = "~GCT~SO~SALTY~"
	// SaltRandomLength is the number of random bytes to append after the prefix string
	SaltRandomLength = 12
)

var (
	errAESBlockSize   = errors.New("accounts file data is too small for the AES required block size")
	errNoPrefix       = errors.New("data does not start with Encryption Prefix")
	errKeyIsEmpty     = errors.New("key is empty")
	errEncryptedNoKey = errors.New("accounts file is encrypted and no key was supplied")
)

// EncryptAccounts encrypts account file data with a key derived from key
// through scrypt
func EncryptAccounts(data, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, errKeyIsEmpty
	}
	sessionDK, salt, err := makeNewSessionDK(key)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(sessionDK)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	out := make([]byte, 0, len(EncryptConfirmString)+len(salt)+len(ciphertext))
	out = append(out, EncryptConfirmString...)
	out = append(out, salt...)
	return append(out, ciphertext...), nil
}

// DecryptAccounts decrypts data written by EncryptAccounts
func DecryptAccounts(data, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, errKeyIsEmpty
	}
	if !IsEncrypted(data) {
		return nil, errNoPrefix
	}
	data = data[len(EncryptConfirmString):]
	saltLen := len(SaltPrefix) + SaltRandomLength
	if len(data) < saltLen || !bytes.HasPrefix(data, []byte(SaltPrefix)) {
		return nil, errNoPrefix
	}
	salt, data := data[:saltLen], data[saltLen:]

	dk, err := getScryptDK(key, salt)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(dk)
	if err != nil {
		return nil, err
	}
	if len(data) < aes.BlockSize {
		return nil, errAESBlockSize
	}
	iv, ciphertext := data[:aes.BlockSize], data[aes.BlockSize:]
	plain := make([]byte, len(ciphertext))
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(plain, ciphertext)
	return plain, nil
}

// IsEncrypted returns true if data starts with the encryption confirmation
// string
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte(EncryptConfirmString))
}

func makeNewSessionDK(key []byte) (dk, storedSalt []byte, err error) {
	storedSalt, err = getRandomSalt([]byte(SaltPrefix))
	if err != nil {
		return nil, nil, err
	}
	dk, err = getScryptDK(key, storedSalt)
	if err != nil {
		return nil, nil, err
	}
	return dk, storedSalt, nil
}

func getScryptDK(key, salt []byte) ([]byte, error) {
	return scrypt.Key(key, salt, 32768, 8, 1, 32)
}

func getRandomSalt(input []byte) ([]byte, error) {
	salt := make([]byte, SaltRandomLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return append(append([]byte{}, input...), salt...), nil
}
