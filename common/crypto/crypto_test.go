package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHMAC(t *testing.T) {
	t.Parallel()
	expectedsha256 := []byte{
		54, 68, 6, 12, 32, 158, 80, 22, 142, 8, 131, 111, 248, 145, 17, 202, 224,
		59, 135, 206, 11, 170, 154, 197, 183, 28, 150, 79, 168, 105, 62, 102,
	}
	expectedsha512 := []byte{
		249, 212, 31, 38, 23, 3, 93, 220, 81, 209, 214, 112, 92, 75, 126, 40, 109,
		95, 247, 182, 210, 54, 217, 224, 199, 252, 129, 226, 97, 201, 245, 220, 37,
		201, 240, 15, 137, 236, 75, 6, 97, 12, 190, 31, 53, 153, 223, 17, 214, 11,
		153, 203, 49, 29, 158, 217, 204, 93, 179, 109, 140, 216, 202, 71,
	}

	sha256, err := GetHMAC(HashSHA256, []byte("Hello,World"), []byte("1234"))
	require.NoError(t, err, "GetHMAC must not error")
	assert.Equal(t, expectedsha256, sha256, "GetHMAC should return the correct SHA256 digest")

	sha512, err := GetHMAC(HashSHA512, []byte("Hello,World"), []byte("1234"))
	require.NoError(t, err, "GetHMAC must not error")
	assert.Equal(t, expectedsha512, sha512, "GetHMAC should return the correct SHA512 digest")

	_, err = GetHMAC(1337, []byte("Hello,World"), []byte("1234"))
	assert.ErrorIs(t, err, errUnsupportedHashType)
}

func TestGetSHA256(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HexEncodeToString(GetSHA256(nil)))
}

func TestHexEncode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0aff", HexEncodeToString([]byte{0x0a, 0xff}))
	assert.Equal(t, "0AFF", HexEncodeToUpperString([]byte{0x0a, 0xff}))
}

func TestBase64(t *testing.T) {
	t.Parallel()
	enc := Base64Encode([]byte("hello"))
	assert.Equal(t, "aGVsbG8=", enc)
	dec, err := Base64Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), dec)

	_, err = Base64Decode("!!!")
	assert.Error(t, err)
}
