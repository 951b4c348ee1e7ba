package common

import (
	"crypto/rand"
	"encoding/hex"
)

// SessionTokenBytes is the number of random bytes in a freshly minted
// session token (128 bits, hex-encoded to 32 characters).
const SessionTokenBytes = 16

// MakeRandHexString generates a random hexadecimal string of the given size
// in bytes. The resulting string is twice as long, since each byte encodes
// to two hex characters.
//
// It returns an error only if the system random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
