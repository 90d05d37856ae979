package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 2
	argonMemory  = 19 * 1024 // 19 MB, runs on every command invocation
	argonThreads = 1
	keyLen       = 32 // 256-bit
	saltLen      = 16
)

// DeriveStoreKey stretches the application key with the record salt using
// Argon2id. The result is the root key for all field subkeys.
func DeriveStoreKey(appKey, salt []byte) []byte {
	return argon2.IDKey(appKey, salt, argonTime, argonMemory, argonThreads, keyLen)
}

// GenerateSalt returns 16 bytes of cryptographically secure random data.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// Zero overwrites b in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
