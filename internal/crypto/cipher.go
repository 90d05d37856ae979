package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const nonceLen = 12 // 96-bit nonce for GCM

// ErrCiphertextTooShort is returned when the input cannot hold a nonce and a tag.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return aead, nil
}

// Seal encrypts plaintext with AES-256-GCM using a random 12-byte nonce.
// aad is authenticated but not encrypted; Open must be given the same aad.
// Returns nonce || ciphertext+tag.
func Seal(key, plaintext, aad []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLen, nonceLen+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, aad), nil
}

// Open decrypts data produced by Seal.
func Open(key, data, aad []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(data) < nonceLen+aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}

	plaintext, err := aead.Open(nil, data[:nonceLen], data[nonceLen:], aad)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// SealString encrypts a string value and returns base64 for text columns.
func SealString(key []byte, value, aad string) (string, error) {
	data, err := Seal(key, []byte(value), []byte(aad))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// OpenString decodes base64 and decrypts a value sealed by SealString.
func OpenString(key []byte, encoded, aad string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding base64: %w", err)
	}
	plaintext, err := Open(key, data, []byte(aad))
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
