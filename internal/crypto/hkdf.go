package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveFieldKey derives a 256-bit subkey for one credential field.
// Uses HKDF-SHA256 with the record salt and the field name as info.
func DeriveFieldKey(storeKey, salt []byte, field string) ([]byte, error) {
	r := hkdf.New(sha256.New, storeKey, salt, []byte("jira-assets/"+field))
	subkey := make([]byte, keyLen)
	if _, err := io.ReadFull(r, subkey); err != nil {
		return nil, fmt.Errorf("deriving subkey for %s: %w", field, err)
	}
	return subkey, nil
}
