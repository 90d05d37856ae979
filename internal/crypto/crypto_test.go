package crypto

import (
	"bytes"
	"errors"
	"testing"
)

var testAppKey = []byte("test-application-key")

func TestDeriveStoreKey_Deterministic(t *testing.T) {
	salt := []byte("saltsaltsaltsalt")

	k1 := DeriveStoreKey(testAppKey, salt)
	k2 := DeriveStoreKey(testAppKey, salt)

	if !bytes.Equal(k1, k2) {
		t.Fatal("same inputs should produce same key")
	}
	if len(k1) != 32 {
		t.Fatalf("expected 32-byte key, got %d", len(k1))
	}
}

func TestDeriveStoreKey_DifferentSalt(t *testing.T) {
	k1 := DeriveStoreKey(testAppKey, []byte("saltsaltsaltsalt"))
	k2 := DeriveStoreKey(testAppKey, []byte("tlastlastlastlas"))

	if bytes.Equal(k1, k2) {
		t.Fatal("different salts should produce different keys")
	}
}

func TestGenerateSalt_LengthAndUnique(t *testing.T) {
	s1, err := GenerateSalt()
	if err != nil {
		t.Fatal(err)
	}
	s2, _ := GenerateSalt()
	if len(s1) != 16 {
		t.Fatalf("expected 16-byte salt, got %d", len(s1))
	}
	if bytes.Equal(s1, s2) {
		t.Fatal("two generated salts should differ")
	}
}

func TestZero(t *testing.T) {
	b := []byte("secret")
	Zero(b)
	if !bytes.Equal(b, make([]byte, 6)) {
		t.Fatalf("expected zeroed slice, got %v", b)
	}
}

func TestSealOpen_Roundtrip(t *testing.T) {
	key := make([]byte, 32)
	copy(key, "test-key-32-bytes-long-padding!!")
	plaintext := []byte("https://example.atlassian.net")

	sealed, err := Seal(key, plaintext, []byte("jiraUrl"))
	if err != nil {
		t.Fatal(err)
	}

	opened, err := Open(key, sealed, []byte("jiraUrl"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(plaintext, opened) {
		t.Fatalf("expected %q, got %q", plaintext, opened)
	}
}

func TestSeal_DifferentNonces(t *testing.T) {
	key := make([]byte, 32)
	copy(key, "test-key-32-bytes-long-padding!!")

	e1, _ := Seal(key, []byte("same content"), nil)
	e2, _ := Seal(key, []byte("same content"), nil)

	if bytes.Equal(e1, e2) {
		t.Fatal("two encryptions of same plaintext should differ (random nonce)")
	}
}

func TestOpen_WrongAssociatedData(t *testing.T) {
	key := make([]byte, 32)
	copy(key, "test-key-32-bytes-long-padding!!")

	sealed, _ := Seal(key, []byte("token"), []byte("apiToken"))
	if _, err := Open(key, sealed, []byte("email")); err == nil {
		t.Fatal("expected error when associated data differs")
	}
}

func TestOpen_TamperedCiphertext(t *testing.T) {
	key := make([]byte, 32)
	copy(key, "test-key-32-bytes-long-padding!!")

	sealed, _ := Seal(key, []byte("secret"), nil)
	sealed[len(sealed)-1] ^= 0xff

	if _, err := Open(key, sealed, nil); err == nil {
		t.Fatal("expected error for tampered ciphertext")
	}
}

func TestOpen_TooShort(t *testing.T) {
	key := make([]byte, 32)
	_, err := Open(key, []byte("short"), nil)
	if !errors.Is(err, ErrCiphertextTooShort) {
		t.Fatalf("expected ErrCiphertextTooShort, got %v", err)
	}
}

func TestOpen_WrongKey(t *testing.T) {
	key1 := make([]byte, 32)
	key2 := make([]byte, 32)
	copy(key1, "key-one-32-bytes-long-padding!!!")
	copy(key2, "key-two-32-bytes-long-padding!!!")

	sealed, _ := Seal(key1, []byte("secret"), nil)
	if _, err := Open(key2, sealed, nil); err == nil {
		t.Fatal("expected error for wrong key")
	}
}

func TestSealOpenString_Roundtrip(t *testing.T) {
	key := make([]byte, 32)
	copy(key, "test-key-32-bytes-long-padding!!")

	encoded, err := SealString(key, "user@example.com", "email")
	if err != nil {
		t.Fatal(err)
	}
	got, err := OpenString(key, encoded, "email")
	if err != nil {
		t.Fatal(err)
	}
	if got != "user@example.com" {
		t.Fatalf("expected user@example.com, got %q", got)
	}
}

func TestOpenString_BadBase64(t *testing.T) {
	key := make([]byte, 32)
	if _, err := OpenString(key, "not base64!!", "email"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestDeriveFieldKey_DifferentFields(t *testing.T) {
	storeKey := make([]byte, 32)
	copy(storeKey, "store-key-32-bytes-long-padding!")
	salt := []byte("test-salt-16byte")

	k1, err := DeriveFieldKey(storeKey, salt, "email")
	if err != nil {
		t.Fatal(err)
	}
	k2, err := DeriveFieldKey(storeKey, salt, "apiToken")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(k1, k2) {
		t.Fatal("different fields should produce different subkeys")
	}
}

func TestDeriveFieldKey_Deterministic(t *testing.T) {
	storeKey := make([]byte, 32)
	copy(storeKey, "store-key-32-bytes-long-padding!")
	salt := []byte("test-salt-16byte")

	k1, _ := DeriveFieldKey(storeKey, salt, "jiraUrl")
	k2, _ := DeriveFieldKey(storeKey, salt, "jiraUrl")

	if !bytes.Equal(k1, k2) {
		t.Fatal("same inputs should produce same subkey")
	}
	if len(k1) != 32 {
		t.Fatalf("expected 32-byte subkey, got %d", len(k1))
	}
}
