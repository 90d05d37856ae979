package credentials

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lovincyrus/jira-assets/internal/crypto"
	"github.com/lovincyrus/jira-assets/internal/store"
)

// appKey is compiled into the binary. It hides the record from casual
// inspection only; anyone holding the binary can decrypt it.
const appKey = "jira-assets-cli-secret-key"

const (
	dbFileName = "credentials.db"
	saltMeta   = "salt"
)

// Store persists Credentials as an encrypted local record.
type Store struct {
	mu   sync.Mutex
	db   *store.DB
	key  []byte // store key, nil until first use
	salt []byte
}

// Open opens or creates the credential record in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	db, err := store.Open(filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	disableCoreDumps()
	return &Store{db: db}, nil
}

// Path returns the file backing the record.
func (s *Store) Path() string {
	return s.db.Path()
}

// Close zeroes the cached key and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forgetKey()
	return s.db.Close()
}

// Get returns the persisted values. Missing fields are empty strings.
func (s *Store) Get() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c Credentials
	rows, err := s.db.ListFields()
	if err != nil {
		return c, err
	}
	if len(rows) == 0 {
		return c, nil
	}

	key, salt, err := s.storeKey(false)
	if err != nil {
		return c, err
	}
	if key == nil {
		return c, fmt.Errorf("credential record has values but no salt")
	}

	for _, row := range rows {
		f, err := ParseField(row.Name)
		if err != nil {
			continue
		}
		subkey, err := crypto.DeriveFieldKey(key, salt, string(f))
		if err != nil {
			return c, err
		}
		v, err := crypto.OpenString(subkey, row.Value, string(f))
		crypto.Zero(subkey)
		if err != nil {
			return c, fmt.Errorf("decrypt field %s: %w", f, err)
		}
		c.set(f, v)
	}
	return c, nil
}

// Set encrypts and persists one field, overwriting any prior value.
func (s *Store) Set(f Field, value string) error {
	if _, err := ParseField(string(f)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key, salt, err := s.storeKey(true)
	if err != nil {
		return err
	}
	subkey, err := crypto.DeriveFieldKey(key, salt, string(f))
	if err != nil {
		return err
	}
	defer crypto.Zero(subkey)

	encrypted, err := crypto.SealString(subkey, value, string(f))
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	return s.db.SetField(store.Field{Name: string(f), Value: encrypted})
}

// HasRequired reports whether jiraUrl, email and apiToken are all set.
func (s *Store) HasRequired() (bool, error) {
	c, err := s.Get()
	if err != nil {
		return false, err
	}
	return c.Complete(), nil
}

// Clear removes every field and the record salt.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Reset(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	s.forgetKey()
	return nil
}

// storeKey loads or, when create is set, initialises the record salt and
// derives the store key. Returns a nil key for an uninitialised record.
func (s *Store) storeKey(create bool) (key, salt []byte, err error) {
	if s.key != nil {
		return s.key, s.salt, nil
	}

	saltB64, err := s.db.GetMeta(saltMeta)
	if err != nil {
		return nil, nil, err
	}
	if saltB64 == "" {
		if !create {
			return nil, nil, nil
		}
		salt, err = crypto.GenerateSalt()
		if err != nil {
			return nil, nil, fmt.Errorf("generate salt: %w", err)
		}
		if err := s.db.SetMeta(saltMeta, base64.StdEncoding.EncodeToString(salt)); err != nil {
			return nil, nil, err
		}
	} else {
		salt, err = base64.StdEncoding.DecodeString(saltB64)
		if err != nil {
			return nil, nil, fmt.Errorf("decode salt: %w", err)
		}
	}

	s.key = crypto.DeriveStoreKey([]byte(appKey), salt)
	s.salt = salt
	lockMemory(s.key)
	return s.key, s.salt, nil
}

func (s *Store) forgetKey() {
	if s.key == nil {
		return
	}
	crypto.Zero(s.key)
	unlockMemory(s.key)
	s.key = nil
	s.salt = nil
}
