package store

import (
	"database/sql"
	"errors"
)

// SetMeta upserts a key-value pair in store_meta.
func (d *DB) SetMeta(key, value string) error {
	_, err := d.conn.Exec(
		`INSERT INTO store_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetMeta retrieves a value by key. Returns empty string if not found.
func (d *DB) GetMeta(key string) (string, error) {
	var value string
	err := d.conn.QueryRow("SELECT value FROM store_meta WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}
