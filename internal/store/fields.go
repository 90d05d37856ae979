package store

import "time"

// Field represents a row in credential_fields.
type Field struct {
	Name      string
	Value     string // encrypted ciphertext (base64)
	UpdatedAt time.Time
}

// SetField upserts a field by name.
func (d *DB) SetField(f Field) error {
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = time.Now()
	}
	_, err := d.conn.Exec(
		`INSERT INTO credential_fields (name, value, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		f.Name, f.Value, f.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ListFields returns all fields ordered by name.
func (d *DB) ListFields() ([]Field, error) {
	rows, err := d.conn.Query("SELECT name, value, updated_at FROM credential_fields ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []Field
	for rows.Next() {
		var f Field
		var updatedAt string
		if err := rows.Scan(&f.Name, &f.Value, &updatedAt); err != nil {
			return nil, err
		}
		f.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		fields = append(fields, f)
	}
	return fields, rows.Err()
}
