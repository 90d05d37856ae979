package store

import (
	"path/filepath"
	"testing"
	"time"
)

func tmpDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_CreatesSchema(t *testing.T) {
	db := tmpDB(t)
	for _, table := range []string{"credential_fields", "store_meta"} {
		var name string
		err := db.conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s not found: %v", table, err)
		}
	}
}

// fieldNamed returns the stored row for name, or nil.
func fieldNamed(t *testing.T, db *DB, name string) *Field {
	t.Helper()
	fields, err := db.ListFields()
	if err != nil {
		t.Fatal(err)
	}
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	db.SetField(Field{Name: "email", Value: "enc"})
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	f := fieldNamed(t, db, "email")
	if f == nil || f.Value != "enc" {
		t.Fatalf("expected persisted field, got %+v", f)
	}
	if db.Path() != path {
		t.Fatalf("expected path %s, got %s", path, db.Path())
	}
}

func TestSetMeta_GetMeta(t *testing.T) {
	db := tmpDB(t)
	if err := db.SetMeta("salt", "value1"); err != nil {
		t.Fatal(err)
	}
	db.SetMeta("salt", "value2")
	val, err := db.GetMeta("salt")
	if err != nil {
		t.Fatal(err)
	}
	if val != "value2" {
		t.Fatalf("expected value2, got %s", val)
	}
}

func TestGetMeta_NotFound(t *testing.T) {
	db := tmpDB(t)
	val, err := db.GetMeta("nonexistent")
	if err != nil {
		t.Fatal(err)
	}
	if val != "" {
		t.Fatalf("expected empty string, got %s", val)
	}
}

func TestSetField_InsertAndOverwrite(t *testing.T) {
	db := tmpDB(t)
	if err := db.SetField(Field{Name: "apiToken", Value: "v1", UpdatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := db.SetField(Field{Name: "apiToken", Value: "v2"}); err != nil {
		t.Fatal(err)
	}

	f := fieldNamed(t, db, "apiToken")
	if f == nil {
		t.Fatal("field not found")
	}
	if f.Value != "v2" {
		t.Fatalf("expected v2, got %s", f.Value)
	}
	if f.UpdatedAt.IsZero() {
		t.Fatal("expected updated_at to be set")
	}
}

func TestListFields_Ordered(t *testing.T) {
	db := tmpDB(t)
	db.SetField(Field{Name: "jiraUrl", Value: "a"})
	db.SetField(Field{Name: "apiToken", Value: "b"})
	db.SetField(Field{Name: "email", Value: "c"})

	fields, err := db.ListFields()
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].Name != "apiToken" || fields[2].Name != "jiraUrl" {
		t.Fatalf("unexpected order: %v", fields)
	}
}

func TestReset_RemovesEverything(t *testing.T) {
	db := tmpDB(t)
	db.SetField(Field{Name: "email", Value: "enc"})
	db.SetField(Field{Name: "apiToken", Value: "enc"})
	db.SetMeta("salt", "abc")

	if err := db.Reset(); err != nil {
		t.Fatal(err)
	}

	fields, _ := db.ListFields()
	if len(fields) != 0 {
		t.Fatalf("expected 0 fields, got %d", len(fields))
	}
	salt, _ := db.GetMeta("salt")
	if salt != "" {
		t.Fatalf("expected salt removed, got %q", salt)
	}
}
