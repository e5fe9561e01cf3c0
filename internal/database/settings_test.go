package database

import (
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewTest()
	if err != nil {
		t.Fatalf("NewTest() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSettings(t *testing.T) {
	db := newTestDB(t)

	// Unset key reads back empty, not an error
	value, err := db.GetSetting("missing")
	if err != nil {
		t.Fatalf("GetSetting(missing) error: %v", err)
	}
	if value != "" {
		t.Errorf("GetSetting(missing) = %q, want empty", value)
	}

	if err := db.SetSetting("owner_id", "42"); err != nil {
		t.Fatalf("SetSetting() error: %v", err)
	}
	value, err = db.GetSetting("owner_id")
	if err != nil {
		t.Fatalf("GetSetting() error: %v", err)
	}
	if value != "42" {
		t.Errorf("GetSetting(owner_id) = %q, want 42", value)
	}

	// Upsert overwrites
	if err := db.SetSetting("owner_id", "7"); err != nil {
		t.Fatalf("SetSetting(overwrite) error: %v", err)
	}
	value, _ = db.GetSetting("owner_id")
	if value != "7" {
		t.Errorf("GetSetting(owner_id) = %q after overwrite, want 7", value)
	}

	if err := db.DeleteSetting("owner_id"); err != nil {
		t.Fatalf("DeleteSetting() error: %v", err)
	}
	value, _ = db.GetSetting("owner_id")
	if value != "" {
		t.Errorf("GetSetting(owner_id) = %q after delete, want empty", value)
	}
}

func TestDeleteSetting_AbsentIsNoOp(t *testing.T) {
	db := newTestDB(t)

	if err := db.DeleteSetting("never-set"); err != nil {
		t.Errorf("DeleteSetting(never-set) = %v, want nil", err)
	}
}
