package reminder

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testReminder(id string, chatID int64) Reminder {
	return Reminder{
		ID:      id,
		ChatID:  chatID,
		FireAt:  time.Now().Add(time.Hour).Truncate(time.Second),
		Payload: "payload for " + id,
		Originator: Originator{
			UserID:      42,
			DisplayName: "alice",
		},
		Duration:  Duration{Amount: 1, Unit: "h"},
		CreatedAt: time.Now().Truncate(time.Second),
	}
}

func TestFileStore_AddAndList(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "reminders.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Add(testReminder(id, 100)); err != nil {
			t.Fatalf("Add(%s) error: %v", id, err)
		}
	}

	list := store.List()
	if len(list) != 3 {
		t.Fatalf("List() has %d entries, want 3", len(list))
	}
	// Insertion order is preserved
	for i, want := range []string{"a", "b", "c"} {
		if list[i].ID != want {
			t.Errorf("List()[%d].ID = %q, want %q", i, list[i].ID, want)
		}
	}
}

func TestFileStore_ListChat(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "reminders.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	_ = store.Add(testReminder("a", 100))
	_ = store.Add(testReminder("b", 200))
	_ = store.Add(testReminder("c", 100))

	list := store.ListChat(100)
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "c" {
		t.Errorf("ListChat(100) = %v, want [a c]", list)
	}
	if got := store.ListChat(300); len(got) != 0 {
		t.Errorf("ListChat(300) has %d entries, want 0", len(got))
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	want := testReminder("survivor", 100)
	if err := store.Add(want); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore(reopen) error: %v", err)
	}
	list := reopened.List()
	if len(list) != 1 {
		t.Fatalf("reopened store has %d entries, want 1", len(list))
	}
	got := list[0]
	if got.ID != want.ID || got.ChatID != want.ChatID || got.Payload != want.Payload {
		t.Errorf("reopened reminder = %+v, want %+v", got, want)
	}
	if !got.FireAt.Equal(want.FireAt) {
		t.Errorf("reopened FireAt = %v, want %v", got.FireAt, want.FireAt)
	}
	if got.Originator != want.Originator || got.Duration != want.Duration {
		t.Errorf("reopened originator/duration = %+v/%+v, want %+v/%+v",
			got.Originator, got.Duration, want.Originator, want.Duration)
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
}

func TestFileStore_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Error("NewFileStore() = nil error for corrupt file, want error")
	}
}

func TestFileStore_RemoveAbsentIsNoOp(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "reminders.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	_ = store.Add(testReminder("a", 100))

	removed, err := store.Remove("nope")
	if err != nil {
		t.Fatalf("Remove(nope) error: %v", err)
	}
	if removed {
		t.Error("Remove(nope) = true, want false")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after absent removal, want 1", store.Len())
	}
}

func TestFileStore_Remove(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "reminders.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	_ = store.Add(testReminder("a", 100))
	_ = store.Add(testReminder("b", 100))

	removed, err := store.Remove("a")
	if err != nil {
		t.Fatalf("Remove(a) error: %v", err)
	}
	if !removed {
		t.Fatal("Remove(a) = false, want true")
	}

	list := store.List()
	if len(list) != 1 || list[0].ID != "b" {
		t.Errorf("List() = %v after removal, want [b]", list)
	}
}

func TestFileStore_FailedPersistRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	// A directory sitting at the store's path makes the next write fail
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatalf("Mkdir() error: %v", err)
	}

	if err := store.Add(testReminder("a", 100)); err == nil {
		t.Fatal("Add() = nil with unwritable path, want error")
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d after failed persist, want 0 (rolled back)", store.Len())
	}
}

func TestFileStore_FailedRemoveRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	_ = store.Add(testReminder("a", 100))

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatalf("Mkdir() error: %v", err)
	}

	removed, err := store.Remove("a")
	if err == nil || removed {
		t.Fatalf("Remove() = %v, %v with unwritable path, want false and an error", removed, err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after failed removal, want 1 (re-inserted)", store.Len())
	}
}
