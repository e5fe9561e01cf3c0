package reminder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is the durable reminder store: an in-memory list mirrored to a
// flat JSON file. Every mutation persists the whole list synchronously
// before returning, and a failed write rolls the in-memory change back, so
// memory and disk never diverge. All mutations are serialized by a mutex.
type FileStore struct {
	path      string
	mu        sync.Mutex
	reminders []Reminder
}

// NewFileStore opens the store at path, loading any previously persisted
// reminders. A missing file is an empty store, not an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Add appends a reminder and persists the list. On a write failure the
// reminder is not kept and the error propagates: the caller must tell its
// user the reminder was not saved rather than claim success.
func (s *FileStore) Add(r Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders = append(s.reminders, r)
	if err := s.persist(); err != nil {
		s.reminders = s.reminders[:len(s.reminders)-1]
		return fmt.Errorf("failed to persist reminder: %w", err)
	}
	return nil
}

// List returns the pending reminders in insertion order
func (s *FileStore) List() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// ListChat returns the pending reminders for one chat, in insertion order
func (s *FileStore) ListChat(chatID int64) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Reminder
	for _, r := range s.reminders {
		if r.ChatID == chatID {
			out = append(out, r)
		}
	}
	return out
}

// Remove filters the id out of the list and persists. It reports whether
// the id was present; removing an absent id is a no-op.
func (s *FileStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, r := range s.reminders {
		if r.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return false, nil
	}

	removed := s.reminders[index]
	s.reminders = append(s.reminders[:index], s.reminders[index+1:]...)
	if err := s.persist(); err != nil {
		// Put it back where it was so memory still matches disk
		s.reminders = append(s.reminders[:index], append([]Reminder{removed}, s.reminders[index:]...)...)
		return false, fmt.Errorf("failed to persist removal: %w", err)
	}
	return true, nil
}

// Len returns the number of pending reminders
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

// load reads the persisted list from disk. Callers hold no lock; load is
// only used during construction.
func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read reminder file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.reminders); err != nil {
		return fmt.Errorf("failed to parse reminder file: %w", err)
	}
	return nil
}

// persist overwrites the backing file with the full list. Callers must hold
// the mutex.
func (s *FileStore) persist() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create reminder directory: %w", err)
	}

	data, err := json.MarshalIndent(s.reminders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write reminder file: %w", err)
	}
	return nil
}
