package database

import (
	"database/sql"
	"fmt"
	"time"
)

// GetSetting retrieves a bot setting by key.
// Returns an empty string if the key is not set.
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	query := `SELECT value FROM bot_settings WHERE key = ?`
	err := db.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

// SetSetting sets a bot setting
func (db *DB) SetSetting(key, value string) error {
	query := `
		INSERT INTO bot_settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	_, err := db.conn.Exec(query, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// DeleteSetting removes a bot setting
func (db *DB) DeleteSetting(key string) error {
	_, err := db.conn.Exec(`DELETE FROM bot_settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
