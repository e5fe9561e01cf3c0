// Package user manages the bot owner identity: the configured owner id,
// the claimed owner id stored in settings, and the verification password.
package user

import (
	"fmt"
	"strconv"

	"github.com/yourusername/lumina/internal/database"
)

const (
	// OwnerIDKey is the key used to store the claimed owner id in bot_settings
	OwnerIDKey = "owner_id"
)

// Manager provides owner identity operations backed by the settings store
type Manager struct {
	db *database.DB

	// configuredOwnerID comes from the config file and always wins over a
	// claimed id when set
	configuredOwnerID int64
}

// NewManager creates a new owner identity manager
func NewManager(db *database.DB, configuredOwnerID int64) *Manager {
	return &Manager{
		db:                db,
		configuredOwnerID: configuredOwnerID,
	}
}

// OwnerID resolves the effective owner id. The configured id takes
// precedence; otherwise the claimed id from settings is used. Returns 0
// when no owner is known, which denies all restricted commands.
func (m *Manager) OwnerID() (int64, error) {
	if m.configuredOwnerID != 0 {
		return m.configuredOwnerID, nil
	}

	value, err := m.db.GetSetting(OwnerIDKey)
	if err != nil {
		return 0, fmt.Errorf("failed to get owner id: %w", err)
	}
	if value == "" {
		return 0, nil
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stored owner id is not numeric: %w", err)
	}
	return id, nil
}

// SetOwner stores the claimed owner id in settings
func (m *Manager) SetOwner(userID int64) error {
	if err := m.db.SetSetting(OwnerIDKey, strconv.FormatInt(userID, 10)); err != nil {
		return fmt.Errorf("failed to store owner id: %w", err)
	}
	return nil
}
