package user

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// OwnerPasswordKey is the key used to store the owner password hash in bot_settings
	OwnerPasswordKey = "owner_password_hash"
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 12
)

// SetOwnerPassword sets the owner verification password (hashed with bcrypt)
func (m *Manager) SetOwnerPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := m.db.SetSetting(OwnerPasswordKey, string(hash)); err != nil {
		return fmt.Errorf("failed to store password hash: %w", err)
	}

	return nil
}

// HasOwnerPassword reports whether an owner password has been set
func (m *Manager) HasOwnerPassword() (bool, error) {
	hash, err := m.db.GetSetting(OwnerPasswordKey)
	if err != nil {
		return false, fmt.Errorf("failed to get password hash: %w", err)
	}
	return hash != "", nil
}

// VerifyOwnerPassword verifies a password against the stored hash
func (m *Manager) VerifyOwnerPassword(password string) (bool, error) {
	hash, err := m.db.GetSetting(OwnerPasswordKey)
	if err != nil {
		return false, fmt.Errorf("failed to get password hash: %w", err)
	}

	if hash == "" {
		return false, fmt.Errorf("no owner password set")
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare password: %w", err)
	}

	return true, nil
}
