package config

import "time"

// Config represents the complete bot configuration
type Config struct {
	Telegram  TelegramConfig    `toml:"telegram"`
	Bot       BotConfig         `toml:"bot"`
	Reminders RemindersConfig   `toml:"reminders"`
	Database  DatabaseConfig    `toml:"database"`
	Logging   LoggingConfig     `toml:"logging"`
	Keywords  map[string]string `toml:"keywords"`
}

// TelegramConfig contains Telegram Bot API connection settings
type TelegramConfig struct {
	Token         string `toml:"token"`
	UpdateTimeout int    `toml:"update_timeout"`
}

// BotConfig contains bot behavior settings
type BotConfig struct {
	// OwnerID is the numeric Telegram user id allowed to run restricted
	// commands. 0 means unconfigured: restricted commands fail closed
	// until an owner is claimed via /verify.
	OwnerID       int64  `toml:"owner_id"`
	CommandPrefix string `toml:"command_prefix"`
	TestMode      bool   `toml:"test_mode"`
}

// RemindersConfig contains reminder store and scheduler settings
type RemindersConfig struct {
	File         string `toml:"file"`
	PollInterval int    `toml:"poll_interval"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path               string `toml:"path"`
	VacuumInterval     int    `toml:"vacuum_interval"`
	AuditRetentionDays int    `toml:"audit_retention_days"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	ErrorLog     string `toml:"error_log"`
	MaxLogSizeMB int    `toml:"max_log_size_mb"`
	MaxLogFiles  int    `toml:"max_log_files"`
}

// GetUpdateTimeoutDuration returns the long-poll timeout as a time.Duration
func (c *TelegramConfig) GetUpdateTimeoutDuration() time.Duration {
	return time.Duration(c.UpdateTimeout) * time.Second
}

// GetPollIntervalDuration returns the scheduler poll interval as a time.Duration
func (c *RemindersConfig) GetPollIntervalDuration() time.Duration {
	return time.Duration(c.PollInterval) * time.Second
}

// GetVacuumIntervalDuration returns the vacuum interval as a time.Duration
func (c *DatabaseConfig) GetVacuumIntervalDuration() time.Duration {
	return time.Duration(c.VacuumInterval) * time.Second
}
