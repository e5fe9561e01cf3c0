package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/BurntSushi/toml"
)

const (
	defaultConfigPath = "config/bot.toml"
)

// Load reads and parses the configuration file from the specified path.
// If path is empty, it uses the default path.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found at %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrCreate attempts to load the configuration file, and if it doesn't exist,
// creates a default configuration file and returns the default config.
func LoadOrCreate(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Configuration file not found. Creating default configuration at %s\n", path)

		defaultCfg := DefaultConfig()
		if err := CreateDefault(path, defaultCfg); err != nil {
			return nil, fmt.Errorf("failed to create default configuration: %w", err)
		}

		return defaultCfg, nil
	}

	return Load(path)
}

// CreateDefault creates a default configuration file at the specified path
func CreateDefault(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			Token:         "",
			UpdateTimeout: 60,
		},
		Bot: BotConfig{
			OwnerID:       0,
			CommandPrefix: "/",
			TestMode:      false,
		},
		Reminders: RemindersConfig{
			File:         "data/reminders.json",
			PollInterval: 5,
		},
		Database: DatabaseConfig{
			Path:               "data/lumina.db",
			VacuumInterval:     86400, // 24 hours in seconds
			AuditRetentionDays: 90,
		},
		Logging: LoggingConfig{
			ErrorLog:     "data/error.log",
			MaxLogSizeMB: 10,
			MaxLogFiles:  5,
		},
		Keywords: map[string]string{
			"good night": "Sweet dreams! 🌙",
			"lumina":     "You called? Try /help to see what I can do.",
		},
	}
}

// validate checks that all required configuration fields are present and valid
func validate(cfg *Config) error {
	// Telegram settings
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if cfg.Telegram.UpdateTimeout <= 0 {
		return fmt.Errorf("telegram.update_timeout must be positive, got %d", cfg.Telegram.UpdateTimeout)
	}

	// Bot settings
	if cfg.Bot.CommandPrefix == "" {
		return fmt.Errorf("bot.command_prefix is required")
	}
	if len(cfg.Bot.CommandPrefix) != 1 {
		return fmt.Errorf("bot.command_prefix must be a single character, got %q", cfg.Bot.CommandPrefix)
	}
	prefix := rune(cfg.Bot.CommandPrefix[0])
	if unicode.IsLetter(prefix) || unicode.IsDigit(prefix) {
		return fmt.Errorf("bot.command_prefix must be a non-alphanumeric character, got %q", cfg.Bot.CommandPrefix)
	}
	if cfg.Bot.OwnerID < 0 {
		return fmt.Errorf("bot.owner_id cannot be negative, got %d", cfg.Bot.OwnerID)
	}

	// Reminder settings
	if cfg.Reminders.File == "" {
		return fmt.Errorf("reminders.file is required")
	}
	if cfg.Reminders.PollInterval <= 0 {
		return fmt.Errorf("reminders.poll_interval must be positive, got %d", cfg.Reminders.PollInterval)
	}

	// Database settings
	if cfg.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if cfg.Database.VacuumInterval <= 0 {
		return fmt.Errorf("database.vacuum_interval must be positive, got %d", cfg.Database.VacuumInterval)
	}
	if cfg.Database.AuditRetentionDays <= 0 {
		return fmt.Errorf("database.audit_retention_days must be positive, got %d", cfg.Database.AuditRetentionDays)
	}

	// Logging settings
	if cfg.Logging.ErrorLog == "" {
		return fmt.Errorf("logging.error_log is required")
	}
	if cfg.Logging.MaxLogSizeMB <= 0 {
		return fmt.Errorf("logging.max_log_size_mb must be positive, got %d", cfg.Logging.MaxLogSizeMB)
	}
	if cfg.Logging.MaxLogFiles <= 0 {
		return fmt.Errorf("logging.max_log_files must be positive, got %d", cfg.Logging.MaxLogFiles)
	}

	return nil
}
