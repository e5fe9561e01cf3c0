package database

import (
	"fmt"
	"strings"
	"time"
)

// Audit outcomes recorded per command invocation
const (
	AuditOutcomeCompleted    = "completed"
	AuditOutcomeFailed       = "failed"
	AuditOutcomeUnauthorized = "unauthorized"
)

// AuditEntry represents one dispatched command in the audit log
type AuditEntry struct {
	ID         int64
	ExecutedAt time.Time
	ChatID     int64
	UserID     int64
	Command    string
	Args       string
	Outcome    string
}

// LogCommand records a dispatched command and its outcome
func (db *DB) LogCommand(chatID, userID int64, command string, args []string, outcome string) error {
	query := `
		INSERT INTO command_audit (chat_id, user_id, command, args, outcome)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.conn.Exec(query, chatID, userID, command, strings.Join(args, " "), outcome)
	if err != nil {
		return fmt.Errorf("failed to log command: %w", err)
	}
	return nil
}

// RecentCommands returns the most recent audit entries, newest first
func (db *DB) RecentCommands(limit int) ([]*AuditEntry, error) {
	query := `
		SELECT id, executed_at, chat_id, user_id, command, args, outcome
		FROM command_audit
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	`
	rows, err := db.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []*AuditEntry
	for rows.Next() {
		entry := &AuditEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.ExecutedAt,
			&entry.ChatID,
			&entry.UserID,
			&entry.Command,
			&entry.Args,
			&entry.Outcome,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}

	return entries, nil
}

// CleanupAudit deletes audit entries older than the retention window.
// Returns the number of rows removed.
func (db *DB) CleanupAudit(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result, err := db.conn.Exec(`DELETE FROM command_audit WHERE executed_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up audit log: %w", err)
	}
	return result.RowsAffected()
}
