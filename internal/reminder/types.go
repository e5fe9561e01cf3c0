// Package reminder implements the durable reminder store and the polling
// scheduler that delivers due reminders.
package reminder

import (
	"fmt"
	"time"
)

// Originator identifies who set a reminder
type Originator struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Duration is the originally requested delay, kept for delivery wording
type Duration struct {
	Amount int64  `json:"amount"`
	Unit   string `json:"unit"`
}

// Reminder is one pending reminder. Reminders are immutable after creation;
// delivery is destructive, the record is removed rather than updated.
type Reminder struct {
	ID         string     `json:"id"`
	ChatID     int64      `json:"chat_id"`
	FireAt     time.Time  `json:"fire_at"`
	Payload    string     `json:"payload"`
	Originator Originator `json:"originator"`
	Duration   Duration   `json:"duration"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Due reports whether the reminder should fire as of now
func (r *Reminder) Due(now time.Time) bool {
	return !r.FireAt.After(now)
}

// FormatDelivery formats a reminder for delivery to its chat
func FormatDelivery(r Reminder) string {
	return fmt.Sprintf("⏰ Reminder for %s: %s (set %d%s ago)",
		r.Originator.DisplayName, r.Payload, r.Duration.Amount, r.Duration.Unit)
}
