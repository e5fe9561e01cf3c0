package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/lumina/internal/errors"
	"github.com/yourusername/lumina/internal/reminder"
)

const (
	// MaxReminderDelay caps how far ahead a reminder may be set
	MaxReminderDelay = 366 * 24 * time.Hour
	// shortIDLength is how much of a reminder id is shown to users
	shortIDLength = 8
)

// delayUnits maps a unit suffix to its duration
var delayUnits = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// ReminderCommands implements the reminder command set on top of the
// durable reminder store
type ReminderCommands struct {
	store  *reminder.FileStore
	prefix string
}

// NewReminderCommands creates the reminder command set
func NewReminderCommands(store *reminder.FileStore, prefix string) *ReminderCommands {
	return &ReminderCommands{
		store:  store,
		prefix: prefix,
	}
}

// Descriptors returns the reminder command descriptors for registration
func (rc *ReminderCommands) Descriptors() []Descriptor {
	return []Descriptor{
		{
			Name:        "remind",
			Description: "Set a reminder, e.g. /remind 10m take out the trash",
			Handler:     rc.handleRemind,
		},
		{
			Name:        "reminders",
			Description: "List pending reminders in this chat",
			Handler:     rc.handleList,
		},
		{
			Name:        "cancelreminder",
			Description: "Cancel a pending reminder by id",
			Handler:     rc.handleCancel,
		},
	}
}

func (rc *ReminderCommands) handleRemind(ctx *Context) error {
	if len(ctx.Args) < 2 {
		return errors.NewValidationError(fmt.Sprintf("Usage: %sremind <delay> <message>, e.g. %sremind 10m take out the trash", rc.prefix, rc.prefix))
	}

	amount, unit, delay, err := parseDelay(ctx.Args[0])
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	now := time.Now()
	r := reminder.Reminder{
		ID:      uuid.NewString(),
		ChatID:  ctx.ChatID(),
		FireAt:  now.Add(delay),
		Payload: strings.Join(ctx.Args[1:], " "),
		Originator: reminder.Originator{
			UserID:      ctx.UserID(),
			DisplayName: ctx.SenderName(),
		},
		Duration: reminder.Duration{
			Amount: amount,
			Unit:   unit,
		},
		CreatedAt: now,
	}

	if err := rc.store.Add(r); err != nil {
		// The reminder was NOT saved; say so instead of claiming success
		return errors.NewPersistenceError("save reminder", err)
	}

	return ctx.Reply(fmt.Sprintf("⏰ Okay %s, I'll remind you in %d%s. (id: %s)",
		r.Originator.DisplayName, amount, unit, shortID(r.ID)))
}

func (rc *ReminderCommands) handleList(ctx *Context) error {
	pending := rc.store.ListChat(ctx.ChatID())
	if len(pending) == 0 {
		return ctx.Reply("No pending reminders in this chat.")
	}

	var sb strings.Builder
	sb.WriteString("Pending reminders:\n")
	for _, r := range pending {
		sb.WriteString(fmt.Sprintf("• %s — %s (at %s, set by %s)\n",
			shortID(r.ID), r.Payload, r.FireAt.Format("2006-01-02 15:04"), r.Originator.DisplayName))
	}
	return ctx.Reply(strings.TrimRight(sb.String(), "\n"))
}

func (rc *ReminderCommands) handleCancel(ctx *Context) error {
	if len(ctx.Args) != 1 {
		return errors.NewValidationError(fmt.Sprintf("Usage: %scancelreminder <id> (ids are shown by %sreminders)", rc.prefix, rc.prefix))
	}

	target := strings.ToLower(ctx.Args[0])
	for _, r := range rc.store.ListChat(ctx.ChatID()) {
		if r.ID != target && shortID(r.ID) != target {
			continue
		}

		removed, err := rc.store.Remove(r.ID)
		if err != nil {
			return errors.NewPersistenceError("cancel reminder", err)
		}
		if removed {
			return ctx.Reply(fmt.Sprintf("🗑 Cancelled reminder %s: %s", shortID(r.ID), r.Payload))
		}
		break // already delivered between List and Remove
	}

	return errors.NewValidationError(fmt.Sprintf("No pending reminder with id %s in this chat.", target))
}

// parseDelay parses a delay token like "10m", "2h" or "1w"
func parseDelay(token string) (amount int64, unit string, delay time.Duration, err error) {
	if len(token) < 2 {
		return 0, "", 0, fmt.Errorf("I couldn't read %q as a delay. Use a number plus s, m, h, d or w, like 10m.", token)
	}

	unit = strings.ToLower(token[len(token)-1:])
	unitDuration, ok := delayUnits[unit]
	if !ok {
		return 0, "", 0, fmt.Errorf("I couldn't read %q as a delay. Use a number plus s, m, h, d or w, like 10m.", token)
	}

	amount, err = strconv.ParseInt(token[:len(token)-1], 10, 64)
	if err != nil || amount <= 0 {
		return 0, "", 0, fmt.Errorf("I couldn't read %q as a delay. Use a number plus s, m, h, d or w, like 10m.", token)
	}

	// Bound before multiplying so the product cannot overflow into a
	// negative duration that would slip past the cap
	if amount > int64(MaxReminderDelay/unitDuration) {
		return 0, "", 0, fmt.Errorf("That's too far ahead. I can remind you up to a year from now.")
	}

	return amount, unit, time.Duration(amount) * unitDuration, nil
}

// shortID returns the user-facing prefix of a reminder id
func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}
