// Package commands implements the command dispatch core: the descriptor
// registry, typo suggestions, the permission gate and the dispatcher that
// ties them together.
package commands

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/lumina/internal/database"
)

// HandlerFunc is the uniform contract every command handler implements.
// Handlers send their own replies through ctx.Sender and signal failure by
// returning an error; a *errors.BotError carries text safe to show the
// user, anything else is reported as a generic notice.
type HandlerFunc func(ctx *Context) error

// Descriptor describes one registered command. Descriptors are created at
// registration time and never mutated afterwards.
type Descriptor struct {
	Name        string
	Description string
	Restricted  bool
	Handler     HandlerFunc
}

// MessageSender can deliver a text message to a chat
type MessageSender interface {
	SendMessage(chatID int64, text string) error
}

// MemberInfo is the bot's own membership record in a chat, as needed by the
// permission gate
type MemberInfo struct {
	Status             string
	CanChangeInfo      bool
	CanDeleteMessages  bool
	CanInviteUsers     bool
	CanRestrictMembers bool
	CanPinMessages     bool
}

// MemberInspector looks up the bot's own membership in a chat
type MemberInspector interface {
	BotMember(chatID int64) (MemberInfo, error)
}

// Context contains everything a handler needs to execute: the messenger
// client, the incoming message, the parsed arguments and the persistent
// store
type Context struct {
	Sender  MessageSender
	Message *tgbotapi.Message
	Command string
	Args    []string
	Store   *database.DB
}

// ChatID returns the id of the chat the command came from
func (c *Context) ChatID() int64 {
	return c.Message.Chat.ID
}

// UserID returns the id of the invoking user, or 0 if unknown
func (c *Context) UserID() int64 {
	if c.Message.From == nil {
		return 0
	}
	return c.Message.From.ID
}

// SenderName returns a display name for the invoking user
func (c *Context) SenderName() string {
	from := c.Message.From
	if from == nil {
		return "unknown"
	}
	if from.UserName != "" {
		return from.UserName
	}
	return from.FirstName
}

// IsPrivate reports whether the command came from a private chat
func (c *Context) IsPrivate() bool {
	return c.Message.Chat.IsPrivate()
}

// IsGroup reports whether the command came from a group or supergroup
func (c *Context) IsGroup() bool {
	return c.Message.Chat.IsGroup() || c.Message.Chat.IsSuperGroup()
}

// Reply sends a text message back to the chat the command came from
func (c *Context) Reply(text string) error {
	return c.Sender.SendMessage(c.ChatID(), text)
}
