// Package telegram wraps the Telegram Bot API as the messenger-client
// collaborator: sending messages, inspecting the bot's own chat
// membership and receiving updates.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/lumina/internal/commands"
	"github.com/yourusername/lumina/internal/output"
	"github.com/yourusername/lumina/internal/splitter"
)

// api is the slice of tgbotapi.BotAPI the client uses, extracted so tests
// can substitute a fake
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Client is the messenger-client collaborator backed by the Bot API
type Client struct {
	bot      api
	selfID   int64
	username string
	splitter *splitter.Splitter
	logger   output.Logger
}

// New connects to the Bot API with the given token
func New(token string, logger output.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	return &Client{
		bot:      bot,
		selfID:   bot.Self.ID,
		username: bot.Self.UserName,
		splitter: splitter.New(splitter.TelegramMaxMessageLength),
		logger:   logger,
	}, nil
}

// Username returns the bot's own username
func (c *Client) Username() string {
	return c.username
}

// SendMessage sends text to a chat, splitting it when it exceeds the
// Telegram message size limit
func (c *Client) SendMessage(chatID int64, text string) error {
	for _, part := range c.splitter.Split(text) {
		msg := tgbotapi.NewMessage(chatID, part)
		if _, err := c.bot.Send(msg); err != nil {
			return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
		}
	}
	return nil
}

// BotMember looks up the bot's own membership record in a chat, for the
// permission gate
func (c *Client) BotMember(chatID int64) (commands.MemberInfo, error) {
	member, err := c.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: c.selfID,
		},
	})
	if err != nil {
		return commands.MemberInfo{}, fmt.Errorf("failed to get bot membership in chat %d: %w", chatID, err)
	}

	return commands.MemberInfo{
		Status:             member.Status,
		CanChangeInfo:      member.CanChangeInfo,
		CanDeleteMessages:  member.CanDeleteMessages,
		CanInviteUsers:     member.CanInviteUsers,
		CanRestrictMembers: member.CanRestrictMembers,
		CanPinMessages:     member.CanPinMessages,
	}, nil
}

// Updates starts long polling and returns the update channel
func (c *Client) Updates(timeoutSeconds int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSeconds
	return c.bot.GetUpdatesChan(u)
}

// Stop stops the long-poll loop; the update channel closes shortly after
func (c *Client) Stop() {
	c.bot.StopReceivingUpdates()
}
