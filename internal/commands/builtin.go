package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yourusername/lumina/internal/errors"
	"github.com/yourusername/lumina/internal/metrics"
	"github.com/yourusername/lumina/internal/user"
)

const (
	// BotVersion is the current version of the bot
	BotVersion = "1.0.0"
)

// BuiltinCommands holds shared state for the built-in commands
type BuiltinCommands struct {
	registry    *Registry
	metrics     *metrics.Collector
	userManager *user.Manager
	prefix      string
}

// NewBuiltinCommands creates the built-in command set
func NewBuiltinCommands(registry *Registry, collector *metrics.Collector, userManager *user.Manager, prefix string) *BuiltinCommands {
	return &BuiltinCommands{
		registry:    registry,
		metrics:     collector,
		userManager: userManager,
		prefix:      prefix,
	}
}

// Descriptors returns the built-in command descriptors for registration
func (b *BuiltinCommands) Descriptors() []Descriptor {
	return []Descriptor{
		{
			Name:        "start",
			Description: "Say hello and point to the command list",
			Handler:     b.handleStart,
		},
		{
			Name:        "help",
			Description: "List available commands",
			Handler:     b.handleHelp,
		},
		{
			Name:        "about",
			Description: "Show bot version",
			Handler:     b.handleAbout,
		},
		{
			Name:        "stats",
			Description: "Show usage statistics",
			Restricted:  true,
			Handler:     b.handleStats,
		},
	}
}

func (b *BuiltinCommands) handleStart(ctx *Context) error {
	return ctx.Reply(fmt.Sprintf("Hi %s! ✨ I'm Lumina. Send %shelp to see what I can do.",
		ctx.SenderName(), b.prefix))
}

func (b *BuiltinCommands) handleHelp(ctx *Context) error {
	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, d := range b.registry.PublicDescriptors() {
		sb.WriteString(fmt.Sprintf("%s%s - %s\n", b.prefix, d.Name, d.Description))
	}

	// The owner also sees the restricted pool
	ownerID, err := b.userManager.OwnerID()
	if err == nil && ownerID != 0 && ctx.UserID() == ownerID {
		restricted := b.registry.RestrictedDescriptors()
		if len(restricted) > 0 {
			sb.WriteString("\nOwner commands:\n")
			for _, d := range restricted {
				sb.WriteString(fmt.Sprintf("%s%s - %s\n", b.prefix, d.Name, d.Description))
			}
		}
	}

	return ctx.Reply(strings.TrimRight(sb.String(), "\n"))
}

func (b *BuiltinCommands) handleAbout(ctx *Context) error {
	return ctx.Reply(fmt.Sprintf("Lumina v%s — a Telegram bot with commands, reminders and a little sparkle.", BotVersion))
}

func (b *BuiltinCommands) handleStats(ctx *Context) error {
	stats, err := b.metrics.GetStats()
	if err != nil {
		return errors.NewUnexpectedError(fmt.Errorf("stats lookup: %w", err))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Uptime: %s\n", formatUptime(stats.Uptime)))
	sb.WriteString(fmt.Sprintf("Reminders delivered: %d\n", stats.RemindersDelivered))

	if len(stats.CommandCounts) > 0 {
		names := make([]string, 0, len(stats.CommandCounts))
		for name := range stats.CommandCounts {
			names = append(names, name)
		}
		sort.Strings(names)

		sb.WriteString("Commands:\n")
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  %s%s: %d\n", b.prefix, name, stats.CommandCounts[name]))
		}
	}

	if len(stats.ErrorCounts) > 0 {
		types := make([]string, 0, len(stats.ErrorCounts))
		for errorType := range stats.ErrorCounts {
			types = append(types, errorType)
		}
		sort.Strings(types)

		sb.WriteString("Errors:\n")
		for _, errorType := range types {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", errorType, stats.ErrorCounts[errorType]))
		}
	}

	return ctx.Reply(strings.TrimRight(sb.String(), "\n"))
}

// formatUptime renders a duration as "3d 4h 12m"
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
