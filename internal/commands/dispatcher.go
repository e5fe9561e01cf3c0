package commands

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/lumina/internal/database"
	"github.com/yourusername/lumina/internal/errors"
	"github.com/yourusername/lumina/internal/metrics"
	"github.com/yourusername/lumina/internal/output"
	"github.com/yourusername/lumina/internal/user"
)

// Dispatcher routes incoming messages through parsing, resolution,
// authorization and execution. Every failure along the way is reported to
// the invoking chat exactly once and never retried.
type Dispatcher struct {
	registry     *Registry
	suggester    *Suggester
	userManager  *user.Manager
	inspector    MemberInspector
	errorHandler *errors.ErrorHandler
	logger       output.Logger
	metrics      *metrics.Collector
	store        *database.DB
	prefix       string
	botUsername  string
}

// NewDispatcher creates a new command dispatcher
func NewDispatcher(
	registry *Registry,
	suggester *Suggester,
	userManager *user.Manager,
	inspector MemberInspector,
	errorHandler *errors.ErrorHandler,
	logger output.Logger,
	collector *metrics.Collector,
	store *database.DB,
	prefix string,
	botUsername string,
) *Dispatcher {
	return &Dispatcher{
		registry:     registry,
		suggester:    suggester,
		userManager:  userManager,
		inspector:    inspector,
		errorHandler: errorHandler,
		logger:       logger,
		metrics:      collector,
		store:        store,
		prefix:       prefix,
		botUsername:  botUsername,
	}
}

// IsCommand checks if a message starts with the command prefix
func (d *Dispatcher) IsCommand(text string) bool {
	return strings.HasPrefix(text, d.prefix)
}

// ParseCommand parses a message into a command name and arguments.
// The token after the prefix is case-folded and an "@botname" suffix is
// stripped, so "/Stat@LuminaBot x" parses the same as "/stat x".
// Returns an empty name if the message is not a command.
func (d *Dispatcher) ParseCommand(text string) (command string, args []string) {
	if !d.IsCommand(text) {
		return "", nil
	}

	text = strings.TrimPrefix(text, d.prefix)
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", nil
	}

	command = strings.ToLower(parts[0])
	if at := strings.Index(command, "@"); at >= 0 {
		mention := command[at+1:]
		if d.botUsername == "" || mention == strings.ToLower(d.botUsername) {
			command = command[:at]
		} else {
			// Addressed to a different bot in the same group
			return "", nil
		}
	}
	if command == "" {
		return "", nil
	}

	args = parts[1:]
	if args == nil {
		args = []string{}
	}
	return command, args
}

// Dispatch processes one incoming message. It returns true if the message
// was treated as a command (whether or not it succeeded), false if the
// message is plain text the dispatcher does not handle.
func (d *Dispatcher) Dispatch(sender MessageSender, msg *tgbotapi.Message) bool {
	if msg == nil || !d.IsCommand(msg.Text) {
		return false
	}

	command, args := d.ParseCommand(msg.Text)
	if command == "" {
		return false
	}

	ctx := &Context{
		Sender:  sender,
		Message: msg,
		Command: command,
		Args:    args,
		Store:   d.store,
	}

	chatLabel := msg.Chat.Title
	if chatLabel == "" {
		chatLabel = ChatTypePrivate
	}
	d.logger.Command(chatLabel, ctx.SenderName(), d.prefix+command)

	// Resolving
	descriptor, found := d.registry.Resolve(command)
	if !found {
		if suggestion, ok := d.suggester.Suggest(command); ok {
			d.report(ctx, errors.NewSuggestionError(d.prefix+command, suggestion))
		} else {
			d.report(ctx, errors.NewUnknownCommandError(d.prefix+command))
		}
		return true
	}

	// Authorizing
	if err := d.authorize(ctx, descriptor); err != nil {
		d.report(ctx, err)
		d.audit(ctx, database.AuditOutcomeUnauthorized)
		return true
	}

	// Executing
	err := d.execute(descriptor, ctx)
	if err != nil {
		d.report(ctx, err)
		d.audit(ctx, database.AuditOutcomeFailed)
		return true
	}

	d.audit(ctx, database.AuditOutcomeCompleted)
	if recordErr := d.metrics.RecordCommandUsage(command); recordErr != nil {
		d.logger.Warning("Failed to record command metric: %v", recordErr)
	}
	return true
}

// authorize applies the permission gate for the resolved descriptor: owner
// identity for restricted commands, the bot's own admin capabilities for
// anything dispatched in a group
func (d *Dispatcher) authorize(ctx *Context, descriptor Descriptor) error {
	if descriptor.Restricted {
		ownerID, err := d.userManager.OwnerID()
		if err != nil {
			return errors.NewUnexpectedError(fmt.Errorf("owner lookup: %w", err))
		}
		return AuthorizeOwner(ctx.UserID(), ownerID)
	}

	if !ctx.IsGroup() {
		return nil
	}

	member, err := d.inspector.BotMember(ctx.ChatID())
	if err != nil {
		return errors.NewUnexpectedError(fmt.Errorf("membership lookup: %w", err))
	}
	return AuthorizeGroupAdmin(member, ctx.Message.Chat.Type)
}

// execute invokes the handler, converting a panic into a reportable error
// so one misbehaving handler cannot take the bot down
func (d *Dispatcher) execute(descriptor Descriptor, ctx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewUnexpectedError(fmt.Errorf("handler panic in %s: %v", descriptor.Name, r))
		}
	}()

	return descriptor.Handler(ctx)
}

// report logs the error in full and forwards only its user-safe text to the
// invoking chat
func (d *Dispatcher) report(ctx *Context, err error) {
	text := d.errorHandler.HandleWithContext(err, fmt.Sprintf("command %s", ctx.Command))

	errorType := errors.ErrorTypeUnexpected
	if botErr, ok := errors.AsBotError(err); ok {
		errorType = botErr.Type
	}
	if recordErr := d.metrics.RecordError(string(errorType)); recordErr != nil {
		d.logger.Warning("Failed to record error metric: %v", recordErr)
	}

	if sendErr := ctx.Reply(text); sendErr != nil {
		d.logger.Error("Failed to report error to chat %d: %v", ctx.ChatID(), sendErr)
	}
}

// audit records the invocation outcome, best effort
func (d *Dispatcher) audit(ctx *Context, outcome string) {
	if err := d.store.LogCommand(ctx.ChatID(), ctx.UserID(), ctx.Command, ctx.Args, outcome); err != nil {
		d.logger.Warning("Failed to audit command %s: %v", ctx.Command, err)
	}
}

// GetRegistry returns the command registry
func (d *Dispatcher) GetRegistry() *Registry {
	return d.registry
}

// GetCommandPrefix returns the configured command prefix
func (d *Dispatcher) GetCommandPrefix() string {
	return d.prefix
}
