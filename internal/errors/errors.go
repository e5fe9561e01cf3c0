package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeUnknownCommand indicates a command that resolved to nothing
	ErrorTypeUnknownCommand ErrorType = "UnknownCommand"

	// ErrorTypeUnauthorized indicates a restricted command invoked by a non-owner
	ErrorTypeUnauthorized ErrorType = "Unauthorized"

	// ErrorTypeBotNotAdmin indicates the bot lacks administrator status in a group
	ErrorTypeBotNotAdmin ErrorType = "BotNotAdmin"

	// ErrorTypeInsufficientPermissions indicates the bot is an administrator
	// but is missing one or more required capabilities
	ErrorTypeInsufficientPermissions ErrorType = "InsufficientPermissions"

	// ErrorTypeValidation indicates invalid command input
	ErrorTypeValidation ErrorType = "Validation"

	// ErrorTypePersistence indicates a durable-write failure
	ErrorTypePersistence ErrorType = "Persistence"

	// ErrorTypeUnexpected indicates an unexpected/unknown error
	ErrorTypeUnexpected ErrorType = "Unexpected"
)

// BotError represents a structured error with type and user-facing message.
// UserMessage is the only part ever shown to the invoking chat; handlers
// signalling failure through a BotError are promising that text is safe to
// forward verbatim.
type BotError struct {
	Type          ErrorType
	UserMessage   string // Message to send to the user
	InternalError error  // Original error for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.InternalError != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.UserMessage, e.InternalError)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.UserMessage)
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.InternalError
}

// NewUnknownCommandError creates an error for a command that resolved to nothing
func NewUnknownCommandError(name string) *BotError {
	return &BotError{
		Type:        ErrorTypeUnknownCommand,
		UserMessage: fmt.Sprintf("Unknown command: %s. Try /help to see what I can do.", name),
	}
}

// NewSuggestionError creates an error for a near-miss command name.
// Not an error per se, a recoverable typo hint.
func NewSuggestionError(typed, suggestion string) *BotError {
	return &BotError{
		Type:        ErrorTypeUnknownCommand,
		UserMessage: fmt.Sprintf("Unknown command: %s. Did you mean /%s?", typed, suggestion),
	}
}

// NewUnauthorizedError creates an error for a restricted command invoked by a non-owner
func NewUnauthorizedError() *BotError {
	return &BotError{
		Type:        ErrorTypeUnauthorized,
		UserMessage: "This command is restricted to the bot owner.",
	}
}

// NewBotNotAdminError creates an error for a group where the bot is not an administrator
func NewBotNotAdminError() *BotError {
	return &BotError{
		Type:        ErrorTypeBotNotAdmin,
		UserMessage: "I need to be an administrator in this group to do that. Promote me and try again.",
	}
}

// NewInsufficientPermissionsError creates an error listing the capabilities the bot is missing
func NewInsufficientPermissionsError(missing []string) *BotError {
	return &BotError{
		Type: ErrorTypeInsufficientPermissions,
		UserMessage: fmt.Sprintf("I'm an administrator here but I'm missing these permissions: %s. Grant them and try again.",
			strings.Join(missing, ", ")),
	}
}

// NewValidationError creates an error for invalid command input
func NewValidationError(message string) *BotError {
	return &BotError{
		Type:        ErrorTypeValidation,
		UserMessage: message,
	}
}

// NewPersistenceError creates an error for a durable-write failure
func NewPersistenceError(operation string, err error) *BotError {
	return &BotError{
		Type:          ErrorTypePersistence,
		UserMessage:   "I couldn't save that. Please try again later.",
		InternalError: fmt.Errorf("%s: %w", operation, err),
	}
}

// NewUnexpectedError creates an error for unexpected failures
func NewUnexpectedError(err error) *BotError {
	return &BotError{
		Type:          ErrorTypeUnexpected,
		UserMessage:   "Something went wrong. Please try again later.",
		InternalError: err,
	}
}

// IsBotError checks if an error is a BotError
func IsBotError(err error) bool {
	_, ok := err.(*BotError)
	return ok
}

// AsBotError attempts to convert an error to a BotError
func AsBotError(err error) (*BotError, bool) {
	botErr, ok := err.(*BotError)
	return botErr, ok
}
