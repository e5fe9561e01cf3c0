package errors

import (
	"fmt"

	"github.com/yourusername/lumina/internal/output"
)

// ErrorHandler handles errors by logging them and returning user-friendly messages
type ErrorHandler struct {
	output *output.Output
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(output *output.Output) *ErrorHandler {
	return &ErrorHandler{
		output: output,
	}
}

// Handle processes an error and returns the text to report to the user.
// Full detail goes to the terminal and the error log; only the user-safe
// message comes back.
func (h *ErrorHandler) Handle(err error) string {
	if err == nil {
		return ""
	}

	if botErr, ok := AsBotError(err); ok {
		return h.handleBotError(botErr)
	}

	return h.handleGenericError(err)
}

// HandleWithContext processes an error with additional context for the log
func (h *ErrorHandler) HandleWithContext(err error, context string) string {
	if err == nil {
		return ""
	}

	contextualErr := fmt.Errorf("%s: %w", context, err)

	if botErr, ok := AsBotError(err); ok {
		h.output.LogErrorToFile(
			string(botErr.Type),
			fmt.Sprintf("%s: %s", context, botErr.UserMessage),
			contextualErr,
		)
		return botErr.UserMessage
	}

	h.output.LogErrorToFile(
		string(ErrorTypeUnexpected),
		context,
		contextualErr,
	)
	return "Something went wrong. Please try again later."
}

// handleBotError processes a structured BotError
func (h *ErrorHandler) handleBotError(err *BotError) string {
	h.output.LogErrorToFile(
		string(err.Type),
		err.UserMessage,
		err.InternalError,
	)

	return err.UserMessage
}

// handleGenericError processes a generic error
func (h *ErrorHandler) handleGenericError(err error) string {
	h.output.LogErrorToFile(
		string(ErrorTypeUnexpected),
		"Unexpected error occurred",
		err,
	)

	return "Something went wrong. Please try again later."
}
