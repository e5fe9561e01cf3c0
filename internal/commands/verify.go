package commands

import (
	"fmt"

	"github.com/yourusername/lumina/internal/errors"
	"github.com/yourusername/lumina/internal/user"
)

// VerifyCommands implements the owner claim flow: whoever presents the
// owner password in a private chat becomes the owner on record. A
// configured owner id in the config file always takes precedence over a
// claimed one.
type VerifyCommands struct {
	userManager *user.Manager
	prefix      string
}

// NewVerifyCommands creates the verify command set
func NewVerifyCommands(userManager *user.Manager, prefix string) *VerifyCommands {
	return &VerifyCommands{
		userManager: userManager,
		prefix:      prefix,
	}
}

// Descriptors returns the verify command descriptor for registration
func (v *VerifyCommands) Descriptors() []Descriptor {
	return []Descriptor{
		{
			Name:        "verify",
			Description: "Claim bot ownership with the owner password (private chat only)",
			Handler:     v.handleVerify,
		},
	}
}

func (v *VerifyCommands) handleVerify(ctx *Context) error {
	// Never in a group: the password would be visible to everyone
	if !ctx.IsPrivate() {
		return errors.NewValidationError("Verification only works in a private chat with me.")
	}

	if len(ctx.Args) != 1 {
		return errors.NewValidationError(fmt.Sprintf("Usage: %sverify <password>", v.prefix))
	}

	hasPassword, err := v.userManager.HasOwnerPassword()
	if err != nil {
		return errors.NewUnexpectedError(fmt.Errorf("password check: %w", err))
	}
	if !hasPassword {
		return errors.NewValidationError("No owner password is set, so ownership cannot be claimed.")
	}

	ok, err := v.userManager.VerifyOwnerPassword(ctx.Args[0])
	if err != nil {
		return errors.NewUnexpectedError(fmt.Errorf("password verify: %w", err))
	}
	if !ok {
		return errors.NewValidationError("That password is not correct.")
	}

	if err := v.userManager.SetOwner(ctx.UserID()); err != nil {
		return errors.NewPersistenceError("store owner id", err)
	}

	return ctx.Reply("✅ Verified! You are now the bot owner.")
}
