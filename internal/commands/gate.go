package commands

import (
	"github.com/yourusername/lumina/internal/errors"
)

// Chat member statuses as reported by the Telegram Bot API
const (
	StatusCreator       = "creator"
	StatusAdministrator = "administrator"
)

// Chat types as reported by the Telegram Bot API
const (
	ChatTypePrivate    = "private"
	ChatTypeGroup      = "group"
	ChatTypeSuperGroup = "supergroup"
)

// requiredCapability pairs a MemberInfo capability with the name Telegram
// uses for it, for remediation messages
type requiredCapability struct {
	name string
	has  func(MemberInfo) bool
}

// requiredCapabilities is the fixed set an administrator bot must hold
// before admin-dependent commands are allowed in a group
var requiredCapabilities = []requiredCapability{
	{"change_info", func(m MemberInfo) bool { return m.CanChangeInfo }},
	{"delete_messages", func(m MemberInfo) bool { return m.CanDeleteMessages }},
	{"invite_users", func(m MemberInfo) bool { return m.CanInviteUsers }},
	{"restrict_members", func(m MemberInfo) bool { return m.CanRestrictMembers }},
	{"pin_messages", func(m MemberInfo) bool { return m.CanPinMessages }},
}

// AuthorizeOwner checks that the invoker is the configured owner. An owner
// id of 0 means no owner is configured, which fails closed.
func AuthorizeOwner(invokerID, ownerID int64) error {
	if ownerID == 0 || invokerID != ownerID {
		return errors.NewUnauthorizedError()
	}
	return nil
}

// AuthorizeGroupAdmin checks that the bot itself holds administrative
// capabilities in the chat. It only applies to group and supergroup chats;
// for any other chat type it is a no-op. A creator bot implicitly holds
// every capability.
func AuthorizeGroupAdmin(member MemberInfo, chatType string) error {
	if chatType != ChatTypeGroup && chatType != ChatTypeSuperGroup {
		return nil
	}

	switch member.Status {
	case StatusCreator:
		return nil
	case StatusAdministrator:
		// fall through to the capability check
	default:
		return errors.NewBotNotAdminError()
	}

	var missing []string
	for _, capability := range requiredCapabilities {
		if !capability.has(member) {
			missing = append(missing, capability.name)
		}
	}
	if len(missing) > 0 {
		return errors.NewInsufficientPermissionsError(missing)
	}

	return nil
}
