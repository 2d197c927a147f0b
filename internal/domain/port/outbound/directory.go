package outbound

import (
	"context"

	"github.com/jonny/guildbot/internal/domain/model"
)

// Directory resolves platform objects by id. Every lookup hits live platform
// state; callers must not cache the results across events.
type Directory interface {
	Message(ctx context.Context, channelID, messageID string) (model.Message, error)
	User(ctx context.Context, userID string) (model.User, error)
	Channel(ctx context.Context, channelID string) (model.Channel, error)
	// MemberRoleIDs returns the role ids the member currently holds.
	MemberRoleIDs(ctx context.Context, guildID, userID string) ([]string, error)
}

// RoleManager mutates guild role memberships.
type RoleManager interface {
	AddRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveRole(ctx context.Context, guildID, userID, roleID string) error
}
