package outbound

import (
	"context"

	"github.com/jonny/guildbot/internal/domain/model"
)

// Relay forwards a message through an outbound relay channel (a platform
// webhook), impersonating the original author and re-uploading attachments.
// It waits for delivery confirmation and returns the relayed message's ref.
type Relay interface {
	RelayMessage(ctx context.Context, msg model.Message) (model.MessageRef, error)
}

// CommandPublisher publishes the full registered command set for a guild
// scope, replacing whatever was published before. The operation is idempotent
// and not retried on failure.
type CommandPublisher interface {
	Publish(ctx context.Context, guildID string, commands []model.CommandSpec) error
}
