package outbound

import (
	"context"

	"github.com/jonny/guildbot/internal/domain/model"
)

// Messenger posts and edits ordinary channel messages.
type Messenger interface {
	// Send posts a plain message and returns its reference.
	Send(ctx context.Context, channelID, content string) (model.MessageRef, error)
	// SendButtons posts a message with a row of button components.
	SendButtons(ctx context.Context, channelID, content string, buttons []model.Button) (model.MessageRef, error)
	// SendReply posts a message referencing an existing one.
	SendReply(ctx context.Context, channelID, content string, ref model.MessageRef) (model.MessageRef, error)
	// Edit replaces the content of a previously sent message.
	Edit(ctx context.Context, ref model.MessageRef, content string) error
}
