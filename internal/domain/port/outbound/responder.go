package outbound

import (
	"context"

	"github.com/jonny/guildbot/internal/domain/model"
)

// Reply is the content of a direct interaction response.
type Reply struct {
	Content   string
	Ephemeral bool
	Buttons   []model.Button
}

// Responder answers the single interaction that triggered the current unit of
// work. Each interaction accepts exactly one initial response (Respond, Defer
// or DeferUpdate); EditResponse updates it afterwards.
type Responder interface {
	// Respond sends a visible (or ephemeral) message as the response.
	Respond(ctx context.Context, reply Reply) error
	// Defer acknowledges the interaction and promises a later EditResponse.
	Defer(ctx context.Context, ephemeral bool) error
	// DeferUpdate acknowledges a component activation without any visible
	// message or change.
	DeferUpdate(ctx context.Context) error
	// EditResponse replaces the content of the initial response.
	EditResponse(ctx context.Context, content string) error
}
