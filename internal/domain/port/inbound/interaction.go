package inbound

import (
	"context"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
)

// InteractionPort is the single entry point for inbound interaction events.
// The gateway adapter calls Dispatch once per event; a failure in one event
// must never affect any other.
type InteractionPort interface {
	Dispatch(ctx context.Context, ev model.Interaction, r outbound.Responder) error
}

// AuditPort receives guild audit-log entries from the gateway adapter.
// Errors are for logging only: no user waits on this path and entries are
// not replayed.
type AuditPort interface {
	OnAuditEvent(ctx context.Context, entry model.AuditEntry) error
}
