package outbound

import (
	"context"

	"github.com/jonny/guildbot/internal/domain/model"
)

// JournalRepository persists the local moderation journal. Writes are
// best-effort from the workflows' point of view: a journal failure is logged,
// never surfaced to the user.
type JournalRepository interface {
	Create(ctx context.Context, entry model.JournalEntry) error
	ListRecent(ctx context.Context, limit int) ([]model.JournalEntry, error)
}
