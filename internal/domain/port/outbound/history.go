package outbound

import "context"

// HistoryPurger enumerates and bulk-deletes channel message history.
type HistoryPurger interface {
	// MessageIDs returns the ids of every message in the channel, newest
	// first. The full set is buffered; see the purge workflow notes.
	MessageIDs(ctx context.Context, channelID string) ([]string, error)
	// BulkDelete removes the given messages. Partially applied deletions are
	// not rolled back.
	BulkDelete(ctx context.Context, channelID string, messageIDs []string) error
}
