package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
)

// JournalRepo implements outbound.JournalRepository using SQLite.
type JournalRepo struct {
	db *sql.DB
}

// NewJournalRepo creates a JournalRepo backed by the given store.
func NewJournalRepo(store *Store) *JournalRepo {
	return &JournalRepo{db: store.DB}
}

var _ outbound.JournalRepository = (*JournalRepo)(nil)

// Create inserts one journal row.
func (r *JournalRepo) Create(ctx context.Context, entry model.JournalEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("marshaling journal details: %w", err)
	}

	const q = `INSERT INTO journal_entries
		(id, event_type, guild_id, channel_id, actor, description, details, created_at)
		VALUES (?,?,?,?,?,?,?,?)`

	_, err = r.db.ExecContext(ctx, q,
		entry.ID, string(entry.EventType),
		entry.GuildID, entry.ChannelID,
		entry.Actor, entry.Description,
		string(details), entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries, most recent first.
func (r *JournalRepo) ListRecent(ctx context.Context, limit int) ([]model.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	const q = `SELECT id, event_type, guild_id, channel_id, actor, description, details, created_at
		FROM journal_entries ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	var entries []model.JournalEntry
	for rows.Next() {
		var entry model.JournalEntry
		var eventType, detailsJSON string
		err := rows.Scan(
			&entry.ID, &eventType, &entry.GuildID, &entry.ChannelID,
			&entry.Actor, &entry.Description, &detailsJSON, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		entry.EventType = model.JournalEventType(eventType)
		if err := json.Unmarshal([]byte(detailsJSON), &entry.Details); err != nil {
			entry.Details = make(map[string]string)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal entries: %w", err)
	}
	return entries, nil
}
