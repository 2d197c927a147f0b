package model

import "time"

// JournalEventType classifies entries in the local moderation journal.
type JournalEventType string

const (
	JournalPurgeCompleted JournalEventType = "purge.completed"
	JournalPinMirrored    JournalEventType = "pin.mirrored"
)

// JournalEntry is a completed moderation fact recorded locally. The journal
// is an audit trail only; no workflow reads it back to make decisions.
type JournalEntry struct {
	ID          string            `json:"id"`
	EventType   JournalEventType  `json:"event_type"`
	GuildID     string            `json:"guild_id"`
	ChannelID   string            `json:"channel_id"`
	Actor       string            `json:"actor"`
	Description string            `json:"description"`
	Details     map[string]string `json:"details"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewJournalEntry creates an entry with a fresh id and timestamp.
func NewJournalEntry(eventType JournalEventType, guildID, channelID, actor, description string) JournalEntry {
	return JournalEntry{
		ID:          generateID(),
		EventType:   eventType,
		GuildID:     guildID,
		ChannelID:   channelID,
		Actor:       actor,
		Description: description,
		Details:     make(map[string]string),
		CreatedAt:   time.Now().UTC(),
	}
}

// WithDetail returns a copy of the entry with one detail added.
func (e JournalEntry) WithDetail(key, value string) JournalEntry {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}
