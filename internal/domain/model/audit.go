package model

// AuditAction identifies the platform action an audit-log entry records.
// Only pin entries are acted on; all others pass through untouched.
type AuditAction string

const (
	AuditMessagePin AuditAction = "message_pin"
	AuditUnknown    AuditAction = "unknown"
)

// AuditEntry is one guild audit-log record as delivered by the gateway.
// Entries are processed independently and are never replayed.
type AuditEntry struct {
	Action    AuditAction
	GuildID   string
	ActorID   string
	ChannelID string
	MessageID string
}
