package model

// InteractionKind discriminates the inbound interaction variants. The router
// switches on it exhaustively; anything else is a safe no-op.
type InteractionKind string

const (
	// InteractionCommand covers slash commands and context-menu actions,
	// both identified by a command name.
	InteractionCommand InteractionKind = "command"
	// InteractionComponent is a component activation (button press) carrying
	// an opaque custom identifier chosen at render time.
	InteractionComponent InteractionKind = "component"
)

// ChannelKind is the coarse channel classification workflows care about.
type ChannelKind string

const (
	ChannelText   ChannelKind = "text"
	ChannelThread ChannelKind = "thread"
	ChannelVoice  ChannelKind = "voice"
	ChannelOther  ChannelKind = "other"
)

// Messageable reports whether the channel holds a message history that
// commands like purge may operate on.
func (k ChannelKind) Messageable() bool {
	switch k {
	case ChannelText, ChannelThread, ChannelVoice:
		return true
	}
	return false
}

// Interaction is one inbound user event, created by the gateway adapter and
// consumed exactly once by the router.
type Interaction struct {
	Kind InteractionKind

	// Command is set for InteractionCommand events.
	Command string
	// CustomID is set for InteractionComponent events.
	CustomID string

	GuildID     string
	ChannelID   string
	ChannelKind ChannelKind

	ActorID   string
	ActorName string

	// TargetMessage is the resolved target of a message context-menu action.
	TargetMessage *Message
}
