package model

import "fmt"

// User is the platform user identity workflows reference. IDs are canonical;
// names are informational only.
type User struct {
	ID        string
	Name      string
	AvatarURL string
}

// Attachment is a file attached to a message, referenced by URL until a relay
// re-uploads it.
type Attachment struct {
	Filename    string
	URL         string
	ContentType string
}

// Message is the subset of a platform message the workflows need.
type Message struct {
	ID          string
	ChannelID   string
	GuildID     string
	Content     string
	Author      User
	Attachments []Attachment
}

// Channel is a resolved guild channel.
type Channel struct {
	ID      string
	GuildID string
	Name    string
	Kind    ChannelKind
}

// MessageRef points at a message without carrying its content.
type MessageRef struct {
	GuildID   string
	ChannelID string
	MessageID string
}

// JumpURL renders the platform deep link for the referenced message.
func (r MessageRef) JumpURL() string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", r.GuildID, r.ChannelID, r.MessageID)
}

// RoleOption is one entry of the configured role picker.
type RoleOption struct {
	RoleID string
	Emoji  string
	Label  string
}

// CommandKind distinguishes slash commands from message context-menu actions.
type CommandKind string

const (
	CommandSlash          CommandKind = "slash"
	CommandMessageContext CommandKind = "message_context"
)

// CommandSpec is the publishable description of a registered command.
type CommandSpec struct {
	Name        string
	Description string
	Kind        CommandKind
}
