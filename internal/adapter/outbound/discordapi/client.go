// Package discordapi implements the outbound ports over the Discord REST API.
package discordapi

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
)

// Config holds Discord REST client configuration.
type Config struct {
	Token string
	// ApplicationID is the application the command set is published under.
	ApplicationID string
}

// Client implements the messenger, directory, role, history and publisher
// ports over a REST-only discordgo session (the gateway connection lives in
// the inbound adapter).
type Client struct {
	session *discordgo.Session
	appID   string
}

// NewClient creates a Client. The session is never opened; only REST calls
// are made through it.
func NewClient(cfg Config) (*Client, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating discord client: %w", err)
	}
	return &Client{session: session, appID: cfg.ApplicationID}, nil
}

// Session exposes the underlying REST session for collaborators that need
// raw API access (the webhook relay).
func (c *Client) Session() *discordgo.Session { return c.session }

var (
	_ outbound.Messenger        = (*Client)(nil)
	_ outbound.Directory        = (*Client)(nil)
	_ outbound.RoleManager      = (*Client)(nil)
	_ outbound.HistoryPurger    = (*Client)(nil)
	_ outbound.CommandPublisher = (*Client)(nil)
)

// --- outbound.Messenger ---

func (c *Client) Send(ctx context.Context, channelID, content string) (model.MessageRef, error) {
	msg, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return model.MessageRef{}, fmt.Errorf("sending message to %s: %w", channelID, err)
	}
	return refOf(msg), nil
}

func (c *Client) SendButtons(ctx context.Context, channelID, content string, buttons []model.Button) (model.MessageRef, error) {
	msg, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    content,
		Components: buildComponents(buttons),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return model.MessageRef{}, fmt.Errorf("sending buttons to %s: %w", channelID, err)
	}
	return refOf(msg), nil
}

func (c *Client) SendReply(ctx context.Context, channelID, content string, ref model.MessageRef) (model.MessageRef, error) {
	msg, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Reference: &discordgo.MessageReference{
			MessageID: ref.MessageID,
			ChannelID: ref.ChannelID,
			GuildID:   ref.GuildID,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return model.MessageRef{}, fmt.Errorf("sending reply to %s: %w", channelID, err)
	}
	return refOf(msg), nil
}

func (c *Client) Edit(ctx context.Context, ref model.MessageRef, content string) error {
	if _, err := c.session.ChannelMessageEdit(ref.ChannelID, ref.MessageID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("editing message %s: %w", ref.MessageID, err)
	}
	return nil
}

// --- outbound.Directory ---

func (c *Client) Message(ctx context.Context, channelID, messageID string) (model.Message, error) {
	msg, err := c.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return model.Message{}, fmt.Errorf("fetching message %s: %w", messageID, err)
	}
	return MapMessage(msg), nil
}

func (c *Client) User(ctx context.Context, userID string) (model.User, error) {
	user, err := c.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return model.User{}, fmt.Errorf("fetching user %s: %w", userID, err)
	}
	return MapUser(user), nil
}

func (c *Client) Channel(ctx context.Context, channelID string) (model.Channel, error) {
	ch, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return model.Channel{}, fmt.Errorf("fetching channel %s: %w", channelID, err)
	}
	return model.Channel{
		ID:      ch.ID,
		GuildID: ch.GuildID,
		Name:    ch.Name,
		Kind:    MapChannelKind(ch.Type),
	}, nil
}

func (c *Client) MemberRoleIDs(ctx context.Context, guildID, userID string) ([]string, error) {
	member, err := c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching member %s: %w", userID, err)
	}
	return member.Roles, nil
}

// --- outbound.RoleManager ---

func (c *Client) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("adding role %s to %s: %w", roleID, userID, err)
	}
	return nil
}

func (c *Client) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("removing role %s from %s: %w", roleID, userID, err)
	}
	return nil
}

// --- outbound.HistoryPurger ---

// historyPageSize is the platform's maximum page and bulk-delete batch size.
const historyPageSize = 100

func (c *Client) MessageIDs(ctx context.Context, channelID string) ([]string, error) {
	var ids []string
	before := ""
	for {
		page, err := c.session.ChannelMessages(channelID, historyPageSize, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing messages in %s: %w", channelID, err)
		}
		for _, msg := range page {
			ids = append(ids, msg.ID)
		}
		if len(page) < historyPageSize {
			return ids, nil
		}
		before = page[len(page)-1].ID
	}
}

// bulkDeleteMaxAge is the platform cutoff: the bulk endpoint rejects
// messages older than two weeks.
const bulkDeleteMaxAge = 14 * 24 * time.Hour

func (c *Client) BulkDelete(ctx context.Context, channelID string, messageIDs []string) error {
	bulk, single := splitBulkEligible(messageIDs, time.Now().Add(-bulkDeleteMaxAge))

	for start := 0; start < len(bulk); start += historyPageSize {
		end := min(start+historyPageSize, len(bulk))
		chunk := bulk[start:end]
		if len(chunk) == 1 {
			// The bulk endpoint rejects single-message batches.
			single = append(single, chunk[0])
			continue
		}
		if err := c.session.ChannelMessagesBulkDelete(channelID, chunk, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("bulk deleting %d messages in %s: %w", len(chunk), channelID, err)
		}
	}

	for _, id := range single {
		if err := c.session.ChannelMessageDelete(channelID, id, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("deleting message %s: %w", id, err)
		}
	}
	return nil
}

// splitBulkEligible partitions ids around the bulk-delete age cutoff, read
// from each id's snowflake timestamp. Ids that do not parse as snowflakes
// take the one-by-one path rather than poisoning a whole batch.
func splitBulkEligible(messageIDs []string, cutoff time.Time) (bulk, single []string) {
	for _, id := range messageIDs {
		ts, err := discordgo.SnowflakeTimestamp(id)
		if err != nil || ts.Before(cutoff) {
			single = append(single, id)
			continue
		}
		bulk = append(bulk, id)
	}
	return bulk, single
}

// --- outbound.CommandPublisher ---

func (c *Client) Publish(ctx context.Context, guildID string, commands []model.CommandSpec) error {
	payload := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, spec := range commands {
		cmd := &discordgo.ApplicationCommand{Name: spec.Name}
		switch spec.Kind {
		case model.CommandMessageContext:
			cmd.Type = discordgo.MessageApplicationCommand
		default:
			cmd.Type = discordgo.ChatApplicationCommand
			cmd.Description = spec.Description
		}
		payload = append(payload, cmd)
	}

	if _, err := c.session.ApplicationCommandBulkOverwrite(c.appID, guildID, payload, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("overwriting guild %s commands: %w", guildID, err)
	}
	return nil
}

// --- helpers ---

func refOf(msg *discordgo.Message) model.MessageRef {
	return model.MessageRef{
		GuildID:   msg.GuildID,
		ChannelID: msg.ChannelID,
		MessageID: msg.ID,
	}
}

func MapUser(user *discordgo.User) model.User {
	return model.User{
		ID:        user.ID,
		Name:      user.Username,
		AvatarURL: user.AvatarURL(""),
	}
}

func MapMessage(msg *discordgo.Message) model.Message {
	out := model.Message{
		ID:        msg.ID,
		ChannelID: msg.ChannelID,
		GuildID:   msg.GuildID,
		Content:   msg.Content,
	}
	if msg.Author != nil {
		out.Author = MapUser(msg.Author)
	}
	for _, att := range msg.Attachments {
		out.Attachments = append(out.Attachments, model.Attachment{
			Filename:    att.Filename,
			URL:         att.URL,
			ContentType: att.ContentType,
		})
	}
	return out
}
