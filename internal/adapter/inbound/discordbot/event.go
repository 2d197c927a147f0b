package discordbot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jonny/guildbot/internal/adapter/outbound/discordapi"
	"github.com/jonny/guildbot/internal/domain/model"
)

// mapInteraction converts a gateway interaction into the domain event form.
// Variants the router does not handle report ok=false and are dropped here.
func mapInteraction(i *discordgo.InteractionCreate) (model.Interaction, bool) {
	ev := model.Interaction{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		ev.Kind = model.InteractionCommand
		ev.Command = data.Name
		if data.TargetID != "" && data.Resolved != nil {
			if target, ok := data.Resolved.Messages[data.TargetID]; ok {
				msg := discordapi.MapMessage(target)
				if msg.ChannelID == "" {
					msg.ChannelID = i.ChannelID
				}
				if msg.GuildID == "" {
					msg.GuildID = i.GuildID
				}
				ev.TargetMessage = &msg
			}
		}
	case discordgo.InteractionMessageComponent:
		ev.Kind = model.InteractionComponent
		ev.CustomID = i.MessageComponentData().CustomID
	default:
		return model.Interaction{}, false
	}

	// Guild interactions carry a member, direct messages a bare user.
	switch {
	case i.Member != nil && i.Member.User != nil:
		ev.ActorID = i.Member.User.ID
		ev.ActorName = i.Member.User.Username
	case i.User != nil:
		ev.ActorID = i.User.ID
		ev.ActorName = i.User.Username
	}

	return ev, true
}

// mapAuditEntry converts the audit-log gateway event. Only pin entries are
// mapped; everything else reports ok=false.
func mapAuditEntry(e *discordgo.GuildAuditLogEntryCreate) (model.AuditEntry, bool) {
	if e.ActionType == nil || *e.ActionType != discordgo.AuditLogActionMessagePin {
		return model.AuditEntry{}, false
	}
	entry := model.AuditEntry{
		Action:  model.AuditMessagePin,
		GuildID: e.GuildID,
		ActorID: e.UserID,
	}
	if e.Options != nil {
		entry.ChannelID = e.Options.ChannelID
		entry.MessageID = e.Options.MessageID
	}
	return entry, entry.ChannelID != "" && entry.MessageID != ""
}
