package discordapi

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/guildbot/internal/domain/port/outbound"
)

// Responder answers one interaction through the REST API. The gateway adapter
// builds one per inbound event.
type Responder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

// NewResponder binds a responder to the given interaction.
func NewResponder(session *discordgo.Session, interaction *discordgo.Interaction) *Responder {
	return &Responder{session: session, interaction: interaction}
}

var _ outbound.Responder = (*Responder)(nil)

func (r *Responder) Respond(ctx context.Context, reply outbound.Reply) error {
	data := &discordgo.InteractionResponseData{
		Content:    reply.Content,
		Components: buildComponents(reply.Buttons),
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("responding to interaction: %w", err)
	}
	return nil
}

func (r *Responder) Defer(ctx context.Context, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("deferring interaction: %w", err)
	}
	return nil
}

func (r *Responder) DeferUpdate(ctx context.Context) error {
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("acknowledging component: %w", err)
	}
	return nil
}

func (r *Responder) EditResponse(ctx context.Context, content string) error {
	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content: &content,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("editing interaction response: %w", err)
	}
	return nil
}
