package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
	"github.com/jonny/guildbot/pkg/boterr"
)

// PinMirror relays pinned messages into the archive channel. It is invoked
// from the audit-correlation path and from the user's context-menu action and
// behaves identically from both: everything it needs is in its parameters.
type PinMirror struct {
	relay            outbound.Relay
	messenger        outbound.Messenger
	journal          outbound.JournalRepository
	archiveChannelID string
	logger           *slog.Logger
}

// NewPinMirror creates a PinMirror posting annotations into archiveChannelID.
func NewPinMirror(relay outbound.Relay, messenger outbound.Messenger, journal outbound.JournalRepository, archiveChannelID string, logger *slog.Logger) *PinMirror {
	return &PinMirror{
		relay:            relay,
		messenger:        messenger,
		journal:          journal,
		archiveChannelID: archiveChannelID,
		logger:           logger,
	}
}

// MirrorPin relays the message through the archive webhook, waits for
// confirmation, posts an annotation replying to the relayed copy, and returns
// the relayed message's reference.
func (m *PinMirror) MirrorPin(ctx context.Context, msg model.Message, pinner model.User, guildID string) (model.MessageRef, error) {
	ref, err := m.relay.RelayMessage(ctx, msg)
	if err != nil {
		return model.MessageRef{}, boterr.Wrap(boterr.KindRelayFailed, "relaying pinned message", err)
	}
	ref.GuildID = guildID

	annotation := fmt.Sprintf("Message from %s (`%s`) pinned by %s (`%s`)",
		msg.Author.Name, msg.Author.ID, pinner.Name, pinner.ID)
	if _, err := m.messenger.SendReply(ctx, m.archiveChannelID, annotation, ref); err != nil {
		return model.MessageRef{}, fmt.Errorf("posting archive annotation: %w", err)
	}

	entry := model.NewJournalEntry(model.JournalPinMirrored, guildID, msg.ChannelID, pinner.ID,
		fmt.Sprintf("message %s by %s mirrored to archive", msg.ID, msg.Author.ID)).
		WithDetail("message_id", msg.ID).
		WithDetail("author_id", msg.Author.ID)
	if err := m.journal.Create(ctx, entry); err != nil {
		m.logger.Warn("journal write failed", "event", entry.EventType, "error", err)
	}

	return ref, nil
}

// HandleContextMenu implements the "Pin message" context action: defer
// ephemerally, mirror, then report the jump link to the invoker.
func (m *PinMirror) HandleContextMenu(ctx context.Context, ev model.Interaction, r outbound.Responder) error {
	if ev.TargetMessage == nil {
		return r.Respond(ctx, outbound.Reply{
			Content:   "No target message was resolved for this action.",
			Ephemeral: true,
		})
	}

	if err := r.Defer(ctx, true); err != nil {
		return err
	}

	pinner := model.User{ID: ev.ActorID, Name: ev.ActorName}
	ref, err := m.MirrorPin(ctx, *ev.TargetMessage, pinner, ev.GuildID)
	if err != nil {
		_ = r.EditResponse(ctx, "Failed to mirror the message to the archive.")
		return err
	}

	return r.EditResponse(ctx, fmt.Sprintf("Pinned message successfully! %s", ref.JumpURL()))
}
