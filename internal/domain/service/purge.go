package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
	"github.com/jonny/guildbot/pkg/boterr"
)

const purgePrompt = "## Continue?\n\nThis command will permanently purge all the messages of this channel. This action cannot be undone. Press `Yes` to continue."

// Purger implements the purge-with-confirmation workflow: confirm with the
// invoker, enumerate the channel, report the count, bulk-delete, then write
// an audit line to the log channel.
type Purger struct {
	views        *ViewRegistry
	messenger    outbound.Messenger
	history      outbound.HistoryPurger
	journal      outbound.JournalRepository
	logChannelID string
	logger       *slog.Logger
}

// NewPurger creates a Purger posting audit lines into logChannelID.
func NewPurger(views *ViewRegistry, messenger outbound.Messenger, history outbound.HistoryPurger, journal outbound.JournalRepository, logChannelID string, logger *slog.Logger) *Purger {
	return &Purger{
		views:        views,
		messenger:    messenger,
		history:      history,
		journal:      journal,
		logChannelID: logChannelID,
		logger:       logger,
	}
}

// HandleCommand runs the workflow for one /purge invocation. The wait on the
// confirmation suspends only this event's goroutine; other events keep
// flowing while the prompt is open.
func (p *Purger) HandleCommand(ctx context.Context, ev model.Interaction, r outbound.Responder) error {
	if !ev.ChannelKind.Messageable() {
		if err := r.Respond(ctx, outbound.Reply{
			Content: "This command must be run in a text channel.",
		}); err != nil {
			return err
		}
		return boterr.Newf(boterr.KindConditionFailed,
			"purge invoked in %s channel %s", ev.ChannelKind, ev.ChannelID)
	}

	confirmation := p.views.NewConfirmation(ev.ActorID)
	if err := r.Respond(ctx, outbound.Reply{
		Content: purgePrompt,
		Buttons: confirmation.Buttons(),
	}); err != nil {
		return err
	}

	result := confirmation.Wait(ctx)
	if result != Confirmed {
		p.logger.Info("purge aborted", "channel", ev.ChannelID, "actor", ev.ActorID, "result", result)
		if _, err := p.messenger.Send(ctx, ev.ChannelID, "Action aborted."); err != nil {
			return fmt.Errorf("reporting aborted purge: %w", err)
		}
		return nil
	}

	progress, err := p.messenger.Send(ctx, ev.ChannelID,
		"Fetching messages... This could take some time, please be patient.")
	if err != nil {
		return boterr.Wrap(boterr.KindPurgeFailed, "posting progress message", err)
	}

	// The full id set is buffered so the count can be reported before any
	// deletion starts. Known scaling limit for very large channels.
	ids, err := p.history.MessageIDs(ctx, ev.ChannelID)
	if err != nil {
		return boterr.Wrap(boterr.KindPurgeFailed, "enumerating channel history", err)
	}

	if err := p.messenger.Edit(ctx, progress, fmt.Sprintf("Found `%d` messages, purging.", len(ids))); err != nil {
		return boterr.Wrap(boterr.KindPurgeFailed, "updating progress message", err)
	}

	if err := p.history.BulkDelete(ctx, ev.ChannelID, ids); err != nil {
		// Deletions already issued are irreversible; no rollback.
		return boterr.Wrap(boterr.KindPurgeFailed, "bulk deleting messages", err)
	}

	auditLine := fmt.Sprintf("`%d` messages purged from <#%s> by %s (`%s`)",
		len(ids), ev.ChannelID, ev.ActorName, ev.ActorID)
	if _, err := p.messenger.Send(ctx, p.logChannelID, auditLine); err != nil {
		return fmt.Errorf("posting purge audit line: %w", err)
	}

	entry := model.NewJournalEntry(model.JournalPurgeCompleted, ev.GuildID, ev.ChannelID, ev.ActorID,
		fmt.Sprintf("%d messages purged", len(ids))).
		WithDetail("message_count", fmt.Sprintf("%d", len(ids)))
	if err := p.journal.Create(ctx, entry); err != nil {
		p.logger.Warn("journal write failed", "event", entry.EventType, "error", err)
	}

	return nil
}
