package service

import (
	"context"
	"log/slog"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/inbound"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
	"github.com/jonny/guildbot/pkg/boterr"
)

// AuditWatcher correlates guild audit-log entries with the objects they
// reference. Only pin entries trigger work; the platform performs the pin
// itself, this watcher just mirrors it.
type AuditWatcher struct {
	dir    outbound.Directory
	mirror *PinMirror
	logger *slog.Logger
}

// NewAuditWatcher creates an AuditWatcher feeding the given mirror.
func NewAuditWatcher(dir outbound.Directory, mirror *PinMirror, logger *slog.Logger) *AuditWatcher {
	return &AuditWatcher{dir: dir, mirror: mirror, logger: logger}
}

var _ inbound.AuditPort = (*AuditWatcher)(nil)

// OnAuditEvent processes one audit-log entry. Resolution failures (channel
// gone, message deleted, user unknown) abandon the entry with a fetch_failed
// error; audit entries are not replayed, so there is nothing to retry.
func (w *AuditWatcher) OnAuditEvent(ctx context.Context, entry model.AuditEntry) error {
	if entry.Action != model.AuditMessagePin {
		return nil
	}

	channel, err := w.dir.Channel(ctx, entry.ChannelID)
	if err != nil {
		return boterr.Wrap(boterr.KindFetchFailed, "resolving pinned channel", err)
	}
	msg, err := w.dir.Message(ctx, channel.ID, entry.MessageID)
	if err != nil {
		return boterr.Wrap(boterr.KindFetchFailed, "fetching pinned message", err)
	}
	pinner, err := w.dir.User(ctx, entry.ActorID)
	if err != nil {
		return boterr.Wrap(boterr.KindFetchFailed, "fetching pinning user", err)
	}

	w.logger.Info("mirroring pin from audit log",
		"channel", channel.ID, "message", msg.ID, "pinner", pinner.ID)
	if _, err := w.mirror.MirrorPin(ctx, msg, pinner, entry.GuildID); err != nil {
		return err
	}
	return nil
}
