// Package discordbot is the inbound gateway adapter: it owns the websocket
// session and converts gateway callbacks into domain events.
package discordbot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/guildbot/internal/adapter/outbound/discordapi"
	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/inbound"
	"github.com/jonny/guildbot/pkg/boterr"
)

// Config holds gateway configuration.
type Config struct {
	Token   string
	GuildID string
}

// Bot maintains the gateway connection and feeds events to the inbound ports.
type Bot struct {
	session *discordgo.Session
	guildID string
	router  inbound.InteractionPort
	audit   inbound.AuditPort
	logger  *slog.Logger
}

// NewBot creates a Bot. The session stays closed until Start.
func NewBot(cfg Config, router inbound.InteractionPort, audit inbound.AuditPort, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating gateway session: %w", err)
	}
	// Guild, moderation (audit log) and member state are all needed.
	session.Identify.Intents = discordgo.IntentsAll

	return &Bot{
		session: session,
		guildID: cfg.GuildID,
		router:  router,
		audit:   audit,
		logger:  logger,
	}, nil
}

// Gateway reports whether the websocket session is connected; used as a
// readiness probe.
func (b *Bot) Gateway(_ context.Context) error {
	if b.session.State == nil || b.session.State.User == nil {
		return fmt.Errorf("gateway session not ready")
	}
	return nil
}

// Start opens the gateway connection and blocks until ctx is cancelled.
// discordgo invokes each handler on its own goroutine, so one event's
// suspension (a pending confirmation, an API call) never stalls the stream.
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("logged in", "user", r.User.Username, "id", r.User.ID)
	})
	b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handleInteraction(ctx, i)
	})
	b.session.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildAuditLogEntryCreate) {
		b.handleAuditLogEntry(ctx, e)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening gateway connection: %w", err)
	}

	<-ctx.Done()
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("closing gateway connection: %w", err)
	}
	return nil
}

// handleInteraction converts and dispatches one interaction. A dispatch error
// is this event's alone: log it and keep the stream alive.
func (b *Bot) handleInteraction(ctx context.Context, i *discordgo.InteractionCreate) {
	ev, ok := mapInteraction(i)
	if !ok {
		return
	}
	ev.ChannelKind = b.channelKind(i.ChannelID)

	responder := discordapi.NewResponder(b.session, i.Interaction)
	if err := b.router.Dispatch(ctx, ev, responder); err != nil {
		b.logger.Log(ctx, dispatchLogLevel(err), "dispatch failed",
			"kind", ev.Kind, "command", ev.Command, "custom_id", ev.CustomID,
			"actor", ev.ActorID, "error", err)
	}
}

// dispatchLogLevel maps classified dispatch errors onto log severity:
// expected per-event outcomes (stale components, user mistakes) stay out of
// the error stream.
func dispatchLogLevel(err error) slog.Level {
	switch {
	case boterr.IsKind(err, boterr.KindUnrecognizedComponent):
		return slog.LevelDebug
	case boterr.IsKind(err, boterr.KindUnknownCommand),
		boterr.IsKind(err, boterr.KindUnauthorized),
		boterr.IsKind(err, boterr.KindConditionFailed):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// handleAuditLogEntry forwards audit entries to the correlation engine.
// Failures here are logged only; nobody is waiting on this path.
func (b *Bot) handleAuditLogEntry(ctx context.Context, e *discordgo.GuildAuditLogEntryCreate) {
	entry, ok := mapAuditEntry(e)
	if !ok {
		return
	}
	if err := b.audit.OnAuditEvent(ctx, entry); err != nil {
		b.logger.Error("audit event processing failed",
			"action", entry.Action, "channel", entry.ChannelID, "message", entry.MessageID,
			"error", err)
	}
}

// channelKind resolves the interaction channel's type, preferring gateway
// state over a REST round trip.
func (b *Bot) channelKind(channelID string) model.ChannelKind {
	if ch, err := b.session.State.Channel(channelID); err == nil {
		return discordapi.MapChannelKind(ch.Type)
	}
	if ch, err := b.session.Channel(channelID); err == nil {
		return discordapi.MapChannelKind(ch.Type)
	}
	b.logger.Warn("could not resolve channel type", "channel", channelID)
	return model.ChannelOther
}
