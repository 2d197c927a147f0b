package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
	"github.com/jonny/guildbot/pkg/boterr"
)

// ConfirmResult is the terminal state of a confirmation. Exactly one is ever
// reached per confirmation.
type ConfirmResult string

const (
	Confirmed ConfirmResult = "confirmed"
	Declined  ConfirmResult = "declined"
	TimedOut  ConfirmResult = "timed_out"
)

// DefaultConfirmTimeout matches the reference confirmation deadline.
const DefaultConfirmTimeout = 180 * time.Second

// Confirmation is a pending yes/no prompt bound to one actor. Only
// interaction events from that actor may resolve it; the deadline resolves it
// to TimedOut if nothing else does first.
type Confirmation struct {
	id      string
	actorID string
	timer   *time.Timer
	evict   func()

	once sync.Once
	done chan ConfirmResult
}

// ID returns the invocation id the registry keys this confirmation under.
func (c *Confirmation) ID() string { return c.id }

// Buttons renders the Yes/No pair wired to this confirmation.
func (c *Confirmation) Buttons() []model.Button {
	return []model.Button{
		{Label: "Yes", Style: model.ButtonSuccess, CustomID: model.NewComponentID(model.WorkflowConfirmYes, c.id).String()},
		{Label: "No", Style: model.ButtonDanger, CustomID: model.NewComponentID(model.WorkflowConfirmNo, c.id).String()},
	}
}

// resolve settles the confirmation and evicts it from its registry. Later
// calls are no-ops, so a click racing the deadline cannot double-resolve.
func (c *Confirmation) resolve(result ConfirmResult) {
	c.once.Do(func() {
		if c.timer != nil {
			c.timer.Stop()
		}
		if c.evict != nil {
			c.evict()
		}
		c.done <- result
		close(c.done)
	})
}

// Wait blocks cooperatively until the confirmation reaches a terminal state.
// Context cancellation resolves the confirmation as TimedOut so no waiter is
// left behind on shutdown.
func (c *Confirmation) Wait(ctx context.Context) ConfirmResult {
	select {
	case result := <-c.done:
		return result
	case <-ctx.Done():
		c.resolve(TimedOut)
		return TimedOut
	}
}

// ViewRegistry owns all pending confirmations, keyed by a generated
// invocation id. Entries are evicted on terminal transition or when their
// deadline fires.
type ViewRegistry struct {
	timeout time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	views map[string]*Confirmation
}

// NewViewRegistry creates a registry using the given confirmation timeout, or
// DefaultConfirmTimeout when zero.
func NewViewRegistry(timeout time.Duration, logger *slog.Logger) *ViewRegistry {
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}
	return &ViewRegistry{
		timeout: timeout,
		logger:  logger,
		views:   make(map[string]*Confirmation),
	}
}

// NewConfirmation creates and registers a pending confirmation bound to the
// given actor.
func (vr *ViewRegistry) NewConfirmation(actorID string) *Confirmation {
	c := &Confirmation{
		id:      uuid.NewString(),
		actorID: actorID,
		done:    make(chan ConfirmResult, 1),
	}
	c.evict = func() { vr.remove(c.id) }
	c.timer = time.AfterFunc(vr.timeout, func() {
		c.resolve(TimedOut)
	})

	vr.mu.Lock()
	vr.views[c.id] = c
	vr.mu.Unlock()
	return c
}

func (vr *ViewRegistry) lookup(id string) (*Confirmation, bool) {
	vr.mu.Lock()
	defer vr.mu.Unlock()
	c, ok := vr.views[id]
	return c, ok
}

func (vr *ViewRegistry) remove(id string) {
	vr.mu.Lock()
	delete(vr.views, id)
	vr.mu.Unlock()
}

// Pending returns the number of unresolved confirmations.
func (vr *ViewRegistry) Pending() int {
	vr.mu.Lock()
	defer vr.mu.Unlock()
	return len(vr.views)
}

// HandleComponent advances the confirmation named by subject. The actor check
// runs before either transition: foreign actors get an ephemeral rejection
// and an unauthorized error, and the state stays untouched. Stale subjects
// (already resolved or expired) are acknowledged without effect.
func (vr *ViewRegistry) HandleComponent(ctx context.Context, ev model.Interaction, r outbound.Responder, workflow, subject string) error {
	c, ok := vr.lookup(subject)
	if !ok {
		vr.logger.Debug("confirmation component for expired view", "subject", subject)
		return r.DeferUpdate(ctx)
	}

	if ev.ActorID != c.actorID {
		if err := r.Respond(ctx, outbound.Reply{
			Content:   "This confirmation is not for you.",
			Ephemeral: true,
		}); err != nil {
			return err
		}
		return boterr.Newf(boterr.KindUnauthorized,
			"confirmation %s clicked by %s, bound to %s", subject, ev.ActorID, c.actorID)
	}

	if err := r.DeferUpdate(ctx); err != nil {
		return err
	}

	result := Declined
	if workflow == model.WorkflowConfirmYes {
		result = Confirmed
	}
	c.resolve(result)
	return nil
}
