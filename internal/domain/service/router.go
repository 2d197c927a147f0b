package service

import (
	"context"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/inbound"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
	"github.com/jonny/guildbot/pkg/boterr"
)

// Router matches inbound interaction events to command handlers and stateful
// views. It never fails the process on a single bad event: unknown commands
// and unrecognized components (stale or foreign messages are expected) come
// back as classified errors for the gateway to log and drop.
type Router struct {
	registry *CommandRegistry
	views    *ViewRegistry
	toggler  *RoleToggler
}

// NewRouter creates a Router over the given registry, view engine and role
// toggler.
func NewRouter(registry *CommandRegistry, views *ViewRegistry, toggler *RoleToggler) *Router {
	return &Router{
		registry: registry,
		views:    views,
		toggler:  toggler,
	}
}

// Ensure Router satisfies the inbound port at compile time.
var _ inbound.InteractionPort = (*Router)(nil)

// Dispatch routes one interaction event. Errors returned here belong to this
// event alone; the gateway adapter logs them and moves on.
func (rt *Router) Dispatch(ctx context.Context, ev model.Interaction, r outbound.Responder) error {
	switch ev.Kind {
	case model.InteractionCommand:
		d, ok := rt.registry.Lookup(ev.Command)
		if !ok {
			return boterr.Newf(boterr.KindUnknownCommand, "command %q is not registered", ev.Command)
		}
		return d.Handler(ctx, ev, r)

	case model.InteractionComponent:
		cid, err := model.ParseComponentID(ev.CustomID)
		if err != nil {
			return boterr.Wrap(boterr.KindUnrecognizedComponent, "parsing component id", err)
		}
		switch cid.Workflow {
		case model.WorkflowUpdateRoles:
			return rt.toggler.Toggle(ctx, ev, r, cid.Subject)
		case model.WorkflowConfirmYes, model.WorkflowConfirmNo:
			return rt.views.HandleComponent(ctx, ev, r, cid.Workflow, cid.Subject)
		default:
			return boterr.Newf(boterr.KindUnrecognizedComponent, "workflow %q", cid.Workflow)
		}
	}
	return nil
}
