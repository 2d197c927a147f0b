package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
	"github.com/jonny/guildbot/pkg/boterr"
)

// RoleToggler flips a member's membership of a role. Membership is read from
// live platform state on every activation: two toggles for the same role may
// interleave with other events and must each reflect current truth.
type RoleToggler struct {
	dir   outbound.Directory
	roles outbound.RoleManager
}

// NewRoleToggler creates a RoleToggler over the given directory and role
// manager.
func NewRoleToggler(dir outbound.Directory, roles outbound.RoleManager) *RoleToggler {
	return &RoleToggler{dir: dir, roles: roles}
}

// Toggle adds the role if the actor lacks it and removes it otherwise,
// acknowledging either way with an ephemeral reply. Fetch and mutation
// failures surface to the dispatcher.
func (t *RoleToggler) Toggle(ctx context.Context, ev model.Interaction, r outbound.Responder, roleID string) error {
	held, err := t.dir.MemberRoleIDs(ctx, ev.GuildID, ev.ActorID)
	if err != nil {
		return boterr.Wrap(boterr.KindFetchFailed, "reading member roles", err)
	}

	if slices.Contains(held, roleID) {
		if err := t.roles.RemoveRole(ctx, ev.GuildID, ev.ActorID, roleID); err != nil {
			return fmt.Errorf("removing role %s: %w", roleID, err)
		}
		return r.Respond(ctx, outbound.Reply{
			Content:   fmt.Sprintf("Removed role <@&%s>", roleID),
			Ephemeral: true,
		})
	}

	if err := t.roles.AddRole(ctx, ev.GuildID, ev.ActorID, roleID); err != nil {
		return fmt.Errorf("adding role %s: %w", roleID, err)
	}
	return r.Respond(ctx, outbound.Reply{
		Content:   fmt.Sprintf("Added role <@&%s>", roleID),
		Ephemeral: true,
	})
}

const pickerPrompt = "Click the buttons below to receive various roles and if you want to remove a role you already have, click the button again"

// RolePicker posts the self-service role button group. The rendered buttons
// are self-contained: each carries its role id in the component identifier
// plus a fresh nonce, so no view state outlives the render.
type RolePicker struct {
	messenger outbound.Messenger
	options   []model.RoleOption
}

// NewRolePicker creates a RolePicker for the configured role list.
func NewRolePicker(messenger outbound.Messenger, options []model.RoleOption) *RolePicker {
	return &RolePicker{messenger: messenger, options: options}
}

// HandleCommand posts the picker into the invoking channel and confirms
// ephemerally to the invoker.
func (p *RolePicker) HandleCommand(ctx context.Context, ev model.Interaction, r outbound.Responder) error {
	if len(p.options) == 0 {
		return r.Respond(ctx, outbound.Reply{
			Content:   "No picker roles are configured.",
			Ephemeral: true,
		})
	}

	buttons := make([]model.Button, 0, len(p.options))
	for _, opt := range p.options {
		buttons = append(buttons, model.Button{
			Label:    opt.Label,
			Emoji:    opt.Emoji,
			Style:    model.ButtonSecondary,
			CustomID: model.NewComponentID(model.WorkflowUpdateRoles, opt.RoleID).String(),
		})
	}

	if _, err := p.messenger.SendButtons(ctx, ev.ChannelID, pickerPrompt, buttons); err != nil {
		return fmt.Errorf("posting role picker: %w", err)
	}
	return r.Respond(ctx, outbound.Reply{
		Content:   "Message sent successfully!",
		Ephemeral: true,
	})
}
