package service

import (
	"context"
	"fmt"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
	"github.com/jonny/guildbot/pkg/boterr"
)

// CommandHandler processes one command interaction.
type CommandHandler func(ctx context.Context, ev model.Interaction, r outbound.Responder) error

// CommandDescriptor binds a command identifier to its handler and publishable
// metadata. Immutable after registration.
type CommandDescriptor struct {
	Name        string
	Description string
	Kind        model.CommandKind
	Handler     CommandHandler
}

// CommandRegistry holds the static command set. Registration happens once at
// startup before any dispatch; lookups afterwards are read-only, so no
// locking is needed.
type CommandRegistry struct {
	publisher outbound.CommandPublisher
	commands  map[string]CommandDescriptor
	order     []string
}

// NewCommandRegistry creates an empty registry publishing through the given
// publisher.
func NewCommandRegistry(publisher outbound.CommandPublisher) *CommandRegistry {
	return &CommandRegistry{
		publisher: publisher,
		commands:  make(map[string]CommandDescriptor),
	}
}

// Register adds a descriptor. Registering the same name twice is a
// programming error and fails with a duplicate_command error.
func (reg *CommandRegistry) Register(d CommandDescriptor) error {
	if d.Name == "" || d.Handler == nil {
		return fmt.Errorf("command descriptor needs a name and a handler")
	}
	if _, exists := reg.commands[d.Name]; exists {
		return boterr.Newf(boterr.KindDuplicateCommand, "command %q already registered", d.Name)
	}
	reg.commands[d.Name] = d
	reg.order = append(reg.order, d.Name)
	return nil
}

// Lookup returns the descriptor registered under name.
func (reg *CommandRegistry) Lookup(name string) (CommandDescriptor, bool) {
	d, ok := reg.commands[name]
	return d, ok
}

// Specs returns the publishable command set in registration order.
func (reg *CommandRegistry) Specs() []model.CommandSpec {
	specs := make([]model.CommandSpec, 0, len(reg.order))
	for _, name := range reg.order {
		d := reg.commands[name]
		specs = append(specs, model.CommandSpec{
			Name:        d.Name,
			Description: d.Description,
			Kind:        d.Kind,
		})
	}
	return specs
}

// Sync publishes the full registered set for the guild, replacing any
// previously published set. One outbound call, no retries: failures are the
// caller's to handle.
func (reg *CommandRegistry) Sync(ctx context.Context, guildID string) error {
	if err := reg.publisher.Publish(ctx, guildID, reg.Specs()); err != nil {
		return fmt.Errorf("publishing %d commands to guild %s: %w", len(reg.order), guildID, err)
	}
	return nil
}
