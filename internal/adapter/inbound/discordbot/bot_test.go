package discordbot

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/jonny/guildbot/pkg/boterr"
)

func TestDispatchLogLevel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want slog.Level
	}{
		{"stale component", boterr.New(boterr.KindUnrecognizedComponent, "workflow \"giveaway\""), slog.LevelDebug},
		{"unknown command", boterr.New(boterr.KindUnknownCommand, "command \"ban\" is not registered"), slog.LevelWarn},
		{"unauthorized click", boterr.New(boterr.KindUnauthorized, "wrong actor"), slog.LevelWarn},
		{"failed precondition", boterr.New(boterr.KindConditionFailed, "not a text channel"), slog.LevelWarn},
		{"wrapped classification", boterr.Wrap(boterr.KindUnrecognizedComponent, "parsing component id", errors.New("malformed")), slog.LevelDebug},
		{"operational failure", boterr.New(boterr.KindPurgeFailed, "bulk delete failed"), slog.LevelError},
		{"unclassified error", errors.New("boom"), slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dispatchLogLevel(tt.err); got != tt.want {
				t.Errorf("dispatchLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
