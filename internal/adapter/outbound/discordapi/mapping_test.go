package discordapi

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/guildbot/internal/domain/model"
)

func TestBuildComponentsSingleRow(t *testing.T) {
	components := buildComponents([]model.Button{
		{Label: "Yes", Style: model.ButtonSuccess, CustomID: "confirm_yes:inv-1:aa"},
		{Label: "No", Style: model.ButtonDanger, CustomID: "confirm_no:inv-1:bb"},
		{Label: "Builder", Emoji: "🔨", Style: model.ButtonSecondary, CustomID: "update_roles:555:cc"},
	})

	if len(components) != 1 {
		t.Fatalf("got %d components, want one action row", len(components))
	}
	row, ok := components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("component is %T, want ActionsRow", components[0])
	}
	if len(row.Components) != 3 {
		t.Fatalf("row holds %d buttons, want 3", len(row.Components))
	}

	yes := row.Components[0].(discordgo.Button)
	if yes.Style != discordgo.SuccessButton || yes.CustomID != "confirm_yes:inv-1:aa" {
		t.Errorf("yes button = %+v", yes)
	}
	if yes.Emoji != nil {
		t.Error("emoji must be omitted when the domain button has none")
	}

	no := row.Components[1].(discordgo.Button)
	if no.Style != discordgo.DangerButton {
		t.Errorf("no button style = %v, want danger", no.Style)
	}

	role := row.Components[2].(discordgo.Button)
	if role.Style != discordgo.SecondaryButton {
		t.Errorf("role button style = %v, want secondary", role.Style)
	}
	if role.Emoji == nil || role.Emoji.Name != "🔨" {
		t.Errorf("role button emoji = %+v", role.Emoji)
	}
}

func TestBuildComponentsEmpty(t *testing.T) {
	if got := buildComponents(nil); got != nil {
		t.Errorf("buildComponents(nil) = %v, want nil", got)
	}
}

// A role picker with six configured roles must spill into a second row: the
// platform rejects rows holding more than five buttons.
func TestBuildComponentsSplitsOverfullRows(t *testing.T) {
	buttons := make([]model.Button, 6)
	for i := range buttons {
		buttons[i] = model.Button{
			Label:    fmt.Sprintf("Role %d", i),
			Style:    model.ButtonSecondary,
			CustomID: fmt.Sprintf("update_roles:%d:aa", i),
		}
	}

	components := buildComponents(buttons)
	if len(components) != 2 {
		t.Fatalf("got %d rows, want 2", len(components))
	}
	var total int
	for i, component := range components {
		row, ok := component.(discordgo.ActionsRow)
		if !ok {
			t.Fatalf("component %d is %T, want ActionsRow", i, component)
		}
		if len(row.Components) > maxButtonsPerRow {
			t.Errorf("row %d holds %d buttons, max is %d", i, len(row.Components), maxButtonsPerRow)
		}
		total += len(row.Components)
	}
	if total != len(buttons) {
		t.Errorf("rows hold %d buttons in total, want %d", total, len(buttons))
	}
	first := components[0].(discordgo.ActionsRow)
	if len(first.Components) != maxButtonsPerRow {
		t.Errorf("first row holds %d buttons, want a full row of %d", len(first.Components), maxButtonsPerRow)
	}
	if got := first.Components[0].(discordgo.Button).CustomID; got != "update_roles:0:aa" {
		t.Errorf("first button id = %q, order must be preserved across rows", got)
	}
	second := components[1].(discordgo.ActionsRow)
	if got := second.Components[0].(discordgo.Button).CustomID; got != "update_roles:5:aa" {
		t.Errorf("second row starts with %q, order must be preserved across rows", got)
	}
}

func TestMapChannelKind(t *testing.T) {
	tests := []struct {
		in   discordgo.ChannelType
		want model.ChannelKind
	}{
		{discordgo.ChannelTypeGuildText, model.ChannelText},
		{discordgo.ChannelTypeGuildNews, model.ChannelText},
		{discordgo.ChannelTypeGuildPublicThread, model.ChannelThread},
		{discordgo.ChannelTypeGuildPrivateThread, model.ChannelThread},
		{discordgo.ChannelTypeGuildVoice, model.ChannelVoice},
		{discordgo.ChannelTypeGuildStageVoice, model.ChannelVoice},
		{discordgo.ChannelTypeGuildCategory, model.ChannelOther},
		{discordgo.ChannelTypeDM, model.ChannelOther},
	}
	for _, tt := range tests {
		if got := MapChannelKind(tt.in); got != tt.want {
			t.Errorf("MapChannelKind(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapMessage(t *testing.T) {
	msg := MapMessage(&discordgo.Message{
		ID:        "msg-1",
		ChannelID: "chan-1",
		GuildID:   "guild-1",
		Content:   "remember this",
		Author:    &discordgo.User{ID: "u-author", Username: "ada"},
		Attachments: []*discordgo.MessageAttachment{
			{Filename: "diagram.png", URL: "https://cdn.example/diagram.png", ContentType: "image/png"},
		},
	})

	if msg.ID != "msg-1" || msg.Content != "remember this" {
		t.Errorf("message = %+v", msg)
	}
	if msg.Author.ID != "u-author" || msg.Author.Name != "ada" {
		t.Errorf("author = %+v", msg.Author)
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0].Filename != "diagram.png" {
		t.Errorf("attachments = %+v", msg.Attachments)
	}
}

func TestMapMessageWithoutAuthor(t *testing.T) {
	msg := MapMessage(&discordgo.Message{ID: "msg-1"})
	if msg.Author != (model.User{}) {
		t.Errorf("author = %+v, want zero value", msg.Author)
	}
}

func TestParseWebhookURL(t *testing.T) {
	id, token, err := parseWebhookURL("https://discord.com/api/webhooks/123456/s3cr3t-t0ken")
	if err != nil {
		t.Fatalf("parseWebhookURL() error = %v", err)
	}
	if id != "123456" || token != "s3cr3t-t0ken" {
		t.Errorf("parsed = %s/%s, want 123456/s3cr3t-t0ken", id, token)
	}
}

func TestParseWebhookURLRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{
		"https://discord.com/",
		"https://discord.com/webhooks",
		"",
	} {
		if _, _, err := parseWebhookURL(raw); err == nil {
			t.Errorf("parseWebhookURL(%q) error = nil, want malformed-URL error", raw)
		}
	}
}
